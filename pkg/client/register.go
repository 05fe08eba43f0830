package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/doctorshift/marketplace-api/internal/models"
)

// Registration is the full application a doctor submits: every profile field
// plus the license image are mandatory.
type Registration struct {
	Email                string
	Password             string
	FirstName            string
	LastName             string
	PhoneNumber          string
	MedicalLicenseNumber string

	LicenseImageName string
	LicenseImage     io.Reader
}

// Validate performs the client-side required-field check that runs before
// anything goes over the wire.
func (r *Registration) Validate() error {
	required := []struct {
		name, value string
	}{
		{"email", r.Email},
		{"password", r.Password},
		{"first_name", r.FirstName},
		{"last_name", r.LastName},
		{"phone_number", r.PhoneNumber},
		{"medical_license_number", r.MedicalLicenseNumber},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("missing required field: %s", f.name)
		}
	}
	if r.LicenseImage == nil {
		return fmt.Errorf("missing required field: license_image")
	}
	return nil
}

// Register validates and submits the application as a multipart payload.
// The created account is pending until an admin reviews the license.
func (c *Client) Register(ctx context.Context, r Registration) (*models.User, error) {
	if err := r.Validate(); err != nil {
		return nil, &APIError{Kind: ErrValidation, Message: err.Error()}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"email":                  r.Email,
		"password":               r.Password,
		"first_name":             r.FirstName,
		"last_name":              r.LastName,
		"phone_number":           r.PhoneNumber,
		"medical_license_number": r.MedicalLicenseNumber,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, transportError(err)
		}
	}

	imageName := r.LicenseImageName
	if imageName == "" {
		imageName = "license"
	}
	part, err := w.CreateFormFile("license_image", imageName)
	if err != nil {
		return nil, transportError(err)
	}
	if _, err := io.Copy(part, r.LicenseImage); err != nil {
		return nil, transportError(err)
	}
	if err := w.Close(); err != nil {
		return nil, transportError(err)
	}

	var out models.User
	if err := c.do(ctx, http.MethodPost, "/api/register", &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
