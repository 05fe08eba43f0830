package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-xyz")
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}

	c.SetToken("")
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("cleared token still sent: %q", gotAuth)
	}
}

func TestClientErrorKinds(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorKind
	}{
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrServer},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]string{"detail": "boom"})
		}))

		_, err := New(srv.URL).Me(context.Background())
		srv.Close()

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected *APIError, got %v", tc.status, err)
		}
		if apiErr.Kind != tc.want {
			t.Errorf("status %d: kind %s, want %s", tc.status, apiErr.Kind, tc.want)
		}
		if apiErr.Message != "boom" {
			t.Errorf("status %d: detail not extracted, got %q", tc.status, apiErr.Message)
		}
	}
}

func TestClientTransportErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL).Shifts(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != ErrTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestRegisterValidatesBeforeSubmitting(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := New(srv.URL).Register(context.Background(), Registration{
		Email: "doc@example.com",
		// everything else missing
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != ErrValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Error("incomplete registration must not reach the network")
	}
}

func TestRegisterSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got := r.FormValue("medical_license_number"); got != "MD-44821" {
			t.Errorf("license number field = %q", got)
		}
		file, header, err := r.FormFile("license_image")
		if err != nil {
			t.Errorf("license_image missing: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "license.png" {
			t.Errorf("filename = %q", header.Filename)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"approval_status": "pending"})
	}))
	defer srv.Close()

	user, err := New(srv.URL).Register(context.Background(), Registration{
		Email:                "doc@example.com",
		Password:             "secret123",
		FirstName:            "Somchai",
		LastName:             "Prasert",
		PhoneNumber:          "0812345678",
		MedicalLicenseNumber: "MD-44821",
		LicenseImageName:     "license.png",
		LicenseImage:         strings.NewReader("fake-png-bytes"),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ApprovalStatus != "pending" {
		t.Errorf("expected pending account, got %q", user.ApprovalStatus)
	}
}
