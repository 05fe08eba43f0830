// Package client is the Go SDK for the doctor shift marketplace API. It
// carries the pieces every frontend needs: an authenticated HTTP client, a
// session store with credential persistence, route guards, client-side shift
// filtering and the registration / admin-approval flows.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/doctorshift/marketplace-api/internal/models"
)

// LoginResponse is the /api/login payload.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// Client issues requests against the marketplace API, attaching the bearer
// token when one is set. Safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

// SetToken installs the bearer credential used on subsequent requests.
// An empty token removes it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends a request and decodes the JSON response into out (when non-nil).
// Every failure comes back as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return transportError(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportError(err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return transportError(err)
		}
		body = bytes.NewReader(buf)
	}
	return c.do(ctx, http.MethodPost, path, body, "application/json", out)
}

// Login exchanges credentials for a bearer token and the user document.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	in := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.postJSON(ctx, "/api/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the identity behind the current bearer token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.getJSON(ctx, "/api/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Shifts fetches all open shifts. Filtering happens client-side, see
// FilterShifts.
func (c *Client) Shifts(ctx context.Context) ([]models.Shift, error) {
	var out []models.Shift
	if err := c.getJSON(ctx, "/api/shifts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyShifts fetches everything the current user has posted.
func (c *Client) MyShifts(ctx context.Context) ([]models.Shift, error) {
	var out []models.Shift
	if err := c.getJSON(ctx, "/api/my-shifts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ShiftPosting is the body for posting a new shift.
type ShiftPosting struct {
	Position      string  `json:"position"`
	ShiftDate     string  `json:"shift_date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	HospitalName  string  `json:"hospital_name"`
	Location      string  `json:"location"`
	Compensation  float64 `json:"compensation"`
	Description   string  `json:"description,omitempty"`
	Requirements  string  `json:"requirements,omitempty"`
	ContactMethod string  `json:"contact_method,omitempty"`
}

// CreateShift posts a new shift.
func (c *Client) CreateShift(ctx context.Context, posting ShiftPosting) (*models.Shift, error) {
	var out models.Shift
	if err := c.postJSON(ctx, "/api/shifts", posting, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteShift takes down one of the current user's shifts.
func (c *Client) DeleteShift(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/shifts/"+id, nil, "", nil)
}

// PendingUsers lists doctor accounts awaiting approval. Admin only.
func (c *Client) PendingUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.getJSON(ctx, "/api/admin/pending-users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveUser approves a pending doctor. Admin only.
func (c *Client) ApproveUser(ctx context.Context, id string) error {
	return c.postJSON(ctx, "/api/admin/approve-user/"+id, nil, nil)
}

// RejectUser rejects a pending doctor. Admin only.
func (c *Client) RejectUser(ctx context.Context, id string) error {
	return c.postJSON(ctx, "/api/admin/reject-user/"+id, nil, nil)
}
