package client

import (
	"encoding/json"
	"net/http"
)

// ErrorKind classifies API failures so callers can branch without string
// matching.
type ErrorKind int

const (
	ErrValidation ErrorKind = iota
	ErrUnauthorized
	ErrNotFound
	ErrServer
	ErrTransport
)

func (k ErrorKind) String() string {
	switch k {
	case ErrValidation:
		return "validation"
	case ErrUnauthorized:
		return "unauthorized"
	case ErrNotFound:
		return "not_found"
	case ErrServer:
		return "server"
	default:
		return "transport"
	}
}

// APIError carries the backend's human-readable detail message alongside the
// failure kind. Message is empty when the backend sent no detail payload.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "api error: " + e.Kind.String()
}

// newAPIError maps an HTTP error response to an APIError, extracting the
// detail field when present.
func newAPIError(resp *http.Response) *APIError {
	var kind ErrorKind
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		kind = ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		kind = ErrValidation
	default:
		kind = ErrServer
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	// A malformed or absent body just leaves Message empty.
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	return &APIError{Kind: kind, Status: resp.StatusCode, Message: payload.Detail}
}

func transportError(err error) *APIError {
	return &APIError{Kind: ErrTransport, Message: err.Error()}
}
