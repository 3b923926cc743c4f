// Package omserrors contains the errors returned by the REST client when the OMS core service rejects a
// request. The client maps HTTP status codes onto these types, so callers can inspect failures with
// errors.As instead of parsing messages.
//
// Where one operation fails for several independent reasons (e.g., several items of a bulk import),
// the individual errors are combined into a multierror.Error from github.com/hashicorp/go-multierror.
package omserrors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrNoPermission is returned when the service refuses an action for the authenticated user (401 or 403).
type ErrNoPermission struct {
	// The attempted action, e.g. "POST /bodies"
	Action string
	// Optional message returned by the service
	Message string
}

func (err *ErrNoPermission) Error() (s string) {
	s = fmt.Sprintf("permission denied for %s", err.Action)
	if err.Message != "" {
		s = s + fmt.Sprintf("; %s", err.Message)
	}
	return
}

// ErrNotFound is returned whenever some resource isn't found.
// Type and Message are optional and are omitted from the error message if not provided.
type ErrNotFound struct {
	Type    string // Resource type, e.g., "body" or "circle"
	Value   string // Resource id
	Message string // An optional message to include in the error message
}

func (err *ErrNotFound) Error() (s string) {
	if err.Type != "" {
		s = fmt.Sprintf("resource %q of type %q does not exist", err.Value, err.Type)
	} else {
		s = fmt.Sprintf("resource %q does not exist", err.Value)
	}
	if err.Message != "" {
		return s + fmt.Sprintf("; %s", err.Message)
	} else {
		return s
	}
}

// ErrInvalidArgument is returned on invalid input detected before anything is sent.
// Message is optional and is omitted from the error message if not provided.
type ErrInvalidArgument struct {
	Name    string      // Name of the field referred to, e.g., "name"
	Value   interface{} // The invalid value that was provided
	Message string      // An optional message explaining why the value is invalid
}

func (err *ErrInvalidArgument) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("value %q is invalid for field %q", err.Value, err.Name)
	} else {
		return fmt.Sprintf("value %q is invalid for field %q; %s", err.Value, err.Name, err.Message)
	}
}

// ErrUnprocessable is returned when the service rejects a payload with 422 Unprocessable Entity.
// Fields maps each offending field to the messages the service gave for it.
type ErrUnprocessable struct {
	Fields map[string][]string
}

func (err *ErrUnprocessable) Error() string {
	if len(err.Fields) == 0 {
		return "request rejected as unprocessable"
	}
	names := maps.Keys(err.Fields)
	slices.Sort(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %s", name, strings.Join(err.Fields[name], ", ")))
	}
	return "request rejected as unprocessable: " + strings.Join(parts, "; ")
}

// ErrHttpStatus is returned for any other unsuccessful status code.
type ErrHttpStatus struct {
	StatusCode int
	Action     string
	Body       string
}

func (err *ErrHttpStatus) Error() string {
	s := fmt.Sprintf("%s failed with status %d %s", err.Action, err.StatusCode, http.StatusText(err.StatusCode))
	if err.Body != "" {
		s = s + fmt.Sprintf("; %s", err.Body)
	}
	return s
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// FromResponse maps an unsuccessful response onto one of the error types of this package.
// action describes the request, e.g. "GET /bodies/42"; resourceType and id are used for ErrNotFound.
func FromResponse(statusCode int, body []byte, action string, resourceType string, id string) error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrNoPermission{Action: action, Message: parsed.Message}
	case http.StatusNotFound:
		return &ErrNotFound{Type: resourceType, Value: id, Message: parsed.Message}
	case http.StatusUnprocessableEntity:
		return &ErrUnprocessable{Fields: parsed.Errors}
	default:
		msg := parsed.Message
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return &ErrHttpStatus{StatusCode: statusCode, Action: action, Body: msg}
	}
}
