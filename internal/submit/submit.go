// Package submit posts console forms back to the HRIS server.
package submit

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized is returned when the server rejects the session (401/403).
	ErrUnauthorized = errors.New("not authorized")
	// ErrNotFound is returned when the target record no longer exists (404).
	ErrNotFound = errors.New("not found")
)

// Request is one form submission.
type Request struct {
	Route  string            // route name, e.g. "accounts.store"
	Params map[string]string // route placeholders
	Form   url.Values
}

// Response is what a successful submission reports back.
type Response struct {
	Status   int
	Message  string
	Redirect string
}

// Submitter sends form submissions.
type Submitter interface {
	Submit(ctx context.Context, req Request) (Response, error)
	Close() error
}

// ValidationError carries the server's per-field messages (HTTP 422).
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	msg := e.Message
	if msg == "" {
		msg = "validation failed"
	}
	return fmt.Sprintf("%s (%s)", msg, strings.Join(names, ", "))
}

// Field returns the message for one field, or "".
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}
