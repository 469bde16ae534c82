package discoveryengine

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gemctl/internal/core/domain"
)

// APIError is a non-2xx answer from the resource service.
// It unwraps to the domain error it was classified as and to the
// underlying *googleapi.Error.
type APIError struct {
	// Kind is domain.ErrNotFound, domain.ErrAPIDisabled or domain.ErrTransport.
	Kind error

	// Err carries the status code, message and raw body.
	Err *googleapi.Error
}

// Error implements error.
func (e *APIError) Error() string {
	msg := e.Err.Message
	if msg == "" {
		msg = e.Err.Body
	}
	if msg == "" {
		msg = http.StatusText(e.Err.Code)
	}
	return fmt.Sprintf("%v: status %d: %s", e.Kind, e.Err.Code, msg)
}

// Unwrap exposes both the classification and the googleapi error.
func (e *APIError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// StatusCode returns the HTTP status of the answer.
func (e *APIError) StatusCode() int {
	return e.Err.Code
}

// checkResponse classifies resp. It returns nil for 2xx answers.
func checkResponse(resp *http.Response) error {
	err := googleapi.CheckResponse(resp)
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	kind := domain.ErrTransport
	switch gerr.Code {
	case http.StatusNotFound:
		kind = domain.ErrNotFound
	case http.StatusForbidden:
		kind = domain.ErrAPIDisabled
	}
	return &APIError{Kind: kind, Err: gerr}
}

// IsForbidden returns true if err came from a 403 answer.
func IsForbidden(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusForbidden
	}
	return errors.Is(err, domain.ErrAPIDisabled)
}

// IsNotFound returns true if err came from a 404 answer.
func IsNotFound(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	return errors.Is(err, domain.ErrNotFound)
}

// IsRateLimited returns true if err came from a 429 answer.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}
