package datto

import (
	"fmt"
	"net/http"

	er "github.com/mcorbin/corbierror"
)

// APIError is returned when the Datto API answers with a non-success status.
type APIError struct {
	StatusCode int
	Body       string
	typed      *er.Error
}

func newAPIError(statusCode int, body string) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       body,
	}
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		apiErr.typed = er.Newf("access to the Datto API denied (status %d)", er.Forbidden, true, statusCode)
	case statusCode == http.StatusNotFound:
		apiErr.typed = er.New("resource not found on the Datto API", er.NotFound, true)
	case statusCode >= 400 && statusCode < 500:
		apiErr.typed = er.Newf("invalid request sent to the Datto API (status %d)", er.BadRequest, true, statusCode)
	}
	return apiErr
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error response from server (status %d): %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	if e.typed == nil {
		return nil
	}
	return e.typed
}
