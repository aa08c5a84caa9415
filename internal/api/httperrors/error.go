package httperrors

import (
	"fmt"

	"github/splitpot/go-relay/internal/types"
)

// HTTPError carries a public error shape through the handler chain. It is
// converted to the response body by the central error handler.
type HTTPError struct {
	types.PublicHTTPError
	Internal error
}

// NewHTTPError creates a new HTTPError with the given status code, type and title.
func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  code,
			Type:  errorType,
			Title: title,
		},
	}
}

// NewHTTPErrorWithDetail creates a new HTTPError with an additional public detail string.
func NewHTTPErrorWithDetail(code int, errorType string, title string, detail string) *HTTPError {
	e := NewHTTPError(code, errorType, title)
	e.Detail = detail

	return e
}

func (e *HTTPError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("HTTPError %d (%s): %s, %v", e.Code, e.Type, e.Title, e.Internal)
	}

	return fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
}

// WithInternal attaches a wrapped internal error that is logged, never exposed.
func (e *HTTPError) WithInternal(err error) *HTTPError {
	clone := *e
	clone.Internal = err

	return &clone
}

// HTTPValidationError is an HTTPError with a list of invalid request fields.
type HTTPValidationError struct {
	types.PublicHTTPValidationError
}

// NewHTTPValidationError creates a new HTTPValidationError with the given validation error details.
func NewHTTPValidationError(code int, errorType string, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError: types.PublicHTTPError{
				Code:  code,
				Type:  errorType,
				Title: title,
			},
			ValidationErrors: validationErrors,
		},
	}
}

func (e *HTTPValidationError) Error() string {
	return fmt.Sprintf("HTTPValidationError %d (%s): %s (%d fields)", e.Code, e.Type, e.Title, len(e.ValidationErrors))
}
