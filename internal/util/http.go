package util

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads that can check themselves.
type Validatable interface {
	Validate() error
}

// BindAndValidateBody binds the request body to v and, when v is
// Validatable, validates it. Failures surface as 400 responses.
//
//nolint:varnamelen // c is the echo convention for the context
func BindAndValidateBody(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to parse request body.").SetInternal(err)
	}

	if validatable, ok := v.(Validatable); ok {
		if err := validatable.Validate(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}
	}

	return nil
}

// ValidateAndReturn writes v as the JSON response with the given status code.
//
//nolint:varnamelen // c is the echo convention for the context
func ValidateAndReturn(c echo.Context, code int, v any) error {
	return c.JSON(code, v)
}
