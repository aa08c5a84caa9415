package httperrors

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github/splitpot/go-relay/internal/types"
	"github/splitpot/go-relay/internal/util"
)

// HandlerConfig controls how unexpected errors are exposed.
type HandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HandlerWithConfig returns the central echo error handler, normalizing every
// error into the public error shape.
//
//nolint:varnamelen // c is the echo convention for the context
func HandlerWithConfig(config HandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromEchoContext(c)

		var publicErr any
		var code int

		switch e := err.(type) { //nolint:errorlint // echo errors are returned unwrapped by handlers
		case *HTTPValidationError:
			code = e.Code
			publicErr = e.PublicHTTPValidationError
		case *HTTPError:
			code = e.Code
			publicErr = e.PublicHTTPError

			if e.Internal != nil {
				log.Warn().Err(e.Internal).Int("status", code).Msg("Request failed with internal error")
			}
		case *echo.HTTPError:
			code = e.Code
			title := http.StatusText(e.Code)

			if msg, ok := e.Message.(string); ok {
				title = msg
			}

			publicErr = types.PublicHTTPError{
				Code:  e.Code,
				Type:  types.PublicHTTPErrorTypeGeneric,
				Title: title,
			}
		default:
			code = http.StatusInternalServerError
			title := http.StatusText(http.StatusInternalServerError)

			if !config.HideInternalServerErrorDetails {
				title = fmt.Sprintf("%s: %v", title, err)
			}

			log.Error().Err(err).Msg("Unhandled error in request")

			publicErr = types.PublicHTTPError{
				Code:  code,
				Type:  types.PublicHTTPErrorTypeGeneric,
				Title: title,
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, publicErr)
		}

		if writeErr != nil {
			log.Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}
