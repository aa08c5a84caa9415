package relay

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// transientMessageTokens are the error-message signatures treated as
// network-transient and therefore retryable. Everything else (relay
// rejections, malformed responses, 4xx statuses) is terminal.
var transientMessageTokens = []string{
	"connection reset",
	"connection refused",
	"fetch failed",
	"failed to fetch",
	"network error",
	"timeout",
	"timed out",
	"deadline exceeded",
	"temporary failure",
	"eof",
	"502",
	"503",
	"504",
}

// IsTransient classifies an error for the relay retry loop.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Relay-side 5xx means the sponsor had a bad moment, not that the
	// transaction is invalid. 4xx is terminal.
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError
	}

	msg := strings.ToLower(err.Error())
	for _, token := range transientMessageTokens {
		if strings.Contains(msg, token) {
			return true
		}
	}

	return false
}

// RejectionError is a business-level rejection returned by the relay in a
// 2xx body. Not retryable unless the message itself matches a transient
// network signature.
type RejectionError struct {
	Code    int
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

// StatusError is a non-2xx relay response, carrying the raw body for
// diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay returned status %d: %s", e.StatusCode, e.Body)
}

// ErrMissingPendingHash marks a success response without the expected
// pendingTransaction.hash field: a protocol-shape violation, surfaced loudly
// and never retried.
var ErrMissingPendingHash = errors.New("relay success response is missing pendingTransaction.hash")
