package types

// PublicHTTPError is the wire shape of every error response.
type PublicHTTPError struct {
	Code   int    `json:"code"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// PublicHTTPValidationError extends PublicHTTPError with per-field errors.
type PublicHTTPValidationError struct {
	PublicHTTPError
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

// HTTPValidationErrorDetail describes a single invalid request field.
type HTTPValidationErrorDetail struct {
	Key   string `json:"key"`
	In    string `json:"in"`
	Error string `json:"error"`
}

// Well-known public error type discriminators.
const (
	PublicHTTPErrorTypeGeneric           = "generic"
	PublicHTTPErrorTypeInvalidPayload    = "INVALID_PAYLOAD"
	PublicHTTPErrorTypeNoWalletAvailable = "NO_WALLET_AVAILABLE"
	PublicHTTPErrorTypeTransactionFailed = "TRANSACTION_FAILED"
)
