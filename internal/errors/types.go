package errors

// represents a standardized error response
type ErrorResponse struct {
	Error   string            `json:"error"`             // error code (e.g., "unauthorized", "not_found")
	Message string            `json:"message"`           // user-friendly message
	Details string            `json:"details,omitempty"` // optional details (sanitized in production)
	Errors  map[string]string `json:"errors,omitempty"`  // per-field validation reasons
}

// standard error codes
const (
	CodeUnauthorized      = "unauthorized"
	CodeInvalidCredential = "invalid_credential"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeValidationError   = "validation_error"
	CodeServerError       = "server_error"
	CodeBadRequest        = "bad_request"
	CodeTooManyRequests   = "too_many_requests"
)

// error categories for classification
const (
	CategoryDatabase   = "database"
	CategoryNetwork    = "network"
	CategoryValidation = "validation"
	CategoryAuth       = "auth"
	CategoryNotFound   = "not_found"
	CategoryTimeout    = "timeout"
	CategoryUnknown    = "unknown"
)

type ErrorInfo struct {
	category  string
	sanitized string
}
