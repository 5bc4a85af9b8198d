package errors

import "net/http"

// Stable machine-readable codes for every handled failure.
// These go into the response envelope instead of collaborator error text,
// so callers never see driver internals (e.g. the pq unique-violation message).
const (
	CodePasswordMismatch      = "PASSWORD_MISMATCH"
	CodeDuplicateEmail        = "DUPLICATE_EMAIL"
	CodeVerificationFailed    = "VERIFICATION_FAILED"
	CodeUnknownEmail          = "UNKNOWN_EMAIL"
	CodeIncorrectPassword     = "INCORRECT_PASSWORD"
	CodeAccountNotVerified    = "ACCOUNT_NOT_VERIFIED"
	CodeTokenExpired          = "TOKEN_EXPIRED"
	CodeTokenInvalid          = "TOKEN_INVALID"
	CodeInvalidOrTamperedLink = "INVALID_OR_TAMPERED_LINK"
	CodeMailDispatchFailed    = "MAIL_DISPATCH_FAILED"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Code       string
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a storage-level "not found".
func IsNotFound(err error) bool {
	e, ok := err.(*ErrorWithStatusCode)
	return ok && e.StatusCode == http.StatusNotFound
}
