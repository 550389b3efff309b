package domain

import "net/http"

// Machine-readable failure codes surfaced by the auth core.
const (
	CodeAuthFailed         = "AUTH_FAILED"
	CodeOTPInvalid         = "OTP_INVALID"
	CodeOTPExpired         = "OTP_EXPIRED"
	CodeOTPSendFailed      = "OTP_SEND_FAILED"
	CodeRegistrationFailed = "REGISTRATION_FAILED"
	CodeDuplicate          = "DUPLICATE_ERROR"
	CodeHashingError       = "HASHING_ERROR"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
)

// AuthError is the single failure type crossing the core's public API.
// Underlying causes (driver errors, transport errors) never travel in
// it; they are logged server-side only.
type AuthError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Status  int    `json:"-"`
}

func (e *AuthError) Error() string {
	return e.Message
}

func NewAuthError(message, code string, status int) *AuthError {
	return &AuthError{Message: message, Code: code, Status: status}
}

// ErrAuthenticationFailed returns the generic credential-failure error.
// Unknown identity, wrong proof type, and wrong credential all surface
// this exact error so an observer cannot tell which one happened.
func ErrAuthenticationFailed() *AuthError {
	return NewAuthError("Authentication failed", CodeAuthFailed, http.StatusUnauthorized)
}

// DuplicateError reports an identity-uniqueness conflict.
type DuplicateError struct {
	AuthError
	Field string
}

func (e *DuplicateError) Unwrap() error {
	return &e.AuthError
}

func NewDuplicateError(field string) *DuplicateError {
	return &DuplicateError{
		AuthError: AuthError{
			Message: field + " already exists",
			Code:    CodeDuplicate,
			Status:  http.StatusConflict,
		},
		Field: field,
	}
}
