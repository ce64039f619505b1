package account

import "fmt"

// AuthError carries a stable code so handlers can pick a response status.
// Messages are safe to show to clients; they never leak which part of the
// credential check failed.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeInvalidCredentials = "invalidCredentials"
	CodeAccountLocked      = "accountLocked"
	CodeEmailTaken         = "emailTaken"
	CodeWeakPassword       = "weakPassword"
	CodeInvalidInput       = "invalidInput"
	CodeTOTPRequired       = "totpRequired"
	CodeInvalidTOTP        = "invalidTotp"
	CodeInvalidToken       = "invalidToken"
	CodeNotFound           = "notFound"
)

func errInvalidCredentials() error {
	return &AuthError{Code: CodeInvalidCredentials, Message: "invalid email or password"}
}

func errAccountLocked() error {
	return &AuthError{Code: CodeAccountLocked, Message: "account temporarily locked, try again later"}
}

func errInvalidToken() error {
	return &AuthError{Code: CodeInvalidToken, Message: "invalid or expired token"}
}
