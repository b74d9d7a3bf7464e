package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	ErrorTypeInvalidCredentials ErrorType = "INVALID_CREDENTIALS"
	ErrorTypeAccountInactive    ErrorType = "ACCOUNT_INACTIVE"
	ErrorTypeTokenExpired       ErrorType = "TOKEN_EXPIRED"
	ErrorTypeTokenInvalid       ErrorType = "TOKEN_INVALID"
)

// AuthError is an AppError with hints for the security log.
type AuthError struct {
	*AppError
	// ShouldLog is false for expected failures such as a wrong password.
	ShouldLog     bool
	SecurityEvent bool
}

func (e *AuthError) Error() string {
	return e.AppError.Error()
}

func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError does not say which of email or password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError:      New(ErrorTypeInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"),
		SecurityEvent: true,
	}
}

func NewAccountInactiveError() *AuthError {
	return &AuthError{
		AppError: New(ErrorTypeAccountInactive, http.StatusForbidden,
			"Account is not active", "Contact an administrator to reactivate the account"),
	}
}

func NewTokenExpiredError(tokenType string) *AuthError {
	return &AuthError{
		AppError: New(ErrorTypeTokenExpired, http.StatusUnauthorized,
			fmt.Sprintf("%s has expired", tokenType), "Please login again"),
	}
}

func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: New(ErrorTypeTokenInvalid, http.StatusUnauthorized,
			fmt.Sprintf("Invalid %s", tokenType), "Token is invalid or has been revoked"),
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError defaults to true for anything that is not an AuthError.
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
