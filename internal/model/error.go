package model

import "errors"

type ErrorCode string

const (
	CodeInvalidCredentials ErrorCode = "invalid_credentials"
	CodeAccountLocked      ErrorCode = "account_locked"
	CodeNotFound           ErrorCode = "not_found"
	CodeValidationFailed   ErrorCode = "validation_failed"
	CodeStoreUnavailable   ErrorCode = "store_unavailable"
)

type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var ErrorInvalidCredentials = &Error{CodeInvalidCredentials, "Invalid credentials"}
var ErrorAccountLocked = &Error{CodeAccountLocked, "Your account is locked due to multiple failed login attempts. Please contact support."}
var ErrorUserNotFound = &Error{CodeNotFound, "User not found"}
var ErrorDuplicateEmail = &Error{CodeValidationFailed, "Email is already registered"}
var ErrorStoreUnavailable = &Error{CodeStoreUnavailable, "store unavailable"}

// ValidationError turns a field validation failure into a CodeValidationFailed error.
func ValidationError(err error) error {
	return &Error{CodeValidationFailed, err.Error()}
}

// CodeOf classifies err, falling back to CodeStoreUnavailable for anything unrecognised.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeStoreUnavailable
}
