package core

import "errors"

// Error codes carried to clients on rejected commands.
const (
	ErrCodeInvalidName   = "invalid_name"
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotJoined     = "not_joined"
	ErrCodeAlreadyJoined = "already_joined"
)

var (
	ErrInvalidName   = errors.New("name must be at least 2 characters")
	ErrNotJoined     = errors.New("player has not joined")
	ErrAlreadyJoined = errors.New("player already joined")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
