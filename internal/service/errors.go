package service

import "errors"

// Kind classifies a service failure so handlers can pick the HTTP status
// without inspecting message text.
type Kind int

const (
	// KindNotFound means the target entity does not exist.
	KindNotFound Kind = iota + 1
	// KindInvalidInput means the request violates a domain rule.
	KindInvalidInput
	// KindForbidden means the caller is not allowed to perform the operation.
	KindForbidden
	// KindConflict means the operation collides with existing state.
	KindConflict
)

// Error is a kind-tagged domain error returned by services.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewNotFound builds a not-found error.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewInvalidInput builds an invalid-input error.
func NewInvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// NewForbidden builds a forbidden error.
func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewConflict builds a conflict error.
func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf extracts the kind from err, or 0 when err is not a service Error.
func KindOf(err error) Kind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return 0
}

// IsNotFound reports whether err is a not-found service error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsInvalidInput reports whether err is an invalid-input service error.
func IsInvalidInput(err error) bool { return KindOf(err) == KindInvalidInput }

// IsForbidden reports whether err is a forbidden service error.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// IsConflict reports whether err is a conflict service error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
