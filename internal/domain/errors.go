package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// RemoteError is an application-level failure reported by the CMS inside an
// otherwise successful response. Message is the first entry of the errors
// array and is shown to the operator verbatim.
type RemoteError struct {
	Op      string
	Message string
}

func (e RemoteError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// TransportError wraps network, HTTP status and decoding failures.
type TransportError struct {
	Op  string
	Err error
}

func (e TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: transport failure", e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e TransportError) Unwrap() error { return e.Err }

// UnsupportedError reports an operation that is disabled for an entity.
type UnsupportedError struct {
	Entity string
	Op     string
}

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Entity, e.Op)
}

// ErrScreenClosed is returned when a result arrives after its screen closed.
var ErrScreenClosed = errors.New("screen closed")

func IsRemote(err error) bool {
	var target RemoteError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target TransportError
	return errors.As(err, &target)
}

func IsUnsupported(err error) bool {
	var target UnsupportedError
	return errors.As(err, &target)
}

// RemoteMessage returns the verbatim CMS message carried by err, if any.
func RemoteMessage(err error) (string, bool) {
	var target RemoteError
	if errors.As(err, &target) {
		return target.Message, true
	}
	return "", false
}

// ErrInvalidCredentials is returned when a login does not match an active
// operator.
var ErrInvalidCredentials = errors.New("invalid login or password")
