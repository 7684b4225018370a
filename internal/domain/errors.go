package domain

import (
	"errors"
	"fmt"
	"strings"
)

type NotFoundError struct {
	Resource string
	ID       int64
	Err      error
}

func (e NotFoundError) Error() string {
	switch {
	case e.Resource != "" && e.ID > 0:
		return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
	case e.Resource != "":
		return fmt.Sprintf("%s not found", e.Resource)
	default:
		return "not found"
	}
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

// UnrecognizedEnumError reports free text that does not name any value of an
// enumerated field.
type UnrecognizedEnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e UnrecognizedEnumError) Error() string {
	msg := fmt.Sprintf("unrecognized %s value %q", e.Field, e.Value)
	if len(e.Allowed) > 0 {
		msg += " (allowed: " + strings.Join(e.Allowed, ", ") + ")"
	}
	return msg
}

// PatchError is returned when a patch document cannot be decoded (Malformed)
// or one of its operations cannot be applied to the target document.
type PatchError struct {
	Malformed bool
	Msg       string
	Err       error
}

func (e PatchError) Error() string {
	prefix := "patch failed"
	if e.Malformed {
		prefix = "invalid patch document"
	}
	switch {
	case e.Msg != "":
		return prefix + ": " + e.Msg
	case e.Err != nil:
		return prefix + ": " + e.Err.Error()
	default:
		return prefix
	}
}

func (e PatchError) Unwrap() error { return e.Err }

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

// IsValidation also reports unrecognized enum values, which are a kind of
// validation failure.
func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target) || IsUnrecognizedEnum(err)
}

func IsUnrecognizedEnum(err error) bool {
	var target UnrecognizedEnumError
	return errors.As(err, &target)
}

func IsPatchFailure(err error) bool {
	var target PatchError
	return errors.As(err, &target) && !target.Malformed
}

func IsMalformedPatch(err error) bool {
	var target PatchError
	return errors.As(err, &target) && target.Malformed
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
