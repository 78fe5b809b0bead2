// Package errors provides structured error types for minicase.
//
// Every failure the engine can produce carries a machine-readable [Code].
// Codes fall into three kinds that callers must treat differently:
//
//   - Per-asset (IMAGE_DECODE, IMAGE_FETCH): recovered inside the engine.
//     The slot is drawn as a placeholder and the error becomes a warning on
//     an otherwise successful result.
//   - Structural (INVALID_*, UNKNOWN_COMPONENT, LAYOUT_OVERFLOW,
//     RENDERER_INIT, OUTPUT_TOO_LARGE): the render fails and no buffer is
//     returned.
//   - Resource (RESOURCE_EXHAUSTED): the render fails, but the caller may
//     retry with smaller images or fewer copies per page.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCopies, "copies per page must be 1-3, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidCopies) {
//	    // reject request
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeImageDecode, origErr, "decode %s", slot)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidCopies   Code = "INVALID_COPIES"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidSlot     Code = "INVALID_SLOT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Structural errors
	ErrCodeUnknownComponent Code = "UNKNOWN_COMPONENT"
	ErrCodeLayoutOverflow   Code = "LAYOUT_OVERFLOW"
	ErrCodeRendererInit     Code = "RENDERER_INIT"
	ErrCodeOutputTooLarge   Code = "OUTPUT_TOO_LARGE"

	// Resource errors
	ErrCodeResourceExhausted Code = "RESOURCE_EXHAUSTED"

	// Per-asset errors
	ErrCodeImageDecode  Code = "IMAGE_DECODE"
	ErrCodeImageFetch   Code = "IMAGE_FETCH"
	ErrCodeImageMissing Code = "IMAGE_MISSING"

	// Network errors
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeTimeout  Code = "TIMEOUT"
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Kind classifies codes by how the engine propagates them.
type Kind int

const (
	// KindUnknown is any error that does not carry a known code.
	KindUnknown Kind = iota
	// KindAsset errors degrade a single slot to a placeholder.
	KindAsset
	// KindStructural errors abort the render.
	KindStructural
	// KindResource errors abort the render and are retryable with smaller input.
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindAsset:
		return "asset"
	case KindStructural:
		return "structural"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

var kinds = map[Code]Kind{
	ErrCodeInvalidInput:      KindStructural,
	ErrCodeInvalidCopies:     KindStructural,
	ErrCodeInvalidGeometry:   KindStructural,
	ErrCodeInvalidSlot:       KindStructural,
	ErrCodeInvalidPath:       KindStructural,
	ErrCodeInvalidFormat:     KindStructural,
	ErrCodeInvalidConfig:     KindStructural,
	ErrCodeUnknownComponent:  KindStructural,
	ErrCodeLayoutOverflow:    KindStructural,
	ErrCodeRendererInit:      KindStructural,
	ErrCodeOutputTooLarge:    KindStructural,
	ErrCodeResourceExhausted: KindResource,
	ErrCodeImageDecode:       KindAsset,
	ErrCodeImageFetch:        KindAsset,
	ErrCodeImageMissing:      KindAsset,
}

// Kind returns how errors with this code are propagated.
func (c Code) Kind() Kind {
	return kinds[c]
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// KindOf classifies err by the code of the outermost *Error in its chain.
func KindOf(err error) Kind {
	return GetCode(err).Kind()
}

// IsStructural reports whether err aborts a render as a structural failure.
func IsStructural(err error) bool { return KindOf(err) == KindStructural }

// IsResource reports whether err is a retryable resource failure.
func IsResource(err error) bool { return KindOf(err) == KindResource }

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
