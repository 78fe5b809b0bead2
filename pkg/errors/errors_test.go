package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidCopies, "copies per page: %d", 5)

	if err.Code != ErrCodeInvalidCopies {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidCopies)
	}

	if err.Message != "copies per page: 5" {
		t.Errorf("Message = %v, want %v", err.Message, "copies per page: 5")
	}

	expected := "INVALID_COPIES: copies per page: 5"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeImageDecode, cause, "decode frontCoverOutside")

	if err.Code != ErrCodeImageDecode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeImageDecode)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeLayoutOverflow, "test"),
			code:     ErrCodeLayoutOverflow,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeLayoutOverflow, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "fmt wrapped error",
			err:      fmt.Errorf("layout: %w", New(ErrCodeLayoutOverflow, "inner")),
			code:     ErrCodeLayoutOverflow,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeUnknownComponent, "test"), ErrCodeUnknownComponent},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{New(ErrCodeInvalidCopies, "x"), KindStructural},
		{New(ErrCodeLayoutOverflow, "x"), KindStructural},
		{New(ErrCodeOutputTooLarge, "x"), KindStructural},
		{New(ErrCodeRendererInit, "x"), KindStructural},
		{New(ErrCodeResourceExhausted, "x"), KindResource},
		{New(ErrCodeImageDecode, "x"), KindAsset},
		{New(ErrCodeImageFetch, "x"), KindAsset},
		{New(ErrCodeNetwork, "x"), KindUnknown},
		{errors.New("plain"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}

	if !IsStructural(New(ErrCodeInvalidCopies, "x")) {
		t.Error("IsStructural(INVALID_COPIES) = false")
	}
	if !IsResource(New(ErrCodeResourceExhausted, "x")) {
		t.Error("IsResource(RESOURCE_EXHAUSTED) = false")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
