package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeSelectorNotFound, "growth selector %q not found", "Mar-21")

	if err.Code != ErrCodeSelectorNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSelectorNotFound)
	}

	if err.Message != `growth selector "Mar-21" not found` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `SELECTOR_NOT_FOUND: growth selector "Mar-21" not found`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidConfig, cause, "decode config")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
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

	expected := "INVALID_CONFIG: decode config: unexpected EOF"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeData, "test"),
			code:     ErrCodeData,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeData, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeGeometryDegenerate, New(ErrCodeData, "inner"), "outer"),
			code:     ErrCodeGeometryDegenerate,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeData,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeData,
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
		{"Error type", New(ErrCodeInvalidSelectorOrder, "test"), ErrCodeInvalidSelectorOrder},
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

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeGeometryDegenerate, "Width is too small."), "Width is too small."},
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

func TestIsLayout(t *testing.T) {
	for _, c := range []Code{ErrCodeData, ErrCodeSelectorNotFound, ErrCodeInvalidSelectorOrder,
		ErrCodeGrowthUndefined, ErrCodeScaleOverrideInvalid, ErrCodeGeometryDegenerate} {
		if !IsLayout(c) {
			t.Errorf("IsLayout(%s) = false, want true", c)
		}
	}
	for _, c := range []Code{ErrCodeInvalidInput, ErrCodeNetwork, ErrCodeInternal, ""} {
		if IsLayout(c) {
			t.Errorf("IsLayout(%q) = true, want false", c)
		}
	}
}
