package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidLayout, "test message: %s", "value")

	if err.Code != ErrCodeInvalidLayout {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidLayout)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_LAYOUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidConfig, cause, "failed to load plan")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
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
			err:      New(ErrCodeInvalidLayout, "test"),
			code:     ErrCodeInvalidLayout,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidLayout, "test"),
			code:     ErrCodeUnknownPageType,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidLayout, "inner"), "outer"),
			code:     ErrCodeInvalidConfig,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidLayout,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidLayout,
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
		{
			name:     "Error type",
			err:      New(ErrCodeUnknownPageType, "test"),
			expected: ErrCodeUnknownPageType,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidLayout, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPageError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("grid overflow")
		err := &PageError{PageType: "weekly", Cause: cause}
		expected := `building page "weekly": grid overflow`
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is(err, cause) = false, want true")
		}
	})

	t.Run("without cause", func(t *testing.T) {
		err := &PageError{PageType: "monthly"}
		expected := `building page "monthly"`
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("code method", func(t *testing.T) {
		err := &PageError{PageType: "weekly"}
		if err.Code() != ErrCodePageBuild {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodePageBuild)
		}
	})

	t.Run("as target", func(t *testing.T) {
		var target *PageError
		wrapped := Wrap(ErrCodeInternal, &PageError{PageType: "notes"}, "build failed")
		if !errors.As(wrapped, &target) {
			t.Fatal("errors.As() = false, want true")
		}
		if target.PageType != "notes" {
			t.Errorf("PageType = %v, want %v", target.PageType, "notes")
		}
	})
}
