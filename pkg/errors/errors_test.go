package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGrid, "invalid grid type: %q", "pentagonal")

	if err.Code != ErrCodeInvalidGrid {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidGrid)
	}

	if err.Message != `invalid grid type: "pentagonal"` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `INVALID_GRID: invalid grid type: "pentagonal"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "POST /generate-kolam-svg")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
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
			err:      New(ErrCodeInvalidStroke, "test"),
			code:     ErrCodeInvalidStroke,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidStroke, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "remote error",
			err:      &RemoteError{Status: 500, Body: "server error"},
			code:     ErrCodeRemote,
			expected: true,
		},
		{
			name:     "wrapped remote error",
			err:      fmt.Errorf("generate: %w", &RemoteError{Status: 502}),
			code:     ErrCodeRemote,
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
		{
			name:     "empty code never matches",
			err:      errors.New("plain error"),
			code:     "",
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
		{"Error type", New(ErrCodeInvalidSymmetry, "test"), ErrCodeInvalidSymmetry},
		{"remote error", &RemoteError{Status: 404}, ErrCodeRemote},
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
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"remote body verbatim", &RemoteError{Status: 500, Body: "server error"}, "server error"},
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

func TestRemoteError(t *testing.T) {
	t.Run("body is the message", func(t *testing.T) {
		err := &RemoteError{Status: 500, Body: "server error"}
		if err.Error() != "server error" {
			t.Errorf("Error() = %q, want %q", err.Error(), "server error")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		err := &RemoteError{Status: 503}
		if err.Error() != "remote service returned status 503" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("code method", func(t *testing.T) {
		err := &RemoteError{}
		if err.Code() != ErrCodeRemote {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeRemote)
		}
	})

	t.Run("AsRemote", func(t *testing.T) {
		wrapped := fmt.Errorf("analyze: %w", &RemoteError{Status: 400, Body: "bad image"})
		re, ok := AsRemote(wrapped)
		if !ok || re.Status != 400 || re.Body != "bad image" {
			t.Errorf("AsRemote() = %+v, %v", re, ok)
		}
		if _, ok := AsRemote(errors.New("plain")); ok {
			t.Error("AsRemote(plain) = true, want false")
		}
	})
}
