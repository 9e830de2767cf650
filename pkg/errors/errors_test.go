// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/glyphmark/glyphmark/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "unknown_style_error",
			code:    errors.ErrUnknownStyle,
			message: "no style named mathbald",
			wantStr: "[UNKNOWN_STYLE] no style named mathbald",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if err.Offset != -1 {
				t.Errorf("New() offset = %d, want -1", err.Offset)
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWithOffset(t *testing.T) {
	err := errors.New(errors.ErrUnclosedTag, "tag mathbold is never closed").WithOffset(42)

	if err.Offset != 42 {
		t.Errorf("Offset = %d, want 42", err.Offset)
	}

	want := "[UNCLOSED_TAG] tag mathbold is never closed (at byte 42)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if got := errors.GetOffset(err); got != 42 {
		t.Errorf("GetOffset() = %d, want 42", got)
	}
}

func TestWithSuggestions(t *testing.T) {
	err := errors.New(errors.ErrUnknownSeparator, "no separator named dott").
		WithName("dott").
		WithSuggestions([]string{"dot"})

	if err.Name != "dott" {
		t.Errorf("Name = %q, want %q", err.Name, "dott")
	}

	want := "[UNKNOWN_SEPARATOR] no separator named dott (did you mean dot?)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	t.Run("wrap_nil_returns_nil", func(t *testing.T) {
		if got := errors.Wrap(nil, errors.ErrBackend, "renderer failed"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})

	t.Run("wrap_preserves_cause", func(t *testing.T) {
		cause := stderrors.New("connection refused")
		err := errors.Wrap(cause, errors.ErrBackend, "renderer failed")

		if !stderrors.Is(err, cause) {
			t.Error("wrapped error should match its cause with errors.Is")
		}

		want := "[BACKEND] renderer failed: connection refused"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrContextMismatch, "%s is not usable inline", "gradient")

	if !errors.IsErrorCode(err, errors.ErrContextMismatch) {
		t.Error("IsErrorCode should match the error's own code")
	}

	if errors.IsErrorCode(err, errors.ErrUnknownStyle) {
		t.Error("IsErrorCode should not match a different code")
	}

	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrContextMismatch) {
		t.Error("IsErrorCode should not match a plain error")
	}
}

func TestGetErrorCode(t *testing.T) {
	err := errors.New(errors.ErrExpansionLimitExceeded, "expansion depth 64 exceeded")

	if got := errors.GetErrorCode(err); got != errors.ErrExpansionLimitExceeded {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrExpansionLimitExceeded)
	}

	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrUnsupportedChar, "badge circle has no mapping for '~'").
		WithDetail("badge", "circle").
		WithDetail("char", "~")

	details := errors.GetErrorDetails(err)
	if details["badge"] != "circle" || details["char"] != "~" {
		t.Errorf("details = %v, want badge/circle and char/~", details)
	}
}
