package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/mixconf/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "unknown_style_method",
			code:    errors.ErrUnknownStyleMethod,
			message: "Unknown css loader method 'bogus'",
			wantStr: "[UNKNOWN_STYLE_METHOD] Unknown css loader method 'bogus'",
		},
		{
			name:    "config_parse",
			code:    errors.ErrConfigParse,
			message: "malformed .babelrc",
			wantStr: "[CONFIG_PARSE] malformed .babelrc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}
			if err.Details == nil {
				t.Error("New() details should be initialized")
			}
			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("unexpected token")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrConfigParse, "failed to parse %s", ".babelrc")

		if err.Wrapped != baseErr {
			t.Error("Wrapf() should preserve wrapped error")
		}

		wantStr := "[CONFIG_PARSE] failed to parse .babelrc: unexpected token"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrUnknownStyleMethod, "unknown method").
		WithDetail("method", "bogus").
		WithDetail("valid", []string{"auto", "inline", "extract"})

	if err.Details["method"] != "bogus" {
		t.Errorf("WithDetail() method = %v, want bogus", err.Details["method"])
	}
	if got := errors.GetErrorDetails(err)["valid"].([]string); len(got) != 3 {
		t.Errorf("GetErrorDetails() valid = %v, want three methods", got)
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrConfigParse, "error 1")
	err2 := errors.New(errors.ErrConfigParse, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNotFound, "not found"), errors.ErrNotFound, true},
		{"different_code", errors.New(errors.ErrNotFound, "not found"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"), errors.ErrFileAccess, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	if errors.GetErrorCode(configErr) != errors.ErrConfigLoad {
		t.Error("Top level should have ErrConfigLoad code")
	}
	var mixErr *errors.MixError
	if !stderrors.As(configErr.Unwrap(), &mixErr) || mixErr.Code != errors.ErrFileAccess {
		t.Error("Middle error should have ErrFileAccess code")
	}
	if !stderrors.Is(configErr, rootCause) {
		t.Error("Should find root cause with errors.Is")
	}
	if errors.GetErrorCode(stderrors.New("plain")) != errors.ErrUnknown {
		t.Error("Plain errors should report ErrUnknown")
	}
}
