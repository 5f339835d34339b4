package errors

import (
	stderrors "errors"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
	}{
		{"not found", ErrNotFound},
		{"unreadable", ErrUnreadable},
		{"malformed", ErrMalformed},
		{"schema invalid", ErrSchemaInvalid},
		{"dir unwritable", ErrDirUnwritable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := errors.Wrap(tt.sentinel, "loading /tmp/somno_config.json")
			if !stderrors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(wrapped, sentinel) = false, want true")
			}
		})
	}
}

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(errors.New("boom"), ExitSystem),
			want: "boom",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	underlying := ErrDirUnwritable
	exitErr := NewSystemError(underlying, "check directory permissions")

	if !stderrors.Is(exitErr, ErrDirUnwritable) {
		t.Error("errors.Is should reach the underlying sentinel through ExitError")
	}

	var target *ExitError
	if !stderrors.As(exitErr, &target) {
		t.Fatal("errors.As failed to extract *ExitError")
	}
	if target.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", target.Code, ExitSystem)
	}
	if target.Suggestion != "check directory permissions" {
		t.Errorf("Suggestion = %q", target.Suggestion)
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError(errors.New("bad config"))
	if err.Code != ExitUser {
		t.Errorf("Code = %d, want %d", err.Code, ExitUser)
	}
	if err.Suggestion == "" {
		t.Error("Suggestion should not be empty")
	}
}
