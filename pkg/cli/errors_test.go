package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("budget.daily_limit", "must be positive")

	msg := err.Error()
	if !strings.Contains(msg, "budget.daily_limit") {
		t.Errorf("message %q does not name the setting", msg)
	}
	if !strings.Contains(msg, "must be positive") {
		t.Errorf("message %q drops the explanation", msg)
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	cause := errors.New("journal database is locked")
	err := NewCommandError("history", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
	msg := err.Error()
	if !strings.Contains(msg, "history") {
		t.Errorf("message %q does not name the command", msg)
	}
	if !strings.Contains(msg, "locked") {
		t.Errorf("message %q drops the cause", msg)
	}
}
