package core

import (
	"testing"

	"github.com/pkg/errors"
)

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError(errors.New("invalid record"), FieldError{Field: "email", Error: "this field is required"})

	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("NewValidationError() returned %T, want *ValidationError", err)
	}
	if vErr.Error() != "invalid record" {
		t.Errorf("Error() = %q, want %q", vErr.Error(), "invalid record")
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
		t.Errorf("Fields = %+v", vErr.Fields)
	}

	if empty := (&ValidationError{}).Error(); empty != "" {
		t.Errorf("empty ValidationError.Error() = %q, want empty", empty)
	}
}

func TestIsShutdown(t *testing.T) {
	err := NewShutdownError("database pool closed")
	if !IsShutdown(err) {
		t.Error("IsShutdown() = false for a shutdown error")
	}
	// wrapping must not mask it
	if !IsShutdown(errors.Wrap(err, "querying students")) {
		t.Error("IsShutdown() = false for a wrapped shutdown error")
	}
	if IsShutdown(errors.New("gateway timeout")) {
		t.Error("IsShutdown() = true for an ordinary error")
	}
}
