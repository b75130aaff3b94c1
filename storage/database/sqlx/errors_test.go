package sqlxrepos

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/eduwatch/eduwatch/core"
)

func TestQueryErr(t *testing.T) {
	// a dead pool must surface as a shutdown error so the server stops
	// gracefully instead of failing every request
	err := queryErr(sql.ErrConnDone, "querying students")
	if !core.IsShutdown(err) {
		t.Errorf("queryErr(ErrConnDone) = %v, want a shutdown error", err)
	}
	if !strings.Contains(err.Error(), "querying students") {
		t.Errorf("queryErr(ErrConnDone) = %q, want the query context in the message", err)
	}

	// ordinary failures stay ordinary wrapped errors
	err = queryErr(errors.New("syntax error"), "querying students")
	if core.IsShutdown(err) {
		t.Errorf("queryErr(plain error) = %v, must not be a shutdown error", err)
	}
	if errors.Cause(err).Error() != "syntax error" {
		t.Errorf("queryErr() cause = %v, want the original error", errors.Cause(err))
	}
}
