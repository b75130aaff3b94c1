package sqlxrepos

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/eduwatch/eduwatch/core"
)

// queryErr wraps a query failure. A closed connection pool cannot recover
// within the process, so it surfaces as a shutdown error and the server
// terminates gracefully instead of failing every request.
func queryErr(err error, msg string) error {
	if err == sql.ErrConnDone {
		return core.NewShutdownError(msg + ": " + err.Error())
	}
	return errors.Wrap(err, msg)
}
