package sqlite

import (
	"errors"
	"strings"

	"github.com/cubicworld/cwsite/internal/auth/store"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// mapConstraint turns sqlite constraint violations into store sentinels.
// Unique and primary key violations become ErrAlreadyExists, foreign key
// violations become ErrNotFound (the referenced row does not exist).
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}

	var se *sqlitedriver.Error
	if !errors.As(err, &se) {
		return err
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return errors.Join(store.ErrAlreadyExists, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return errors.Join(store.ErrNotFound, err)
	}

	// Fall back on the message when only the primary result code is reported.
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := se.Error()
		switch {
		case strings.Contains(msg, "FOREIGN KEY"):
			return errors.Join(store.ErrNotFound, err)
		case strings.Contains(msg, "UNIQUE"):
			return errors.Join(store.ErrAlreadyExists, err)
		}
	}
	return err
}
