package db

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// IsUniqueViolation reports whether err was caused by a UNIQUE constraint,
// for either engine.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var mattnErr sqlite3.Error
	if errors.As(err, &mattnErr) {
		return mattnErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	var moderncErr *sqlite.Error
	if errors.As(err, &moderncErr) {
		code := moderncErr.Code()
		if code == sqlitelib.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		return code&0xff == sqlitelib.SQLITE_CONSTRAINT &&
			strings.Contains(moderncErr.Error(), "UNIQUE constraint failed")
	}

	return false
}

// IsConstraintViolation reports whether err was caused by any constraint
// (UNIQUE, PRIMARY KEY, NOT NULL, ...), for either engine.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	var mattnErr sqlite3.Error
	if errors.As(err, &mattnErr) {
		return mattnErr.Code == sqlite3.ErrConstraint
	}

	var moderncErr *sqlite.Error
	if errors.As(err, &moderncErr) {
		return moderncErr.Code()&0xff == sqlitelib.SQLITE_CONSTRAINT
	}

	return false
}
