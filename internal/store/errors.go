package store

import (
	"database/sql"
	"errors"

	"homeacc/internal/db"
)

// IsUniqueViolation reports a 23505 from either supported driver.
func IsUniqueViolation(err error) bool {
	return db.SQLState(err) == "23505"
}

func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
