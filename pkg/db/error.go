package db

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDuplicateKeyErr reports whether err is a unique-constraint violation,
// regardless of the underlying driver.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// PostgreSQL (23505)
	if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return true
	}

	// MySQL (1062)
	if strings.Contains(err.Error(), "Error 1062") {
		return true
	}

	// SQLite (2067)
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}

	return false
}

// IsLockTimeoutErr reports whether err is a row-lock wait timeout or a
// cancelled lock acquisition. Callers treat these as retryable conflicts.
func IsLockTimeoutErr(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	// PostgreSQL (55P03 with NOWAIT, 57014 on statement timeout)
	if strings.Contains(msg, "could not obtain lock") || strings.Contains(msg, "canceling statement due to") {
		return true
	}

	// MySQL (1205)
	if strings.Contains(msg, "Lock wait timeout exceeded") {
		return true
	}

	// SQLite (5)
	if strings.Contains(msg, "database is locked") {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
