package controllers

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateKeyError reports whether err is a unique-constraint violation.
// The MySQL and SQLite drivers word it differently, so both messages are
// matched alongside gorm's translated error.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
