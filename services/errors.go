package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Common errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrAccessDenied     = errors.New("task belongs to another user")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrResourceMismatch = errors.New("one or more requested ids do not exist")
)

// isUniqueViolation recognises a unique constraint failure from either
// gorm's translated error or the raw driver message. The SQLite driver
// does not always translate constraint errors.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func translateUserWriteError(err error) error {
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return err
}
