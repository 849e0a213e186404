package util

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

var (
	ErrorNotFound          = errors.New("resource not found")
	ErrorAuthorNotFound    = errors.New("author does not exist")
	ErrorDuplicateEmail    = errors.New("a user with that email already exists")
	ErrorDuplicateUsername = errors.New("a user with that username already exists")
	ErrorUnauthenticated   = errors.New("authentication required")
	ErrorForbidden         = errors.New("permission denied")
	ErrorValidation        = errors.New("validation failed")
	QueryTimeoutDuration   = time.Second * 5
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// IsForeignKeyViolation reports whether err is a postgres foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

// UniqueViolationConstraint returns the violated constraint name, or "" if err
// is not a unique violation.
func UniqueViolationConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return pqErr.Constraint
	}
	return ""
}
