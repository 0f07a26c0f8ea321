package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("username or email already exists")
	ErrFacultyNotFound = errors.New("faculty not found")
	ErrFacultyExists   = errors.New("faculty already exists")
	ErrCourseNotFound  = errors.New("course not found")
	ErrCourseExists    = errors.New("course code already exists")
	ErrClassNotFound   = errors.New("class not found")
	ErrAlreadyEnrolled = errors.New("already enrolled in this class")
	ErrReportNotFound  = errors.New("report not found")
	ErrFeedbackExists  = errors.New("report already has feedback")
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint error,
// optionally for a specific named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
