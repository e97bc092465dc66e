package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrBulkNotAllowed = errors.New("bulk upload is not part of this seller tier")
	ErrEmptyUpload    = errors.New("upload has no rows")
	ErrTooManyRows    = errors.New("upload has too many rows")
)

// ValidationError names the field that failed and, for bulk uploads, the CSV
// line it was on.
type ValidationError struct {
	Line  int
	Field string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: invalid %s", e.Line, e.Field)
	}
	return "invalid " + e.Field
}
