/*
errors.go - Error taxonomy for the exam domain

PURPOSE:
  Every failure path in the core yields a distinguishable error. The HTTP
  layer maps these to status codes and user-facing messages; nothing is
  silently swallowed.

ERROR CATEGORIES:
  1. User input errors  - empty lookup key, no valid rows in an upload
  2. Data format errors - an upload that cannot be decoded at all
  3. Not-found          - lookup miss, distinct from empty input
  4. Storage errors     - surfaced wrapped, atomicity bounds the damage

Note the deliberate absence of a duplicate-key error: the store's upsert
semantics mean a repeated national ID is an overwrite, never a conflict.
*/
package exam

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no result exists for a national ID.
	ErrNotFound = errors.New("result not found")

	// ErrEmptyNationalID is returned when a lookup is attempted with a
	// blank key. Kept distinct from ErrNotFound so the UI can tell the
	// user to type something rather than claim no record exists.
	ErrEmptyNationalID = errors.New("national ID is empty")

	// ErrNoValidRows is returned when every row in an upload was missing
	// at least one mandatory field. Nothing is written in that case.
	ErrNoValidRows = errors.New("no valid rows in import")

	// ErrBadFormat is returned when an uploaded file cannot be decoded as
	// a spreadsheet at all. Distinct from ErrNoValidRows: the file was not
	// even tabular.
	ErrBadFormat = errors.New("unreadable spreadsheet format")
)

// MissingFieldError reports which mandatory field stopped a Result from
// being constructed.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("mandatory field %q is empty", e.Field)
}

// ErrMissingField builds a MissingFieldError for the given field.
func ErrMissingField(field string) error {
	return &MissingFieldError{Field: field}
}
