package models

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a referenced entity is absent.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID indicates a uniqueness violation on a worker ID.
var ErrDuplicateID = errors.New("worker ID already exists")

// ValidationError carries a user-displayable message about missing or
// invalid field values, detected before any store call.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// CascadeError marks a multi-collection mutation that failed after some of
// its batched steps already committed. The wrapped error is the failing
// step's store error; Step names how far the cascade got.
type CascadeError struct {
	Op   string
	Step string
	Err  error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("%s cascade failed at %s: %v", e.Op, e.Step, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }
