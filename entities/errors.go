package entities

import (
	"errors"
	"fmt"
)

// Operation identifies which client operation produced a RequestError.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpList   Operation = "list"
)

// Every RequestError matches exactly one of these with errors.Is.
var (
	ErrCreationFailed = errors.New("creation failed")
	ErrReadFailed     = errors.New("read failed")
	ErrUpdateFailed   = errors.New("update failed")
	ErrDeleteFailed   = errors.New("delete failed")
	ErrListFailed     = errors.New("list failed")
)

// ErrMissingParent is returned by Create for a child kind when no parent id was given.
var ErrMissingParent = errors.New("parent id is required")

// RequestError describes a request that did not produce the expected status. Status is zero
// if no response was received, in which case Err holds the transport error.
type RequestError struct {
	Op     Operation
	Kind   string
	ID     int
	Status int
	Body   string
	Err    error
}

func (e *RequestError) Error() string {
	target := e.Kind
	if e.ID != 0 {
		target = fmt.Sprintf("%s %d", e.Kind, e.ID)
	}
	if e.Status == 0 {
		return fmt.Sprintf("failed to %s %s: %s", e.Op, target, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to %s %s: status %d: %s", e.Op, target, e.Status, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("failed to %s %s: unexpected status %d", e.Op, target, e.Status)
	}
	return fmt.Sprintf("failed to %s %s: unexpected status %d: %s", e.Op, target, e.Status, e.Body)
}

func (e *RequestError) Unwrap() []error {
	errs := []error{sentinelFor(e.Op)}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func sentinelFor(op Operation) error {
	switch op {
	case OpCreate:
		return ErrCreationFailed
	case OpRead:
		return ErrReadFailed
	case OpUpdate:
		return ErrUpdateFailed
	case OpDelete:
		return ErrDeleteFailed
	default:
		return ErrListFailed
	}
}
