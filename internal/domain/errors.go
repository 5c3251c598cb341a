package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrValidation  = errors.New("validation error")
	ErrStore       = errors.New("store error")
	ErrUnavailable = errors.New("unavailable")
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StoreError reports a failed statement against the backing store. Op names
// the operation ("insert", "select", "delete") and Code carries the store's
// error code when one was returned (e.g. "ThrottlingException").
//
// StoreError matches both ErrStore and the wrapped cause with errors.Is.
type StoreError struct {
	Op   string
	Code string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s): %v", ErrStore.Error(), e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrStore.Error(), e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}
