package config

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError is returned when an explicitly referenced config file is
// missing. Optional root files never produce it; their absence yields an
// empty layer instead.
type NotFoundError struct {
	Path         string
	ReferencedBy string // origin of the layer holding the reference, if any
}

func (e *NotFoundError) Error() string {
	if e.ReferencedBy != "" {
		return fmt.Sprintf("config file %s referenced by %s does not exist", e.Path, e.ReferencedBy)
	}
	return fmt.Sprintf("config file %s does not exist", e.Path)
}

// ParseError is returned for a malformed config document. Line and
// Column are 1-based and zero when the parser cannot locate the fault.
type ParseError struct {
	Origin string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Origin, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Origin, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CyclicSubconfigError is returned when subconfig references form a
// cycle. Cycle holds the absolute paths from the repeated file back to
// itself, in reference order.
type CyclicSubconfigError struct {
	Cycle []string
}

func (e *CyclicSubconfigError) Error() string {
	return fmt.Sprintf("cyclic subconfig reference: %s", strings.Join(e.Cycle, " -> "))
}

// UnknownOptionError reports a key not present in the schema registry.
// Under PolicyWarn it is logged and discarded; under PolicyError it
// aborts the pass.
type UnknownOptionError struct {
	Key    string
	Origin string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q set by %s", e.Key, e.Origin)
}

// InvalidOptionTypeError reports a value whose variant does not match
// the option's declared type. Always fatal: a mistyped value cannot be
// safely defaulted or coerced.
type InvalidOptionTypeError struct {
	Key      string
	Origin   string
	Expected Kind
	Actual   Kind
}

func (e *InvalidOptionTypeError) Error() string {
	return fmt.Sprintf("option %q set by %s: expected %s, got %s",
		e.Key, e.Origin, e.Expected, e.Actual)
}

// IsNotFound checks whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsCyclic checks whether err is a CyclicSubconfigError.
func IsCyclic(err error) bool {
	var ce *CyclicSubconfigError
	return errors.As(err, &ce)
}
