// Package errors provides structured error reporting for the styling engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindParsing indicates a declaration or stylesheet parsing failure.
	KindParsing
	// KindResolve indicates a failure while resolving style values.
	KindResolve
	// KindRegistry indicates invalid property registry usage.
	KindRegistry
	// KindInternal indicates a violated precondition inside the engine.
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindParsing:
		return "parsing"
	case KindResolve:
		return "resolve"
	case KindRegistry:
		return "registry"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// StyleError represents a structured error in the styling engine.
type StyleError struct {
	// Op is the operation that failed (e.g., "style.SetProperty").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Property is the property name involved, if applicable.
	Property string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *StyleError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("%s [%s] property=%s: %v", e.Op, e.Kind, e.Property, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *StyleError) Unwrap() error {
	return e.Err
}
