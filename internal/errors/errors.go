// Package errors provides a structured error type hierarchy for hgrep.
//
// This package defines base error types for common error conditions, wrapped error
// types that add contextual information, and helper functions for error wrapping
// and type checking.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrNotFound - history file not found
//   - ErrInvalid - validation failed (bad pattern, bad config value)
//   - ErrIO - file I/O error
//   - ErrOutOfRange - requested entry index does not exist
//   - ErrCanceled - user canceled operation
//
// Wrapped error types (add context):
//   - OpenError{Path, Err} - history file could not be opened
//   - ReadError{Line, Err} - history file could not be read
//   - PatternError{Pattern, Err} - search pattern failed to compile
//   - IndexError{Requested, Max} - entry index out of range
//   - ConfigError{Path, Err} - configuration errors
//
// # Usage
//
//	// Wrap with context using Wrap
//	return errors.Wrap(err, "parse history")
//
//	// Use structured error types
//	return &errors.OpenError{Path: path, Err: errors.ErrNotFound}
//
//	// Check error types
//	if errors.IsNotFound(err) {
//	    // handle not found
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = baseError("not found")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")

	// ErrOutOfRange indicates an index outside the valid range.
	ErrOutOfRange = baseError("out of range")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// OpenError reports a history file that could not be opened.
type OpenError struct {
	// Path is the file that was being opened.
	Path string
	// Err is the underlying error. It wraps ErrNotFound or ErrIO.
	Err error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("opening history file %q: %s", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ReadError reports an I/O failure in the middle of a history file.
type ReadError struct {
	// Line is the 1-based number of the line being read.
	Line int
	// Err is the underlying error.
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading line number %d: %s", e.Line, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrIO) match every read failure.
func (e *ReadError) Is(target error) bool { return target == ErrIO }

// PatternError reports a user-supplied pattern that is not a valid regular expression.
type PatternError struct {
	// Pattern is the raw pattern as the user typed it.
	Pattern string
	// Err is the syntax error from the regexp package.
	Err error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("parsing pattern %q: %s", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInvalid) match every pattern failure.
func (e *PatternError) Is(target error) bool { return target == ErrInvalid }

// IndexError reports a requested entry index past the end of the entry list.
type IndexError struct {
	// Requested is the index asked for.
	Requested int
	// Max is the largest valid index, or -1 when the list is empty.
	Max int
}

func (e *IndexError) Error() string {
	if e.Max < 0 {
		return fmt.Sprintf("entry index %x out of range: history is empty", e.Requested)
	}
	return fmt.Sprintf("entry index %x out of range: maximum is %x", e.Requested, e.Max)
}

// Is lets errors.Is(err, ErrOutOfRange) match.
func (e *IndexError) Is(target error) bool { return target == ErrOutOfRange }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error. Wrap returns nil when err is nil.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsOutOfRange reports whether err is or wraps ErrOutOfRange.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// AsOpenError reports whether err can be typed as an *OpenError.
func AsOpenError(err error) (*OpenError, bool) {
	var oe *OpenError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

// AsReadError reports whether err can be typed as a *ReadError.
func AsReadError(err error) (*ReadError, bool) {
	var re *ReadError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// AsPatternError reports whether err can be typed as a *PatternError.
func AsPatternError(err error) (*PatternError, bool) {
	var pe *PatternError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsIndexError reports whether err can be typed as an *IndexError.
func AsIndexError(err error) (*IndexError, bool) {
	var ie *IndexError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
