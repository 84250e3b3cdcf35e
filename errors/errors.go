/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package errors provides error wrapping utilities and the classified errors
// that the em command maps to exit codes.
package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with a descriptive action and optional detail.
// It returns a formatted error in the form "failed to <action> [(<detail>)]: <error>".
//
// Example usage:
//
//	if err := os.MkdirAll(dir, 0755); err != nil {
//	    return errors.Wrap("create directory", dir, err)
//	}
func Wrap(action, detail string, err error) error {
	if err == nil {
		return nil
	}

	if detail != "" {
		return fmt.Errorf("failed to %s (%s): %w", action, detail, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// Kind classifies an error by who is expected to fix it.
type Kind int

const (
	// KindUnknown is any error that was not classified.
	KindUnknown Kind = iota
	// KindUsage is a malformed argument, an unknown type or an empty name.
	KindUsage
	// KindConvention is a name that breaks a naming rule, such as a
	// component without a hyphen.
	KindConvention
	// KindConflict is a destination that already exists.
	KindConflict
	// KindPrecondition is an environment that em cannot work in, such as a
	// directory that is not an em project.
	KindPrecondition
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindConvention:
		return "convention"
	case KindConflict:
		return "conflict"
	case KindPrecondition:
		return "precondition"
	default:
		return "unknown"
	}
}

// IsUserError reports whether the kind is a handled user mistake rather than
// an environment failure.
func (k Kind) IsUserError() bool {
	return k == KindUsage || k == KindConvention || k == KindConflict
}

// Error is a classified error. Hint, when set, is printed after the message
// as a follow-up line.
type Error struct {
	Kind Kind
	Msg  string
	Hint string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Usage returns a usage error.
func Usage(format string, args ...interface{}) *Error {
	return newError(KindUsage, format, args...)
}

// Convention returns a naming-convention error.
func Convention(format string, args ...interface{}) *Error {
	return newError(KindConvention, format, args...)
}

// Conflict returns a destination-conflict error.
func Conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

// Precondition returns an environment-precondition error.
func Precondition(format string, args ...interface{}) *Error {
	return newError(KindPrecondition, format, args...)
}

// WithHint sets the follow-up hint and returns the error for chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithCause sets the underlying error and returns the error for chaining.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// KindOf returns the kind of the first classified error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnknown
}

// HintOf returns the hint of the first classified error in err's chain.
func HintOf(err error) string {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Hint
	}
	return ""
}
