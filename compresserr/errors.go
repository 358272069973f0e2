// Package compresserr defines the failure kinds surfaced by the compression pipeline.
package compresserr

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure
type Kind int

const (
	KindIO Kind = iota
	KindInvalidData
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindInvalidData:
		return "invalid data"
	default:
		return "unknown"
	}
}

// Error is a classified pipeline failure wrapping its cause
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("I/O error: %v", e.Err)
	case KindInvalidData:
		if e.Err != nil {
			return fmt.Sprintf("invalid data: %v", e.Err)
		}
		return "invalid data"
	default:
		return fmt.Sprintf("unknown error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IOError wraps a read, write, open or create failure
func IOError(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindIO, Err: err}
}

// InvalidData wraps a codec-level corruption
func InvalidData(err error) error {
	return &Error{Kind: KindInvalidData, Err: err}
}

// KindOf returns the kind of err and whether it carries one
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// IsIO reports whether err is an I/O failure
func IsIO(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindIO
}

// IsInvalidData reports whether err is a corrupt stream
func IsInvalidData(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindInvalidData
}
