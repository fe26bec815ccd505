// Package errs is the single entry point to cockroachdb/errors so stack traces and marks
// behave the same in every layer.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark tags err so that Is(err, markErr) holds while keeping the original chain.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}
