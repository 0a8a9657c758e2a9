// Package hints marks errors that mean "step skipped" rather than "step
// failed". A disabled feature or an empty work set surfaces as a hint; the
// caller tests for the label with IsHint and drops the error instead of
// reporting it. The label travels as a behavioral interface, so consumers
// never import the producer's sentinel values.
package hints

import "errors"

// hinter is the behavioral marker. Any error in a chain implementing it
// with a true result counts as a hint.
type hinter interface {
	IsHint() bool
}

type hint struct {
	cause error
}

func (h hint) Error() string {
	if h.cause == nil {
		return "hint"
	}
	return h.cause.Error()
}

func (h hint) IsHint() bool  { return true }
func (h hint) Unwrap() error { return h.cause }

// New returns a hint with the given message.
func New(msg string) error {
	return hint{cause: errors.New(msg)}
}

// Wrap labels err as a hint. A nil err stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return hint{cause: err}
}

// IsHint reports whether any error in the chain carries the hint label.
func IsHint(err error) bool {
	var h hinter
	return errors.As(err, &h) && h.IsHint()
}

// Is reports whether err is a hint that also matches target.
func Is(err, target error) bool {
	return IsHint(err) && errors.Is(err, target)
}
