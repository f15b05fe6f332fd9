package jetcsv

import (
	"fmt"

	"github.com/jetsons/jetcsv/internal/scanner"
)

var (
	// ErrBareQuote is reported in strict mode when a quote appears in the
	// middle of an unquoted field.
	ErrBareQuote = scanner.ErrBareQuote
	// ErrUnterminatedQuote is reported in strict mode when the input ends
	// inside a quoted value.
	ErrUnterminatedQuote = scanner.ErrUnterminatedQuote
)

// ParseError describes a problem found while decoding. Line and Column
// are 1-based and locate the start of the offending field or character.
type ParseError struct {
	Line   int
	Column int
	// Field is the column name the value was bound to, if any.
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("jetcsv: line %d, column %d (field %q): %v", e.Line, e.Column, e.Field, e.Err)
	}
	return fmt.Sprintf("jetcsv: line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseErrors is a slice of *ParseError that implements the error interface.
// This allows returning every problem found in a document at once.
type ParseErrors []*ParseError

func (p ParseErrors) Error() string {
	switch len(p) {
	case 0:
		return ""
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0].Error(), len(p)-1)
}

// Unwrap exposes every entry to errors.Is and errors.As.
func (p ParseErrors) Unwrap() []error {
	errs := make([]error, len(p))
	for i, e := range p {
		errs[i] = e
	}
	return errs
}
