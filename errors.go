package main

import (
	"errors"
	"fmt"
)

var (
	ErrOddLength    = errors.New("odd number of hex digits")
	ErrInvalidDigit = errors.New("invalid hex digit")
	// ErrUsage marks command-line misuse, reported with exit status 2
	ErrUsage = errors.New("usage error")
)

// OpcodeError reports a listing line that does not encode whole bytes.
type OpcodeError struct {
	Line   int    // 1-based line number in the source
	Column int    // 1-based column in the cleaned token, 0 when not applicable
	Text   string // cleaned token
	Err    error
}

func (e *OpcodeError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("invalid opcode on line %d: %v at column %d (%q)", e.Line, e.Err, e.Column, e.Text)
	}
	return fmt.Sprintf("invalid opcode on line %d: %v (%q)", e.Line, e.Err, e.Text)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
