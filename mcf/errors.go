package mcf

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every ParseError.
var ErrSyntax = errors.New("malformed MCF")

// ParseError reports a malformed line in an MCF file.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}
