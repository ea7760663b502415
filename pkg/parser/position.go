package parser

import "fmt"

// Position is a location in a source file. AST nodes embed it so that any
// stage can attach file:line:column context to an error.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) WrapError(err error) error {
	return PositionError{Position: p, Err: err}
}

type PositionError struct {
	Position Position
	Err      error
}

func (e PositionError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", e.Position.File, e.Position.Line, e.Position.Column, e.Err)
}

func (e PositionError) Unwrap() error {
	return e.Err
}
