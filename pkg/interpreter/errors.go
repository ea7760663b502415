package interpreter

import (
	"errors"
	"fmt"
)

var (
	ErrReturn = errors.New("return")

	ErrContinue = errors.New("continue")
	ErrBreak    = errors.New("break")
)

type UndefinedVariableError struct {
	Name string
}

func (e UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

type ArityMismatchError struct {
	Name string
	Want int
	Got  int
}

func (e ArityMismatchError) Error() string {
	return fmt.Sprintf("%s expects %d arguments, got %d", e.Name, e.Want, e.Got)
}
