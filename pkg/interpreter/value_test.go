package interpreter_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tarn-lang/tarn/pkg/interpreter"
)

func TestNumberFormatting(t *testing.T) {
	r := require.New(t)

	// Integral numbers print without a decimal point.
	r.Equal("1", interpreter.Number(1).String())
	r.Equal("-2", interpreter.Number(-2).String())
	r.Equal("2.5", interpreter.Number(2.5).String())
	r.Equal("0", interpreter.Number(0).String())
}

func TestValueStrings(t *testing.T) {
	r := require.New(t)

	r.Equal("hello", interpreter.String("hello").String())
	r.Equal("true", interpreter.Bool(true).String())
	r.Equal("false", interpreter.Bool(false).String())
	r.Equal("nil", interpreter.Nil{}.String())
}

func TestTruthiness(t *testing.T) {
	r := require.New(t)

	r.False(interpreter.Truthy(interpreter.Nil{}))
	r.False(interpreter.Truthy(interpreter.Bool(false)))
	r.True(interpreter.Truthy(interpreter.Bool(true)))
	r.True(interpreter.Truthy(interpreter.Number(0)))
	r.True(interpreter.Truthy(interpreter.String("")))
}
