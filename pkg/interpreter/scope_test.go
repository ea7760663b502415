package interpreter_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tarn-lang/tarn/pkg/interpreter"
)

func TestScopeDeclareAndLookup(t *testing.T) {
	r := require.New(t)

	scope := interpreter.NewScope(nil, "global")
	declared := scope.Declare("x", interpreter.Number(1))

	cell, ok := scope.Lookup("x")
	r.True(ok)
	r.Same(declared, cell)
	r.Equal(interpreter.Number(1), cell.Get())
}

func TestScopeLookupMiss(t *testing.T) {
	r := require.New(t)

	scope := interpreter.NewScope(nil, "global")

	_, ok := scope.Lookup("missing")
	r.False(ok)
}

func TestScopeAncestorLookupReturnsAncestorCell(t *testing.T) {
	r := require.New(t)

	global := interpreter.NewScope(nil, "global")
	declared := global.Declare("x", interpreter.Number(1))

	inner := interpreter.NewScope(interpreter.NewScope(global, "middle"), "inner")

	cell, ok := inner.Lookup("x")
	r.True(ok)
	r.Same(declared, cell)
}

func TestScopeAssignWritesResolvedCellInPlace(t *testing.T) {
	r := require.New(t)

	global := interpreter.NewScope(nil, "global")
	cell := global.Declare("x", interpreter.Number(1))

	inner := interpreter.NewScope(global, "inner")
	r.NoError(inner.Assign("x", interpreter.Number(2)))

	// Every holder of the cell observes the write.
	r.Equal(interpreter.Number(2), cell.Get())
}

func TestScopeAssignUndeclared(t *testing.T) {
	r := require.New(t)

	scope := interpreter.NewScope(nil, "global")

	err := scope.Assign("missing", interpreter.Number(1))
	r.Error(err)

	var undefErr interpreter.UndefinedVariableError
	r.True(errors.As(err, &undefErr))
	r.Equal("missing", undefErr.Name)
}

func TestScopeShadowingLeavesAncestorUntouched(t *testing.T) {
	r := require.New(t)

	global := interpreter.NewScope(nil, "global")
	outer := global.Declare("x", interpreter.Number(1))

	inner := interpreter.NewScope(global, "inner")
	shadow := inner.Declare("x", interpreter.Number(2))

	r.NotSame(outer, shadow)
	r.Equal(interpreter.Number(1), outer.Get())

	cell, ok := inner.Lookup("x")
	r.True(ok)
	r.Same(shadow, cell)
}

func TestScopeRedeclareInstallsFreshCell(t *testing.T) {
	r := require.New(t)

	scope := interpreter.NewScope(nil, "global")
	old := scope.Declare("x", interpreter.Number(1))
	fresh := scope.Declare("x", interpreter.Number(2))

	r.NotSame(old, fresh)

	// The old cell keeps its value for anyone still holding it; lookups by
	// name resolve to the new cell.
	r.Equal(interpreter.Number(1), old.Get())

	cell, ok := scope.Lookup("x")
	r.True(ok)
	r.Same(fresh, cell)
}

func TestScopeDeepChainLookup(t *testing.T) {
	r := require.New(t)

	global := interpreter.NewScope(nil, "global")
	declared := global.Declare("x", interpreter.Number(42))

	scope := global
	for depth := 0; depth < 1000; depth++ {
		scope = interpreter.NewScope(scope, fmt.Sprintf("block%d", depth))
	}

	cell, ok := scope.Lookup("x")
	r.True(ok)
	r.Same(declared, cell)

	_, ok = scope.Lookup("missing")
	r.False(ok)
}

func TestScopeParentChain(t *testing.T) {
	r := require.New(t)

	global := interpreter.NewScope(nil, "global")
	inner := interpreter.NewScope(global, "inner")

	r.Same(global, inner.Parent())
	r.Nil(global.Parent())
	r.Equal("inner", inner.Name())
}
