package interpreter

import "time"

// newGlobalScope builds the root of every scope chain. Builtins live here as
// ordinary cells, so user code may shadow them.
func newGlobalScope() *Scope {
	global := NewScope(nil, "global")

	global.Declare("clock", &Builtin{
		name:  "clock",
		arity: 0,
		fn: func([]Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
		},
	})

	return global
}
