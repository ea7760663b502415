package interpreter

import (
	"fmt"

	"github.com/tarn-lang/tarn/pkg/parser"
)

// A Closure pairs a function body with the scope that was live at its
// definition. The scope is captured by reference, not copied: writes to a
// captured variable after the closure is made are visible inside later
// invocations, and writes made by the closure are visible outside.
type Closure struct {
	name   string
	params []string
	body   []parser.Statement
	scope  *Scope
}

func NewClosure(name string, params []string, body []parser.Statement, scope *Scope) *Closure {
	return &Closure{
		name:   name,
		params: params,
		body:   body,
		scope:  scope,
	}
}

func (c *Closure) Name() string {
	return c.name
}

func (c *Closure) Arity() int {
	return len(c.params)
}

// Scope returns the captured defining scope.
func (c *Closure) Scope() *Scope {
	return c.scope
}

func (c *Closure) String() string {
	return fmt.Sprintf("<fn %s>", c.name)
}

// A Builtin is a function implemented by the host.
type Builtin struct {
	name  string
	arity int
	fn    func(args []Value) (Value, error)
}

func (b *Builtin) Name() string {
	return b.name
}

func (b *Builtin) String() string {
	return fmt.Sprintf("<builtin %s>", b.name)
}
