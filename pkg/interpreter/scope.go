package interpreter

// A Cell is one mutable storage slot for one variable. Scopes and closures
// share cells by pointer, so every holder observes every write.
type Cell struct {
	value Value
}

func NewCell(value Value) *Cell {
	return &Cell{value: value}
}

func (c *Cell) Get() Value {
	return c.value
}

func (c *Cell) Set(value Value) {
	c.value = value
}

// A Scope maps names to cells and chains to an enclosing scope. The chain is
// acyclic and ends at the global scope, whose parent is nil.
type Scope struct {
	parent *Scope
	name   string
	cells  map[string]*Cell
}

func NewScope(parent *Scope, name string) *Scope {
	return &Scope{
		cells:  make(map[string]*Cell),
		name:   name,
		parent: parent,
	}
}

func (s *Scope) Name() string {
	return s.name
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

// Declare installs a fresh cell under name in this scope only, shadowing any
// binding of the same name in an enclosing scope. Redeclaring a name rebinds
// the entry to a new cell; holders of the old cell keep the old value.
func (s *Scope) Declare(name string, value Value) *Cell {
	c := NewCell(value)
	s.cells[name] = c

	return c
}

// Lookup resolves name against this scope first, then up the parent chain.
// It returns the cell itself, not a copy of its value, so reads through the
// cell always see the latest write.
func (s *Scope) Lookup(name string) (*Cell, bool) {
	if s == nil {
		return nil, false
	}

	c, ok := s.cells[name]
	if ok {
		return c, true
	}

	return s.parent.Lookup(name)
}

// Assign overwrites the cell that Lookup would resolve. It never creates a
// binding; assigning an undeclared name is an error.
func (s *Scope) Assign(name string, value Value) error {
	c, ok := s.Lookup(name)
	if !ok {
		return UndefinedVariableError{Name: name}
	}

	c.Set(value)

	return nil
}
