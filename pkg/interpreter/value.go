package interpreter

import "strconv"

// Value is the dynamic value type of the language.
type Value interface {
	String() string
}

type Number float64

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

type String string

func (s String) String() string {
	return string(s)
}

type Bool bool

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

type Nil struct{}

func (Nil) String() string {
	return "nil"
}

// Truthy reports the language's truthiness: false and nil are falsey,
// everything else is truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Nil:
		return false
	default:
		return true
	}
}

func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Nil:
		_, ok := b.(Nil)
		return ok
	default:
		return a == b
	}
}
