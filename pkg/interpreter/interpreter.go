package interpreter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tarn-lang/tarn/pkg/parser"
)

const DefaultMaxCallDepth = 255

type Config struct {
	Stdout       io.Writer
	MaxCallDepth int
}

func (c *Config) Validate(logger *slog.Logger) error {
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}

	if c.MaxCallDepth == 0 {
		c.MaxCallDepth = DefaultMaxCallDepth
	}

	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max call depth must be positive, got %d", c.MaxCallDepth)
	}

	return nil
}

// Interpreter walks a parsed program. It owns the single global scope, which
// persists across Execute calls so a REPL can keep state between lines.
type Interpreter struct {
	logger *slog.Logger
	config Config

	global *Scope
	depth  int
}

func New(logger *slog.Logger, config Config) (*Interpreter, error) {
	err := config.Validate(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to validate interpreter config: %w", err)
	}

	return &Interpreter{
		logger: logger,
		config: config,
		global: newGlobalScope(),
	}, nil
}

// GlobalScope returns the root of the scope chain.
func (i *Interpreter) GlobalScope() *Scope {
	return i.global
}

func (i *Interpreter) Execute(prog *parser.Program) error {
	i.logger.Debug("executing program", "statements", len(prog.Statements))

	for _, stmt := range prog.Statements {
		var ret Value
		err := i.executeStatement(i.global, stmt, &ret)
		if err != nil {
			if errors.Is(err, ErrReturn) {
				return stmt.WrapError(fmt.Errorf("return outside of function"))
			}

			if errors.Is(err, ErrBreak) || errors.Is(err, ErrContinue) {
				return stmt.WrapError(fmt.Errorf("break or continue outside of loop"))
			}

			return err
		}
	}

	return nil
}

func (i *Interpreter) executeStatement(scope *Scope, stmt parser.Statement, ret *Value) error {
	switch stmt := stmt.(type) {
	case *parser.VarStatement:
		var val Value = Nil{}
		if stmt.Expr != nil {
			var err error
			val, err = i.executeExpression(scope, stmt.Expr)
			if err != nil {
				return err
			}
		}

		scope.Declare(stmt.Name, val)

		return nil
	case *parser.FunctionStatement:
		// The closure captures the scope it is declared in, which already
		// contains its own cell, so recursion resolves naturally.
		scope.Declare(stmt.Name, NewClosure(stmt.Name, stmt.Parameters, stmt.Body, scope))

		return nil
	case *parser.PrintStatement:
		val, err := i.executeExpression(scope, stmt.Expr)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(i.config.Stdout, val.String())
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		return nil
	case *parser.ExprStatement:
		_, err := i.executeExpression(scope, stmt.Expr)

		return err
	case *parser.BlockStatement:
		scope := NewScope(scope, "block")

		for _, stmt := range stmt.Body {
			err := i.executeStatement(scope, stmt, ret)
			if err != nil {
				return err
			}
		}

		return nil
	case *parser.IfStatement:
		cond, err := i.executeExpression(scope, stmt.Condition)
		if err != nil {
			return err
		}

		if Truthy(cond) {
			scope := NewScope(scope, "if")

			for _, stmt := range stmt.Body {
				err := i.executeStatement(scope, stmt, ret)
				if err != nil {
					return err
				}
			}

			return nil
		} else if stmt.Else != nil {
			return i.executeStatement(scope, stmt.Else, ret)
		} else {
			return nil
		}
	case *parser.WhileStatement:
		for {
			cond, err := i.executeExpression(scope, stmt.Condition)
			if err != nil {
				return err
			}

			if !Truthy(cond) {
				return nil
			}

			body := NewScope(scope, "while")

			err = i.executeStatements(body, stmt.Body, ret)
			if err != nil {
				if errors.Is(err, ErrBreak) {
					return nil
				}

				if errors.Is(err, ErrContinue) {
					continue
				}

				return err
			}
		}
	case *parser.ForStatement:
		return i.executeForStatement(scope, stmt, ret)
	case *parser.ReturnStatement:
		if stmt.Expr == nil {
			return ErrReturn
		}

		val, err := i.executeExpression(scope, stmt.Expr)
		if err != nil {
			return err
		}

		*ret = val

		return ErrReturn
	case *parser.BreakStatement:
		return ErrBreak
	case *parser.ContinueStatement:
		return ErrContinue
	default:
		return stmt.WrapError(fmt.Errorf("unhandled statement type: %T", stmt))
	}
}

func (i *Interpreter) executeStatements(scope *Scope, stmts []parser.Statement, ret *Value) error {
	for _, stmt := range stmts {
		err := i.executeStatement(scope, stmt, ret)
		if err != nil {
			return err
		}
	}

	return nil
}

// executeForStatement runs a C-style for loop. When the loop declares its
// variable, every iteration gets its own scope chained to the loop's parent,
// with a fresh cell for the loop variable. A closure created in iteration k
// captures iteration k's cell and keeps observing that iteration's value
// after the loop rebinds the variable for the next pass.
func (i *Interpreter) executeForStatement(scope *Scope, stmt *parser.ForStatement, ret *Value) error {
	decl, perIteration := stmt.Init.(*parser.VarStatement)
	if !perIteration {
		return i.executeSharedScopeFor(scope, stmt, ret)
	}

	iter := NewScope(scope, "for")

	err := i.executeStatement(iter, decl, ret)
	if err != nil {
		return err
	}

	for {
		if stmt.Condition != nil {
			cond, err := i.executeExpression(iter, stmt.Condition)
			if err != nil {
				return err
			}

			if !Truthy(cond) {
				return nil
			}
		}

		body := NewScope(iter, "for body")

		err := i.executeStatements(body, stmt.Body, ret)
		if err != nil {
			if errors.Is(err, ErrBreak) {
				return nil
			}

			if !errors.Is(err, ErrContinue) {
				return err
			}
		}

		// The next iteration's scope is a sibling of the current one,
		// chained to the loop's parent. It starts from the current value so
		// the update's write lands in the new cell, leaving the cell any
		// closures captured this iteration untouched.
		next := NewScope(scope, "for")

		cell, ok := iter.Lookup(decl.Name)
		if !ok {
			return decl.WrapError(UndefinedVariableError{Name: decl.Name})
		}

		next.Declare(decl.Name, cell.Get())

		if stmt.Update != nil {
			_, err := i.executeExpression(next, stmt.Update)
			if err != nil {
				return err
			}
		}

		iter = next
	}
}

// executeSharedScopeFor handles loops whose init clause does not declare a
// variable. There is nothing to rebind per pass, so one scope serves the
// whole loop.
func (i *Interpreter) executeSharedScopeFor(scope *Scope, stmt *parser.ForStatement, ret *Value) error {
	iter := NewScope(scope, "for")

	if stmt.Init != nil {
		err := i.executeStatement(iter, stmt.Init, ret)
		if err != nil {
			return err
		}
	}

	for {
		if stmt.Condition != nil {
			cond, err := i.executeExpression(iter, stmt.Condition)
			if err != nil {
				return err
			}

			if !Truthy(cond) {
				return nil
			}
		}

		body := NewScope(iter, "for body")

		err := i.executeStatements(body, stmt.Body, ret)
		if err != nil {
			if errors.Is(err, ErrBreak) {
				return nil
			}

			if !errors.Is(err, ErrContinue) {
				return err
			}
		}

		if stmt.Update != nil {
			_, err := i.executeExpression(iter, stmt.Update)
			if err != nil {
				return err
			}
		}
	}
}

func (i *Interpreter) executeExpression(scope *Scope, expr parser.Expr) (Value, error) {
	switch expr := expr.(type) {
	case *parser.NumberLiteral:
		return Number(expr.Value), nil
	case *parser.StringLiteral:
		return String(expr.Value), nil
	case *parser.BooleanLiteral:
		return Bool(expr.Value), nil
	case *parser.NilLiteral:
		return Nil{}, nil
	case *parser.IdentifierExpr:
		cell, ok := scope.Lookup(expr.Name)
		if !ok {
			return nil, expr.WrapError(UndefinedVariableError{Name: expr.Name})
		}

		return cell.Get(), nil
	case *parser.AssignExpr:
		val, err := i.executeExpression(scope, expr.Expr)
		if err != nil {
			return nil, err
		}

		err = scope.Assign(expr.Name, val)
		if err != nil {
			return nil, expr.WrapError(err)
		}

		return val, nil
	case *parser.LogicalExpr:
		lhs, err := i.executeExpression(scope, expr.Left)
		if err != nil {
			return nil, err
		}

		switch expr.Operator {
		case parser.OperatorLogicalOr:
			if Truthy(lhs) {
				return lhs, nil
			}
		case parser.OperatorLogicalAnd:
			if !Truthy(lhs) {
				return lhs, nil
			}
		default:
			return nil, expr.WrapError(fmt.Errorf("unhandled logical operator %q", expr.Operator))
		}

		return i.executeExpression(scope, expr.Right)
	case *parser.BinaryExpr:
		lhs, err := i.executeExpression(scope, expr.Left)
		if err != nil {
			return nil, err
		}

		rhs, err := i.executeExpression(scope, expr.Right)
		if err != nil {
			return nil, err
		}

		result, err := i.binaryOperate(lhs, rhs, expr.Operator)
		if err != nil {
			return nil, expr.WrapError(err)
		}

		return result, nil
	case *parser.UnaryExpr:
		val, err := i.executeExpression(scope, expr.Expr)
		if err != nil {
			return nil, err
		}

		switch expr.Operator {
		case parser.OperatorNot:
			return Bool(!Truthy(val)), nil
		case parser.OperatorSubtraction:
			n, err := i.numberOrFail(val)
			if err != nil {
				return nil, expr.WrapError(err)
			}

			return Number(-n), nil
		default:
			return nil, expr.WrapError(fmt.Errorf("unhandled unary operator %q", expr.Operator))
		}
	case *parser.CallExpr:
		callee, err := i.executeExpression(scope, expr.Callee)
		if err != nil {
			return nil, err
		}

		args := make([]Value, 0, len(expr.Args))
		for _, arg := range expr.Args {
			val, err := i.executeExpression(scope, arg)
			if err != nil {
				return nil, err
			}

			args = append(args, val)
		}

		result, err := i.Invoke(callee, args)
		if err != nil {
			return nil, expr.WrapError(err)
		}

		return result, nil
	default:
		return nil, expr.WrapError(fmt.Errorf("unhandled expression type: %T", expr))
	}
}

// Invoke calls a closure or builtin. For a closure it creates an activation
// scope chained to the closure's captured scope, never the caller's, binds
// parameters there as fresh cells, and runs the body. The activation stays
// alive after the call only if something still references it, such as a
// nested closure returned to the caller.
func (i *Interpreter) Invoke(callee Value, args []Value) (Value, error) {
	switch fn := callee.(type) {
	case *Closure:
		if len(args) != len(fn.params) {
			return nil, ArityMismatchError{Name: fn.name, Want: len(fn.params), Got: len(args)}
		}

		if i.depth >= i.config.MaxCallDepth {
			return nil, fmt.Errorf("call stack exceeded calling %s", fn.name)
		}

		i.depth++
		defer func() { i.depth-- }()

		activation := NewScope(fn.scope, fn.name)
		for idx, param := range fn.params {
			activation.Declare(param, args[idx])
		}

		var ret Value
		for _, stmt := range fn.body {
			err := i.executeStatement(activation, stmt, &ret)
			if err != nil {
				if errors.Is(err, ErrReturn) {
					if ret == nil {
						return Nil{}, nil
					}

					return ret, nil
				}

				// A loop sentinel must not cross the call boundary into the
				// caller's loop.
				if errors.Is(err, ErrBreak) || errors.Is(err, ErrContinue) {
					return nil, fmt.Errorf("break or continue outside of loop in %s", fn.name)
				}

				return nil, err
			}
		}

		return Nil{}, nil
	case *Builtin:
		if len(args) != fn.arity {
			return nil, ArityMismatchError{Name: fn.name, Want: fn.arity, Got: len(args)}
		}

		return fn.fn(args)
	default:
		return nil, fmt.Errorf("can only call functions, got %s", callee.String())
	}
}

func (i *Interpreter) binaryOperate(lhs, rhs Value, op parser.Operator) (Value, error) {
	switch op {
	case parser.OperatorAddition:
		switch lhs := lhs.(type) {
		case Number:
			rhs, err := i.numberOrFail(rhs)
			if err != nil {
				return nil, err
			}

			return Number(float64(lhs) + rhs), nil
		case String:
			rhs, ok := rhs.(String)
			if !ok {
				return nil, fmt.Errorf("operands of + must be two numbers or two strings")
			}

			return String(lhs + rhs), nil
		default:
			return nil, fmt.Errorf("operands of + must be two numbers or two strings")
		}
	case parser.OperatorSubtraction, parser.OperatorMultiplication, parser.OperatorDivision,
		parser.OperatorLess, parser.OperatorLessEqual, parser.OperatorGreater, parser.OperatorGreaterEqual:
		lhsVal, err := i.numberOrFail(lhs)
		if err != nil {
			return nil, err
		}

		rhsVal, err := i.numberOrFail(rhs)
		if err != nil {
			return nil, err
		}

		switch op {
		case parser.OperatorSubtraction:
			return Number(lhsVal - rhsVal), nil
		case parser.OperatorMultiplication:
			return Number(lhsVal * rhsVal), nil
		case parser.OperatorDivision:
			if rhsVal == 0 {
				return nil, fmt.Errorf("division by zero")
			}

			return Number(lhsVal / rhsVal), nil
		case parser.OperatorLess:
			return Bool(lhsVal < rhsVal), nil
		case parser.OperatorLessEqual:
			return Bool(lhsVal <= rhsVal), nil
		case parser.OperatorGreater:
			return Bool(lhsVal > rhsVal), nil
		default:
			return Bool(lhsVal >= rhsVal), nil
		}
	case parser.OperatorEqual:
		return Bool(valuesEqual(lhs, rhs)), nil
	case parser.OperatorNotEqual:
		return Bool(!valuesEqual(lhs, rhs)), nil
	default:
		return nil, fmt.Errorf("unsupported binary operation: %s", op)
	}
}

func (i *Interpreter) numberOrFail(val Value) (float64, error) {
	n, ok := val.(Number)
	if !ok {
		return 0, fmt.Errorf("expected number value, got %s", val.String())
	}

	return float64(n), nil
}
