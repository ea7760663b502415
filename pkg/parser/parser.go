package parser

import (
	"fmt"
	"io"
	"strconv"
)

type parser struct {
	tokens []Token
	pos    int

	errs *ErrorSet
}

// Parse scans and parses one source file. Syntax errors do not stop the
// parse; they are collected and returned together so the user sees all of
// them in one run.
func Parse(file, src string) (*Program, error) {
	tokens, err := Lex(file, src)
	if err != nil {
		return nil, FileError{File: file, Err: err}
	}

	p := &parser{
		tokens: tokens,
		errs:   newErrorSet(),
	}

	prog := &Program{}
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errs.Add(err)
			p.synchronize()
			continue
		}

		prog.Statements = append(prog.Statements, stmt)
	}

	err = p.errs.Defer(nil)
	if err != nil {
		return nil, FileError{File: file, Err: err}
	}

	return prog, nil
}

// ParseReader reads everything from r and parses it as one source file.
func ParseReader(file string, r io.Reader) (*Program, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, FileError{File: file, Err: err}
	}

	return Parse(file, string(src))
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) previous() Token {
	return p.tokens[p.pos-1]
}

func (p *parser) atEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *parser) next() Token {
	tok := p.peek()
	if !p.atEnd() {
		p.pos++
	}

	return tok
}

func (p *parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.peek().Kind == kind {
			p.next()
			return true
		}
	}

	return false
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	if p.peek().Kind != kind {
		tok := p.peek()
		return tok, tok.WrapError(fmt.Errorf("expected %q, got %q", kind, tok.Kind))
	}

	return p.next(), nil
}

// synchronize skips tokens until a likely statement boundary so one syntax
// error does not cascade into the rest of the file.
func (p *parser) synchronize() {
	p.next()

	for !p.atEnd() {
		if p.previous().Kind == TokenSemicolon {
			return
		}

		switch p.peek().Kind {
		case TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
			return
		}

		p.next()
	}
}

func (p *parser) declaration() (Statement, error) {
	switch {
	case p.match(TokenVar):
		return p.varDeclaration()
	case p.match(TokenFun):
		return p.funDeclaration()
	default:
		return p.statement()
	}
}

func (p *parser) varDeclaration() (Statement, error) {
	pos := p.previous().Position

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	var expr Expr
	if p.match(TokenEqual) {
		expr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	_, err = p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}

	return &VarStatement{Name: name.Literal, Expr: expr, Position: pos}, nil
}

func (p *parser) funDeclaration() (Statement, error) {
	pos := p.previous().Position

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(TokenLeftParen)
	if err != nil {
		return nil, err
	}

	var params []string
	if p.peek().Kind != TokenRightParen {
		for {
			param, err := p.expect(TokenIdentifier)
			if err != nil {
				return nil, err
			}

			params = append(params, param.Literal)

			if !p.match(TokenComma) {
				break
			}
		}
	}

	_, err = p.expect(TokenRightParen)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(TokenLeftBrace)
	if err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &FunctionStatement{
		Name:       name.Literal,
		Parameters: params,
		Body:       body,
		Position:   pos,
	}, nil
}

func (p *parser) statement() (Statement, error) {
	switch {
	case p.match(TokenPrint):
		return p.printStatement()
	case p.match(TokenLeftBrace):
		pos := p.previous().Position
		body, err := p.block()
		if err != nil {
			return nil, err
		}

		return &BlockStatement{Body: body, Position: pos}, nil
	case p.match(TokenIf):
		return p.ifStatement()
	case p.match(TokenWhile):
		return p.whileStatement()
	case p.match(TokenFor):
		return p.forStatement()
	case p.match(TokenReturn):
		return p.returnStatement()
	case p.match(TokenBreak):
		pos := p.previous().Position
		_, err := p.expect(TokenSemicolon)
		if err != nil {
			return nil, err
		}

		return &BreakStatement{Position: pos}, nil
	case p.match(TokenContinue):
		pos := p.previous().Position
		_, err := p.expect(TokenSemicolon)
		if err != nil {
			return nil, err
		}

		return &ContinueStatement{Position: pos}, nil
	default:
		return p.exprStatement()
	}
}

func (p *parser) block() ([]Statement, error) {
	var body []Statement
	for p.peek().Kind != TokenRightBrace && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
	}

	_, err := p.expect(TokenRightBrace)
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (p *parser) printStatement() (Statement, error) {
	pos := p.previous().Position

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}

	return &PrintStatement{Expr: expr, Position: pos}, nil
}

func (p *parser) ifStatement() (Statement, error) {
	pos := p.previous().Position

	_, err := p.expect(TokenLeftParen)
	if err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(TokenRightParen)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(TokenLeftBrace)
	if err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	stmt := &IfStatement{Condition: cond, Body: body, Position: pos}

	if p.match(TokenElse) {
		if p.match(TokenIf) {
			stmt.Else, err = p.ifStatement()
			if err != nil {
				return nil, err
			}
		} else {
			elsePos := p.previous().Position

			_, err = p.expect(TokenLeftBrace)
			if err != nil {
				return nil, err
			}

			elseBody, err := p.block()
			if err != nil {
				return nil, err
			}

			stmt.Else = &BlockStatement{Body: elseBody, Position: elsePos}
		}
	}

	return stmt, nil
}

func (p *parser) whileStatement() (Statement, error) {
	pos := p.previous().Position

	_, err := p.expect(TokenLeftParen)
	if err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(TokenRightParen)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(TokenLeftBrace)
	if err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &WhileStatement{Condition: cond, Body: body, Position: pos}, nil
}

func (p *parser) forStatement() (Statement, error) {
	pos := p.previous().Position

	_, err := p.expect(TokenLeftParen)
	if err != nil {
		return nil, err
	}

	var init Statement
	switch {
	case p.match(TokenSemicolon):
	case p.match(TokenVar):
		init, err = p.varDeclaration()
		if err != nil {
			return nil, err
		}
	default:
		init, err = p.exprStatement()
		if err != nil {
			return nil, err
		}
	}

	var cond Expr
	if p.peek().Kind != TokenSemicolon {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	_, err = p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}

	var update Expr
	if p.peek().Kind != TokenRightParen {
		update, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	_, err = p.expect(TokenRightParen)
	if err != nil {
		return nil, err
	}

	_, err = p.expect(TokenLeftBrace)
	if err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ForStatement{
		Init:      init,
		Condition: cond,
		Update:    update,
		Body:      body,
		Position:  pos,
	}, nil
}

func (p *parser) returnStatement() (Statement, error) {
	pos := p.previous().Position

	var expr Expr
	var err error
	if p.peek().Kind != TokenSemicolon {
		expr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	_, err = p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}

	return &ReturnStatement{Expr: expr, Position: pos}, nil
}

func (p *parser) exprStatement() (Statement, error) {
	pos := p.peek().Position

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	_, err = p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}

	return &ExprStatement{Expr: expr, Position: pos}, nil
}

func (p *parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *parser) assignment() (Expr, error) {
	expr, err := p.logicalOr()
	if err != nil {
		return nil, err
	}

	if p.match(TokenEqual) {
		equals := p.previous()

		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		target, ok := expr.(*IdentifierExpr)
		if !ok {
			return nil, equals.WrapError(fmt.Errorf("invalid assignment target"))
		}

		return &AssignExpr{Name: target.Name, Expr: value, Position: target.Position}, nil
	}

	return expr, nil
}

func (p *parser) logicalOr() (Expr, error) {
	expr, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}

	for p.match(TokenOr) {
		pos := p.previous().Position

		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}

		expr = &LogicalExpr{Left: expr, Operator: OperatorLogicalOr, Right: right, Position: pos}
	}

	return expr, nil
}

func (p *parser) logicalAnd() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.match(TokenAnd) {
		pos := p.previous().Position

		right, err := p.equality()
		if err != nil {
			return nil, err
		}

		expr = &LogicalExpr{Left: expr, Operator: OperatorLogicalAnd, Right: right, Position: pos}
	}

	return expr, nil
}

func (p *parser) equality() (Expr, error) {
	return p.binary(p.comparison, map[TokenKind]Operator{
		TokenEqualEqual: OperatorEqual,
		TokenBangEqual:  OperatorNotEqual,
	})
}

func (p *parser) comparison() (Expr, error) {
	return p.binary(p.term, map[TokenKind]Operator{
		TokenLess:         OperatorLess,
		TokenLessEqual:    OperatorLessEqual,
		TokenGreater:      OperatorGreater,
		TokenGreaterEqual: OperatorGreaterEqual,
	})
}

func (p *parser) term() (Expr, error) {
	return p.binary(p.factor, map[TokenKind]Operator{
		TokenPlus:  OperatorAddition,
		TokenMinus: OperatorSubtraction,
	})
}

func (p *parser) factor() (Expr, error) {
	return p.binary(p.unary, map[TokenKind]Operator{
		TokenStar:  OperatorMultiplication,
		TokenSlash: OperatorDivision,
	})
}

func (p *parser) binary(operand func() (Expr, error), ops map[TokenKind]Operator) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.peek().Kind]
		if !ok {
			return expr, nil
		}

		pos := p.next().Position

		right, err := operand()
		if err != nil {
			return nil, err
		}

		expr = &BinaryExpr{Left: expr, Operator: op, Right: right, Position: pos}
	}
}

func (p *parser) unary() (Expr, error) {
	switch {
	case p.match(TokenBang):
		pos := p.previous().Position

		expr, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{Operator: OperatorNot, Expr: expr, Position: pos}, nil
	case p.match(TokenMinus):
		pos := p.previous().Position

		expr, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &UnaryExpr{Operator: OperatorSubtraction, Expr: expr, Position: pos}, nil
	default:
		return p.call()
	}
}

func (p *parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(TokenLeftParen) {
		pos := p.previous().Position

		var args []Expr
		if p.peek().Kind != TokenRightParen {
			for {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}

				args = append(args, arg)

				if !p.match(TokenComma) {
					break
				}
			}
		}

		_, err = p.expect(TokenRightParen)
		if err != nil {
			return nil, err
		}

		expr = &CallExpr{Callee: expr, Args: args, Position: pos}
	}

	return expr, nil
}

func (p *parser) primary() (Expr, error) {
	tok := p.next()

	switch tok.Kind {
	case TokenNumber:
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, tok.WrapError(fmt.Errorf("invalid number literal %q: %w", tok.Literal, err))
		}

		return &NumberLiteral{Value: value, Position: tok.Position}, nil
	case TokenString:
		return &StringLiteral{Value: tok.Literal, Position: tok.Position}, nil
	case TokenTrue:
		return &BooleanLiteral{Value: true, Position: tok.Position}, nil
	case TokenFalse:
		return &BooleanLiteral{Value: false, Position: tok.Position}, nil
	case TokenNil:
		return &NilLiteral{Position: tok.Position}, nil
	case TokenIdentifier:
		return &IdentifierExpr{Name: tok.Literal, Position: tok.Position}, nil
	case TokenLeftParen:
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		_, err = p.expect(TokenRightParen)
		if err != nil {
			return nil, err
		}

		return expr, nil
	default:
		return nil, tok.WrapError(fmt.Errorf("unexpected token %q", tok.Kind))
	}
}
