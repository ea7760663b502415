package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	file string
	src  string

	offset int
	line   int
	column int

	errs *ErrorSet
}

// Lex scans src into a token slice terminated by an EOF token. All scan
// errors are collected and returned together.
func Lex(file, src string) ([]Token, error) {
	l := &lexer{
		file:   file,
		src:    src,
		line:   1,
		column: 1,
		errs:   newErrorSet(),
	}

	var tokens []Token
	for {
		tok, ok := l.scan()
		if ok {
			tokens = append(tokens, tok)
		}

		if tok.Kind == TokenEOF {
			break
		}
	}

	return tokens, l.errs.Defer(nil)
}

func (l *lexer) position() Position {
	return Position{File: l.file, Line: l.line, Column: l.column}
}

func (l *lexer) peek() rune {
	if l.offset >= len(l.src) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.offset:])
	return r
}

func (l *lexer) next() rune {
	if l.offset >= len(l.src) {
		return 0
	}

	r, size := utf8.DecodeRuneInString(l.src[l.offset:])
	l.offset += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	return r
}

func (l *lexer) match(want rune) bool {
	if l.peek() != want {
		return false
	}

	l.next()
	return true
}

// scan produces the next token. The second return is false when the input
// consumed was not a token (whitespace, comment, or an error).
func (l *lexer) scan() (Token, bool) {
	pos := l.position()
	start := l.offset

	r := l.next()
	switch {
	case r == 0:
		return Token{Kind: TokenEOF, Position: pos}, true
	case r == '(':
		return l.token(TokenLeftParen, start, pos), true
	case r == ')':
		return l.token(TokenRightParen, start, pos), true
	case r == '{':
		return l.token(TokenLeftBrace, start, pos), true
	case r == '}':
		return l.token(TokenRightBrace, start, pos), true
	case r == ',':
		return l.token(TokenComma, start, pos), true
	case r == '.':
		return l.token(TokenDot, start, pos), true
	case r == '-':
		return l.token(TokenMinus, start, pos), true
	case r == '+':
		return l.token(TokenPlus, start, pos), true
	case r == ';':
		return l.token(TokenSemicolon, start, pos), true
	case r == '*':
		return l.token(TokenStar, start, pos), true
	case r == '/':
		if l.match('/') {
			for l.peek() != '\n' && l.peek() != 0 {
				l.next()
			}

			return Token{}, false
		}

		return l.token(TokenSlash, start, pos), true
	case r == '!':
		if l.match('=') {
			return l.token(TokenBangEqual, start, pos), true
		}

		return l.token(TokenBang, start, pos), true
	case r == '=':
		if l.match('=') {
			return l.token(TokenEqualEqual, start, pos), true
		}

		return l.token(TokenEqual, start, pos), true
	case r == '<':
		if l.match('=') {
			return l.token(TokenLessEqual, start, pos), true
		}

		return l.token(TokenLess, start, pos), true
	case r == '>':
		if l.match('=') {
			return l.token(TokenGreaterEqual, start, pos), true
		}

		return l.token(TokenGreater, start, pos), true
	case r == ' ' || r == '\t' || r == '\r' || r == '\n':
		return Token{}, false
	case r == '"':
		return l.scanString(start, pos)
	case unicode.IsDigit(r):
		return l.scanNumber(start, pos), true
	case r == '_' || unicode.IsLetter(r):
		return l.scanIdentifier(start, pos), true
	default:
		l.errs.Add(pos.WrapError(fmt.Errorf("unexpected character %q", r)))
		return Token{}, false
	}
}

func (l *lexer) token(kind TokenKind, start int, pos Position) Token {
	return Token{
		Kind:     kind,
		Literal:  l.src[start:l.offset],
		Position: pos,
	}
}

func (l *lexer) scanString(start int, pos Position) (Token, bool) {
	for l.peek() != '"' {
		if l.peek() == 0 {
			l.errs.Add(pos.WrapError(fmt.Errorf("unterminated string")))
			return Token{}, false
		}

		l.next()
	}
	l.next()

	return Token{
		Kind:     TokenString,
		Literal:  l.src[start+1 : l.offset-1],
		Position: pos,
	}, true
}

func (l *lexer) scanNumber(start int, pos Position) Token {
	for unicode.IsDigit(l.peek()) {
		l.next()
	}

	if l.peek() == '.' {
		rest := l.src[l.offset+1:]
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsDigit(r) {
			l.next()
			for unicode.IsDigit(l.peek()) {
				l.next()
			}
		}
	}

	return l.token(TokenNumber, start, pos)
}

func (l *lexer) scanIdentifier(start int, pos Position) Token {
	for {
		r := l.peek()
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		l.next()
	}

	literal := l.src[start:l.offset]
	if kind, ok := keywords[literal]; ok {
		return Token{Kind: kind, Literal: literal, Position: pos}
	}

	return Token{Kind: TokenIdentifier, Literal: literal, Position: pos}
}
