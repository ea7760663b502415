package parser

type TokenKind string

const (
	TokenLeftParen  TokenKind = "("
	TokenRightParen TokenKind = ")"
	TokenLeftBrace  TokenKind = "{"
	TokenRightBrace TokenKind = "}"
	TokenComma      TokenKind = ","
	TokenDot        TokenKind = "."
	TokenMinus      TokenKind = "-"
	TokenPlus       TokenKind = "+"
	TokenSemicolon  TokenKind = ";"
	TokenSlash      TokenKind = "/"
	TokenStar       TokenKind = "*"

	TokenBang         TokenKind = "!"
	TokenBangEqual    TokenKind = "!="
	TokenEqual        TokenKind = "="
	TokenEqualEqual   TokenKind = "=="
	TokenGreater      TokenKind = ">"
	TokenGreaterEqual TokenKind = ">="
	TokenLess         TokenKind = "<"
	TokenLessEqual    TokenKind = "<="

	TokenIdentifier TokenKind = "identifier"
	TokenString     TokenKind = "string"
	TokenNumber     TokenKind = "number"

	TokenAnd      TokenKind = "and"
	TokenBreak    TokenKind = "break"
	TokenContinue TokenKind = "continue"
	TokenElse     TokenKind = "else"
	TokenFalse    TokenKind = "false"
	TokenFun      TokenKind = "fun"
	TokenFor      TokenKind = "for"
	TokenIf       TokenKind = "if"
	TokenNil      TokenKind = "nil"
	TokenOr       TokenKind = "or"
	TokenPrint    TokenKind = "print"
	TokenReturn   TokenKind = "return"
	TokenTrue     TokenKind = "true"
	TokenVar      TokenKind = "var"
	TokenWhile    TokenKind = "while"

	TokenEOF TokenKind = "eof"
)

var keywords = map[string]TokenKind{
	"and":      TokenAnd,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"else":     TokenElse,
	"false":    TokenFalse,
	"fun":      TokenFun,
	"for":      TokenFor,
	"if":       TokenIf,
	"nil":      TokenNil,
	"or":       TokenOr,
	"print":    TokenPrint,
	"return":   TokenReturn,
	"true":     TokenTrue,
	"var":      TokenVar,
	"while":    TokenWhile,
}

type Token struct {
	Kind    TokenKind
	Literal string

	Position
}
