package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tarn-lang/tarn/pkg/parser"
)

func kinds(tokens []parser.Token) []parser.TokenKind {
	out := make([]parser.TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}

	return out
}

func TestLexOperators(t *testing.T) {
	r := require.New(t)

	tokens, err := parser.Lex("test", "( ) { } , . - + ; / * ! != = == > >= < <=")
	r.NoError(err)

	r.Equal([]parser.TokenKind{
		parser.TokenLeftParen, parser.TokenRightParen,
		parser.TokenLeftBrace, parser.TokenRightBrace,
		parser.TokenComma, parser.TokenDot,
		parser.TokenMinus, parser.TokenPlus,
		parser.TokenSemicolon, parser.TokenSlash, parser.TokenStar,
		parser.TokenBang, parser.TokenBangEqual,
		parser.TokenEqual, parser.TokenEqualEqual,
		parser.TokenGreater, parser.TokenGreaterEqual,
		parser.TokenLess, parser.TokenLessEqual,
		parser.TokenEOF,
	}, kinds(tokens))
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	r := require.New(t)

	tokens, err := parser.Lex("test", "var x = fun_ny;")
	r.NoError(err)

	r.Equal([]parser.TokenKind{
		parser.TokenVar, parser.TokenIdentifier, parser.TokenEqual,
		parser.TokenIdentifier, parser.TokenSemicolon, parser.TokenEOF,
	}, kinds(tokens))
	r.Equal("x", tokens[1].Literal)
	r.Equal("fun_ny", tokens[3].Literal)
}

func TestLexNumbers(t *testing.T) {
	r := require.New(t)

	tokens, err := parser.Lex("test", "1 23 4.5 6.")
	r.NoError(err)

	// A trailing dot is not part of the number.
	r.Equal([]parser.TokenKind{
		parser.TokenNumber, parser.TokenNumber, parser.TokenNumber,
		parser.TokenNumber, parser.TokenDot, parser.TokenEOF,
	}, kinds(tokens))
	r.Equal("4.5", tokens[2].Literal)
}

func TestLexStrings(t *testing.T) {
	r := require.New(t)

	tokens, err := parser.Lex("test", `"hello world"`)
	r.NoError(err)
	r.Equal(parser.TokenString, tokens[0].Kind)
	r.Equal("hello world", tokens[0].Literal)
}

func TestLexComments(t *testing.T) {
	r := require.New(t)

	tokens, err := parser.Lex("test", "1 // the rest is ignored\n2")
	r.NoError(err)
	r.Equal([]parser.TokenKind{parser.TokenNumber, parser.TokenNumber, parser.TokenEOF}, kinds(tokens))
}

func TestLexPositions(t *testing.T) {
	r := require.New(t)

	tokens, err := parser.Lex("test.tarn", "var\n  x")
	r.NoError(err)

	r.Equal(1, tokens[0].Line)
	r.Equal(1, tokens[0].Column)
	r.Equal(2, tokens[1].Line)
	r.Equal(3, tokens[1].Column)
	r.Equal("test.tarn", tokens[0].File)
}

func TestLexUnterminatedString(t *testing.T) {
	r := require.New(t)

	_, err := parser.Lex("test", `"oops`)
	r.Error(err)
	r.Contains(err.Error(), "unterminated string")
}

func TestLexUnexpectedCharacter(t *testing.T) {
	r := require.New(t)

	_, err := parser.Lex("test", "var x = 1; @ var y = 2;")
	r.Error(err)

	var posErr parser.PositionError
	r.True(errors.As(err, &posErr))
	r.Equal(1, posErr.Position.Line)
}
