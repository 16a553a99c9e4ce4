/*
File   : saturday/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/saturday/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestScanTokens_Punctuation(t *testing.T) {
	toks, err := New("(){},.-+;*/").ScanTokens()
	assert.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.SemiColon,
		token.Star, token.Slash, token.Eof,
	}, kinds(toks))
}

func TestScanTokens_TwoCharOperators(t *testing.T) {
	toks, err := New("! != = == < <= > >=").ScanTokens()
	assert.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Bang, token.BangEqual, token.Assign, token.Equal,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.Eof,
	}, kinds(toks))
}

func TestScanTokens_LineComment(t *testing.T) {
	toks, err := New("1 // a comment\n2").ScanTokens()
	assert.NoError(t, err)
	assert.Equal(t, []token.Kind{token.Number, token.Number, token.Eof}, kinds(toks))
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanTokens_NestedBlockComment(t *testing.T) {
	toks, err := New("1 /* outer /* inner */ still-outer */ 2").ScanTokens()
	assert.NoError(t, err)
	assert.Equal(t, []token.Kind{token.Number, token.Number, token.Eof}, kinds(toks))
}

func TestScanTokens_UnterminatedBlockComment(t *testing.T) {
	_, err := New("/* never closed").ScanTokens()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated comment")
}

func TestScanTokens_StringLiteral(t *testing.T) {
	toks, err := New(`"hello world"`).ScanTokens()
	assert.NoError(t, err)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestScanTokens_StringSpansLines(t *testing.T) {
	toks, err := New("\"a\nb\" 1").ScanTokens()
	assert.NoError(t, err)
	assert.Equal(t, "a\nb", toks[0].Literal)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	_, err := New(`"never closed`).ScanTokens()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string.")
}

func TestScanTokens_Numbers(t *testing.T) {
	toks, err := New("123 45.67").ScanTokens()
	assert.NoError(t, err)
	assert.Equal(t, 123.0, toks[0].Literal)
	assert.Equal(t, 45.67, toks[1].Literal)
}

func TestScanTokens_KeywordsAndIdentifiers(t *testing.T) {
	toks, err := New("def break print fun_name _x").ScanTokens()
	assert.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Def, token.Break, token.Print, token.Identifier, token.Identifier, token.Eof,
	}, kinds(toks))
}

func TestScanTokens_UnexpectedCharacter(t *testing.T) {
	_, err := New("1 @ 2").ScanTokens()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected character")
}

func TestScanTokens_ContinuesAfterError(t *testing.T) {
	// The lexer keeps consuming after the first error so later tokens are
	// still produced; only the first error is reported.
	toks, err := New("1 @ 2 # 3").ScanTokens()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	kindsGot := kinds(toks)
	assert.Equal(t, token.Number, kindsGot[0])
	assert.Equal(t, token.Eof, kindsGot[len(kindsGot)-1])
}
