/*
File   : saturday/token/token.go
Package: token

Package token defines the lexical vocabulary of the language: the set of
token kinds the lexer produces and the Token value that carries a single
lexeme (plus its literal value and source line) from the lexer through to
the parser.
*/
package token

import "fmt"

// Kind identifies the syntactic category of a Token. It is a small integer
// rather than a string so that token comparisons and switch statements stay
// cheap in the hot path of the lexer and parser.
type Kind int

// The complete set of token kinds recognized by the core language. Class,
// Super, This and Var are reserved for a future object system; the parser
// never produces AST for them.
const (
	// Punctuation
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	SemiColon
	Slash
	Star

	// One or two character operators
	Bang
	BangEqual
	Assign
	Equal
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	Def
	While
	Break

	// Terminator
	Eof
)

var kindNames = map[Kind]string{
	LeftParen: "LEFT_PAREN", RightParen: "RIGHT_PAREN",
	LeftBrace: "LEFT_BRACE", RightBrace: "RIGHT_BRACE",
	Comma: "COMMA", Dot: "DOT", Minus: "MINUS", Plus: "PLUS",
	SemiColon: "SEMICOLON", Slash: "SLASH", Star: "STAR",
	Bang: "BANG", BangEqual: "BANG_EQUAL",
	Assign: "ASSIGN", Equal: "EQUAL",
	Greater: "GREATER", GreaterEqual: "GREATER_EQUAL",
	Less: "LESS", LessEqual: "LESS_EQUAL",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "AND", Class: "CLASS", Else: "ELSE", False: "FALSE",
	Fun: "FUN", For: "FOR", If: "IF", Nil: "NIL", Or: "OR",
	Print: "PRINT", Return: "RETURN", Super: "SUPER", This: "THIS",
	True: "TRUE", Var: "VAR", Def: "DEF", While: "WHILE", Break: "BREAK",
	Eof: "EOF",
}

// String renders the kind's canonical name, used in error messages and
// debugging output.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps reserved identifiers to their keyword kind. Anything not in
// this table that matches the identifier grammar is an Identifier token.
var Keywords = map[string]Kind{
	"and": And, "class": Class, "else": Else, "false": False,
	"for": For, "fun": Fun, "if": If, "nil": Nil, "or": Or,
	"print": Print, "return": Return, "super": Super, "this": This,
	"true": True, "var": Var, "while": While, "def": Def, "break": Break,
}

// Token is a single lexeme produced by the lexer. Tokens are immutable once
// produced and are cheap to copy by value.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any // float64 for Number, string for String, nil otherwise
	Line    int
}

// New builds a Token carrying no literal value.
func New(kind Kind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// NewLiteral builds a Token carrying a decoded literal value (a Number's
// float64 or a String's decoded text).
func NewLiteral(kind Kind, lexeme string, literal any, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

// EOF builds the sentinel token that terminates every token stream.
func EOF(line int) Token {
	return Token{Kind: Eof, Lexeme: "", Line: line}
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}
