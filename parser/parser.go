/*
File   : saturday/parser/parser.go
Author : adapted from go-mix/parser/parser.go for the saturday core

Package parser implements a recursive-descent parser that turns a token
stream into the statement-level AST defined in package ast. Unlike go-mix's
Pratt parser with its unary/binary function tables, this parser follows the
grammar in the language specification directly: one method per production,
from the lowest-precedence assignment expression down through unary and
primary. This keeps precedence explicit in the call graph rather than in a
lookup table, which is the shape a hand-rolled descent parser for a small
grammar like this one naturally takes.

The parser never panics on a malformed program: it collects errors and
synchronizes to the next statement boundary, so a single parse can surface
more than one mistake. HasErrors reports whether any were found; the
returned statement slice is always a best-effort, structurally valid tree
even when errors were reported.
*/
package parser

import (
	"fmt"

	"github.com/akashmaji946/saturday/ast"
	"github.com/akashmaji946/saturday/lexer"
	"github.com/akashmaji946/saturday/token"
)

const maxArgs = 255

// parseError is raised internally via panic/recover to unwind to the
// nearest statement boundary; it is never allowed to escape Parse.
type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }

// Parser holds the token stream and cursor for a single parse.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []string
}

// New lexes src and returns a Parser positioned at the first token. A lex
// error is recorded as a parse error so callers only need to check
// HasErrors after calling Parse.
func New(src string) *Parser {
	toks, lexErr := lexer.New(src).ScanTokens()
	p := &Parser{tokens: toks}
	if lexErr != nil {
		p.errors = append(p.errors, lexErr.Error())
	}
	return p
}

// NewFromTokens builds a Parser directly from an already-scanned token
// stream, useful for tests that want to exercise the parser in isolation
// from the lexer.
func NewFromTokens(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// HasErrors reports whether parsing (or the lex pass that preceded it)
// recorded any error.
func (p *Parser) HasErrors() bool { return len(p.errors) > 0 }

// Errors returns the collected error messages in the order they occurred.
func (p *Parser) Errors() []string { return p.errors }

// Parse runs the full `program := declaration* EOF` production and returns
// the resulting statement list. The slice is always well-formed even when
// HasErrors is true; malformed statements are simply skipped via
// synchronization.
func (p *Parser) Parse() []ast.Stmt {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// --- token cursor ---

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) isAtEnd() bool { return p.peek().Kind == token.Eof }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return kind == token.Eof
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.reportError(p.peek(), message))
}

// reportError records a parse error at tok's position using the verbatim
// format `[line L] Error at '<lexeme>': <message>` (or "at end" for Eof)
// and returns a parseError used to unwind to synchronize.
func (p *Parser) reportError(tok token.Token, message string) *parseError {
	if tok.Kind == token.Eof {
		p.errors = append(p.errors, fmt.Sprintf("[line %d] Error at end: %s", tok.Line, message))
	} else {
		p.errors = append(p.errors, fmt.Sprintf("[line %d] Error at '%s': %s", tok.Line, tok.Lexeme, message))
	}
	return &parseError{msg: message}
}

// synchronize discards tokens until it reaches a plausible statement
// boundary: just past a semicolon, or just before a keyword that starts a
// new statement/declaration.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SemiColon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Def, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

// recoverParseError is installed via defer in every entry point that can
// panic with a *parseError; it swallows the panic (already recorded in
// p.errors) and synchronizes so the caller can keep parsing.
func (p *Parser) recoverParseError(stmt *ast.Stmt) {
	if r := recover(); r != nil {
		if _, ok := r.(*parseError); !ok {
			panic(r)
		}
		p.synchronize()
		*stmt = nil
	}
}

// declaration := def_decl | fun_decl | statement
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer p.recoverParseError(&stmt)
	switch {
	case p.match(token.Def):
		return p.defDeclaration()
	case p.match(token.Fun):
		return p.function("function")
	default:
		return p.statement()
	}
}

// def_decl := "def" IDENT ("=" expression)? ";"
func (p *Parser) defDeclaration() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")
	var initializer ast.Expr
	if p.match(token.Assign) {
		initializer = p.expression()
	}
	p.consume(token.SemiColon, "Expect ';' after variable declaration.")
	return &ast.DefStmt{Name: name, Initializer: initializer}
}

// fun_decl := "fun" function
// function := IDENT "(" params? ")" "{" declaration* "}"
func (p *Parser) function(kind string) ast.Stmt {
	name := p.consume(token.Identifier, fmt.Sprintf("Expect %s name.", kind))
	p.consume(token.LeftParen, fmt.Sprintf("Expect '(' after %s name.", kind))

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.reportError(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")
	p.consume(token.LeftBrace, fmt.Sprintf("Expect '{' before %s body.", kind))
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

// statement := print_stmt | block | if_stmt | while_stmt
//
//	| for_stmt  | return_stmt | break_stmt | expr_stmt
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.LeftBrace):
		return &ast.BlockStmt{Statements: p.block()}
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.Break):
		return p.breakStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(token.SemiColon, "Expect ';' after value.")
	return &ast.PrintStmt{Expression: value}
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SemiColon, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expression: expr}
}

// block := "{" declaration* "}"   (leading "{" already consumed by caller)
func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return statements
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Condition: condition, Body: body}
}

// forStatement desugars `for (init; cond; incr) body` into:
//
//	{ init; while (cond) { body; incr; } }
//
// A missing condition becomes the literal `true`; a missing increment is
// simply omitted from the synthesized block.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SemiColon):
		initializer = nil
	case p.check(token.Def):
		p.advance()
		initializer = p.defDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(token.SemiColon) {
		condition = p.expression()
	}
	p.consume(token.SemiColon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SemiColon) {
		value = p.expression()
	}
	p.consume(token.SemiColon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) breakStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.SemiColon, "Expect ';' after 'break'.")
	return &ast.BreakStmt{Keyword: keyword}
}

// expression := assignment
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment := IDENT "=" assignment | logic_or
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Assign) {
		equals := p.previous()
		value := p.assignment()

		if variable, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: variable.Name, Value: value}
		}
		p.reportError(equals, "Invalid assignment target.")
		return expr
	}
	return expr
}

// logic_or := logic_and ("or" logic_and)*
func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		operator := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// logic_and := equality ("and" equality)*
func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		operator := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// equality := comparison (("!=" | "==") comparison)*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.Equal) {
		operator := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// comparison := term (("<"|"<="|">"|">=") term)*
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		operator := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// term := factor (("+"|"-") factor)*
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Plus, token.Minus) {
		operator := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// factor := unary (("*"|"/") unary)*
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Star, token.Slash) {
		operator := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

// unary := ("!" | "-") unary | call
func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: operator, Right: right}
	}
	return p.call()
}

// call := primary ("(" args? ")")*
func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		if p.match(token.LeftParen) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.reportError(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}
}

// primary := "true" | "false" | "nil" | NUMBER | STRING
//
//	| "(" expression ")" | IDENT
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: false}
	case p.match(token.True):
		return &ast.Literal{Value: true}
	case p.match(token.Nil):
		return &ast.Literal{Value: nil}
	case p.match(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Expression: expr}
	}
	panic(p.reportError(p.peek(), "Expect expression."))
}
