/*
File   : saturday/ast/stmt.go
Package: ast
*/
package ast

import "github.com/akashmaji946/saturday/token"

// ExpressionStmt evaluates an expression for its side effects and discards
// the result (e.g. a bare call like `inc();`).
type ExpressionStmt struct {
	Expression Expr
}

func (s *ExpressionStmt) Accept(v StmtVisitor) (any, error) { return v.VisitExpressionStmt(s) }

// PrintStmt evaluates an expression and writes its display form followed by
// a newline.
type PrintStmt struct {
	Expression Expr
}

func (s *PrintStmt) Accept(v StmtVisitor) (any, error) { return v.VisitPrintStmt(s) }

// DefStmt declares a variable, optionally with an initializer. Without one
// the binding starts out Nil, matching `def x;`.
type DefStmt struct {
	Name        token.Token
	Initializer Expr
}

func (s *DefStmt) Accept(v StmtVisitor) (any, error) { return v.VisitDefStmt(s) }

// BlockStmt introduces a new lexical scope around a sequence of statements.
type BlockStmt struct {
	Statements []Stmt
}

func (s *BlockStmt) Accept(v StmtVisitor) (any, error) { return v.VisitBlockStmt(s) }

// IfStmt is `if (cond) then [else else_]`. Else is nil when there is no
// else branch.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (s *IfStmt) Accept(v StmtVisitor) (any, error) { return v.VisitIfStmt(s) }

// WhileStmt is also the desugaring target of `for`: the parser rewrites
// for-loops into an initializer followed by a WhileStmt whose body appends
// the increment expression.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) Accept(v StmtVisitor) (any, error) { return v.VisitWhileStmt(s) }

// FunctionStmt declares a named function. The same node doubles as the
// function's captured declaration once it becomes a callable value.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (s *FunctionStmt) Accept(v StmtVisitor) (any, error) { return v.VisitFunctionStmt(s) }

// ReturnStmt unwinds the current function call with an optional value.
// Value is nil for a bare `return;`.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

func (s *ReturnStmt) Accept(v StmtVisitor) (any, error) { return v.VisitReturnStmt(s) }

// BreakStmt unwinds the innermost enclosing while loop.
type BreakStmt struct {
	Keyword token.Token
}

func (s *BreakStmt) Accept(v StmtVisitor) (any, error) { return v.VisitBreakStmt(s) }
