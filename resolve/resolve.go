/*
File   : saturday/resolve/resolve.go
Author : adapted from original_source/src/resolver.rs for the saturday core,
         in go-mix's error-collection style (errors recorded, not panicked)

Package resolve implements the static resolution pass that runs between
parsing and evaluation. For every variable reference it computes how many
enclosing scopes separate the reference from the scope that declares it,
and hands that distance to a DepthRecorder (satisfied by *interp.Interpreter)
keyed by the reference node's own identity. This is what lets the
interpreter use Environment.GetAt/AssignAt instead of walking the chain by
name at every lookup, and is also what produces several of the language's
compile-time errors: reading a local in its own initializer, returning
outside a function, and breaking outside a loop.

go-mix has no equivalent of this pass - its Scope is looked up dynamically
by walking Parent pointers at runtime - so this package is grounded
primarily on the Rust resolver, the one part of the original implementation
that had no direct analog in the teacher repo, dressed in the project's own
error-collection idiom rather than Rust's Result type.
*/
package resolve

import (
	"fmt"

	"github.com/akashmaji946/saturday/ast"
)

// DepthRecorder receives the resolved scope distance for each local
// variable reference. *interp.Interpreter implements it; defining it here
// instead of importing package interp keeps resolve free of the evaluator
// (interp's own tests import resolve, so the reverse import would form a
// cycle).
type DepthRecorder interface {
	Resolve(expr ast.Expr, depth int)
}

type functionKind int

const (
	noFunction functionKind = iota
	inFunction
)

// Resolver walks a parsed program once, before evaluation, maintaining a
// stack of block scopes exactly like the evaluator's own Environment chain
// will at runtime - but using plain maps of name -> bool (declared vs.
// defined) since no values exist yet at this stage.
type Resolver struct {
	recorder DepthRecorder
	scopes   []map[string]bool
	current  functionKind
	inLoop   bool
	errors   []string
}

// New creates a Resolver that reports resolved depths to recorder.
func New(recorder DepthRecorder) *Resolver {
	return &Resolver{recorder: recorder}
}

// HasErrors reports whether resolution found any compile-time error.
func (r *Resolver) HasErrors() bool { return len(r.errors) > 0 }

// Errors returns the collected error messages.
func (r *Resolver) Errors() []string { return r.errors }

// Resolve runs the pass over a whole program.
func (r *Resolver) Resolve(statements []ast.Stmt) {
	r.resolveStatements(statements)
}

func (r *Resolver) resolveStatements(statements []ast.Stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) peekScope() map[string]bool {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare marks name as present but not yet initialized in the innermost
// scope, so its own initializer can detect a self-reference. Re-declaring
// an existing name in the same scope is a compile-time error.
func (r *Resolver) declare(name string) {
	scope := r.peekScope()
	if scope == nil {
		return
	}
	if _, ok := scope[name]; ok {
		r.errors = append(r.errors, "Already a variable with this name in this scope.")
	}
	scope[name] = false
}

// define marks name as fully initialized in the innermost scope.
func (r *Resolver) define(name string) {
	scope := r.peekScope()
	if scope == nil {
		return
	}
	scope[name] = true
}

// resolveLocal walks the scope stack from innermost to outermost looking
// for name, recording the distance at which it's found against expr's own
// identity. An unresolved name (not found anywhere in the stack) is left
// unrecorded and is treated as global at evaluation time.
func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.recorder.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) resolveFunction(decl *ast.FunctionStmt, kind functionKind) {
	enclosingFunction := r.current
	r.current = kind
	defer func() { r.current = enclosingFunction }()

	r.beginScope()
	defer r.endScope()

	for _, param := range decl.Params {
		r.declare(param.Lexeme)
		r.define(param.Lexeme)
	}
	r.resolveStatements(decl.Body)
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()

	case *ast.BreakStmt:
		if !r.inLoop {
			r.errors = append(r.errors, "break statement outside of a while/for loop")
		}

	case *ast.DefStmt:
		r.declare(s.Name.Lexeme)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name.Lexeme)

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)

	case *ast.FunctionStmt:
		r.declare(s.Name.Lexeme)
		r.define(s.Name.Lexeme)
		r.resolveFunction(s, inFunction)

	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)

	case *ast.ReturnStmt:
		if r.current == noFunction {
			r.errors = append(r.errors, "Can't return from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}

	case *ast.WhileStmt:
		enclosingLoop := r.inLoop
		r.inLoop = true
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
		r.inLoop = enclosingLoop

	default:
		panic(fmt.Sprintf("resolve: unhandled statement type %T", stmt))
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}

	case *ast.Grouping:
		r.resolveExpr(e.Expression)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Variable:
		if scope := r.peekScope(); scope != nil {
			if defined, ok := scope[e.Name.Lexeme]; ok && !defined {
				r.errors = append(r.errors, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)

	default:
		panic(fmt.Sprintf("resolve: unhandled expression type %T", expr))
	}
}
