/*
File   : saturday/interp/interp.go
Author : adapted from go-mix/eval/evaluator.go and
         original_source/src/interpreter.rs for the saturday core

Package interp is the tree-walking evaluator: it implements ast.ExprVisitor
and ast.StmtVisitor so it can be driven directly by the AST's own Accept
methods, and it implements resolve.DepthRecorder so the resolver can feed it
scope distances before evaluation begins. The Evaluator type in go-mix plays
the same structural role - parser reference for error context, a Writer
for redirectable output - but its scope lookups are all dynamic name
lookups; here they're split between the resolver's precomputed distances
(locals, via Environment.GetAt/AssignAt) and a chain walk by name (globals
and anything the resolver left unresolved), matching the reference
interpreter exactly.
*/
package interp

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akashmaji946/saturday/ast"
	"github.com/akashmaji946/saturday/environment"
	"github.com/akashmaji946/saturday/function"
	"github.com/akashmaji946/saturday/token"
	"github.com/akashmaji946/saturday/value"
)

// RuntimeError is a user-visible error raised while evaluating a
// well-formed program: a type mismatch, an undefined variable, a call to a
// non-function, or an arity mismatch. It carries the offending token so the
// caller can format `<message>\n[line L]` (or the "at end" form for Eof)
// exactly as the language specifies.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func newRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Interpreter walks a resolved AST, maintaining the currently active
// Environment and a side table of precomputed scope distances keyed by
// expression node identity (see package ast's doc comment on why pointer
// identity is load-bearing here).
type Interpreter struct {
	globals     *environment.Environment
	environment *environment.Environment
	locals      map[ast.Expr]int
	writer      io.Writer
}

// New creates an Interpreter with a fresh global environment seeded with
// the language's single native function, clock.
func New() *Interpreter {
	globals := environment.New()
	it := &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[ast.Expr]int),
		writer:      os.Stdout,
	}
	globals.Define("clock", function.NewNative("clock", 0, nativeClock))
	return it
}

// nativeClock returns milliseconds since the Unix epoch as a Number,
// matching original_source/src/native_functions.rs's NativeClock exactly
// (`as_millis()`, not seconds).
func nativeClock(arguments []value.Value) (value.Value, error) {
	return value.Number(float64(time.Now().UnixMilli())), nil
}

// SetWriter redirects the destination of `print` statements, mirroring
// go-mix's Evaluator.SetWriter - used by tests to capture output into a
// buffer instead of the real stdout.
func (it *Interpreter) SetWriter(w io.Writer) {
	it.writer = w
}

// Environment returns the currently active environment, used by the REPL's
// `@` diagnostic hook to walk and print the whole scope chain.
func (it *Interpreter) Environment() *environment.Environment {
	return it.environment
}

// Resolve implements resolve.DepthRecorder: it records, for the given
// expression node's own identity, how many enclosing scopes separate it
// from the scope that declares its variable.
func (it *Interpreter) Resolve(expr ast.Expr, depth int) {
	it.locals[expr] = depth
}

// Interpret runs a resolved program's statements in order. The first
// RuntimeError encountered stops execution and is returned to the caller,
// which is responsible for reporting it and choosing an exit code.
func (it *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if err := it.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execute(stmt ast.Stmt) error {
	_, err := stmt.Accept(it)
	return err
}

func (it *Interpreter) evaluate(expr ast.Expr) (value.Value, error) {
	result, err := expr.Accept(it)
	if err != nil {
		return nil, err
	}
	return result.(value.Value), nil
}

// ExecuteBlock implements function.Executor: it runs statements in a fresh
// environment and unconditionally restores the previously active
// environment on every exit path, matching
// original_source/src/interpreter.rs's execute_block, which swaps
// self.environment then replaces it back regardless of how the loop over
// statements ended.
func (it *Interpreter) ExecuteBlock(statements []ast.Stmt, env *environment.Environment) error {
	previous := it.environment
	it.environment = env
	defer func() { it.environment = previous }()

	for _, stmt := range statements {
		if err := it.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (value.Value, error) {
	if distance, ok := it.locals[expr]; ok {
		return it.environment.GetAt(distance, name.Lexeme), nil
	}
	v, err := it.globals.Get(name)
	if err != nil {
		return nil, newRuntimeError(name, "%s", err.Error())
	}
	return v, nil
}

// --- ast.StmtVisitor ---

func (it *Interpreter) VisitExpressionStmt(stmt *ast.ExpressionStmt) (any, error) {
	_, err := it.evaluate(stmt.Expression)
	return nil, err
}

func (it *Interpreter) VisitPrintStmt(stmt *ast.PrintStmt) (any, error) {
	v, err := it.evaluate(stmt.Expression)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(it.writer, value.Stringify(v))
	return nil, nil
}

func (it *Interpreter) VisitDefStmt(stmt *ast.DefStmt) (any, error) {
	var v value.Value = value.Nil{}
	if stmt.Initializer != nil {
		var err error
		v, err = it.evaluate(stmt.Initializer)
		if err != nil {
			return nil, err
		}
	}
	it.environment.Define(stmt.Name.Lexeme, v)
	return nil, nil
}

func (it *Interpreter) VisitBlockStmt(stmt *ast.BlockStmt) (any, error) {
	return nil, it.ExecuteBlock(stmt.Statements, environment.NewEnclosed(it.environment))
}

func (it *Interpreter) VisitIfStmt(stmt *ast.IfStmt) (any, error) {
	cond, err := it.evaluate(stmt.Condition)
	if err != nil {
		return nil, err
	}
	if value.IsTruthy(cond) {
		return nil, it.execute(stmt.Then)
	}
	if stmt.Else != nil {
		return nil, it.execute(stmt.Else)
	}
	return nil, nil
}

func (it *Interpreter) VisitWhileStmt(stmt *ast.WhileStmt) (any, error) {
	for {
		cond, err := it.evaluate(stmt.Condition)
		if err != nil {
			return nil, err
		}
		if !value.IsTruthy(cond) {
			return nil, nil
		}
		if err := it.execute(stmt.Body); err != nil {
			if err == function.ErrBreak {
				return nil, nil
			}
			return nil, err
		}
	}
}

func (it *Interpreter) VisitFunctionStmt(stmt *ast.FunctionStmt) (any, error) {
	fn := function.New(stmt, it.environment)
	it.environment.Define(stmt.Name.Lexeme, fn)
	return nil, nil
}

func (it *Interpreter) VisitReturnStmt(stmt *ast.ReturnStmt) (any, error) {
	var v value.Value = value.Nil{}
	if stmt.Value != nil {
		var err error
		v, err = it.evaluate(stmt.Value)
		if err != nil {
			return nil, err
		}
	}
	return nil, &function.ReturnSignal{Value: v}
}

func (it *Interpreter) VisitBreakStmt(stmt *ast.BreakStmt) (any, error) {
	return nil, function.ErrBreak
}

// --- ast.ExprVisitor ---

func (it *Interpreter) VisitLiteralExpr(expr *ast.Literal) (any, error) {
	return literalValue(expr.Value), nil
}

func literalValue(v any) value.Value {
	switch vv := v.(type) {
	case nil:
		return value.Nil{}
	case float64:
		return value.Number(vv)
	case string:
		return value.Str(vv)
	case bool:
		return value.Bool(vv)
	default:
		panic(fmt.Sprintf("interp: unexpected literal value %v (%T)", v, v))
	}
}

func (it *Interpreter) VisitGroupingExpr(expr *ast.Grouping) (any, error) {
	return it.evaluate(expr.Expression)
}

func (it *Interpreter) VisitUnaryExpr(expr *ast.Unary) (any, error) {
	right, err := it.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Kind {
	case token.Bang:
		return value.Bool(!value.IsTruthy(right)), nil
	case token.Minus:
		if num, ok := right.(value.Number); ok {
			return -num, nil
		}
		// Unary minus on a non-Number is intentionally not a runtime
		// error: it silently yields Nil, matching the reference
		// interpreter's own behavior for this case.
		return value.Nil{}, nil
	}
	panic(fmt.Sprintf("interp: unhandled unary operator %v", expr.Operator.Kind))
}

func (it *Interpreter) VisitBinaryExpr(expr *ast.Binary) (any, error) {
	left, err := it.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	result := evalBinary(expr.Operator.Kind, left, right)
	if value.IsArithmeticError(result) {
		return nil, newRuntimeError(expr.Operator, "Illegal expression")
	}
	return result, nil
}

// evalBinary implements the full type-pair truth table for every binary
// operator. Any combination not explicitly handled falls through to
// value.ArithmeticError{}, converted into a RuntimeError by the caller.
func evalBinary(op token.Kind, left, right value.Value) value.Value {
	ln, lIsNum := left.(value.Number)
	rn, rIsNum := right.(value.Number)
	ls, lIsStr := left.(value.Str)
	rs, rIsStr := right.(value.Str)

	switch op {
	case token.Plus:
		switch {
		case lIsNum && rIsNum:
			return ln + rn
		case lIsStr && rIsStr:
			return ls + rs
		case lIsStr && rIsNum, lIsNum && rIsStr:
			return value.Str(value.ConcatDisplay(left, right))
		default:
			return value.ArithmeticError{}
		}
	case token.Minus:
		if lIsNum && rIsNum {
			return ln - rn
		}
		return value.ArithmeticError{}
	case token.Star:
		if lIsNum && rIsNum {
			return ln * rn
		}
		return value.ArithmeticError{}
	case token.Slash:
		if lIsNum && rIsNum {
			return ln / rn
		}
		return value.ArithmeticError{}
	case token.Greater:
		if lIsNum && rIsNum {
			return value.Bool(ln > rn)
		}
		return value.ArithmeticError{}
	case token.GreaterEqual:
		if lIsNum && rIsNum {
			return value.Bool(ln >= rn)
		}
		return value.ArithmeticError{}
	case token.Less:
		if lIsNum && rIsNum {
			return value.Bool(ln < rn)
		}
		return value.ArithmeticError{}
	case token.LessEqual:
		if lIsNum && rIsNum {
			return value.Bool(ln <= rn)
		}
		return value.ArithmeticError{}
	case token.Equal:
		return value.Bool(value.Equal(left, right))
	case token.BangEqual:
		return value.Bool(!value.Equal(left, right))
	default:
		return value.ArithmeticError{}
	}
}

func (it *Interpreter) VisitLogicalExpr(expr *ast.Logical) (any, error) {
	left, err := it.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	if expr.Operator.Kind == token.Or {
		if value.IsTruthy(left) {
			return left, nil
		}
	} else {
		if !value.IsTruthy(left) {
			return left, nil
		}
	}
	return it.evaluate(expr.Right)
}

func (it *Interpreter) VisitVariableExpr(expr *ast.Variable) (any, error) {
	return it.lookUpVariable(expr.Name, expr)
}

func (it *Interpreter) VisitAssignExpr(expr *ast.Assign) (any, error) {
	v, err := it.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := it.locals[expr]; ok {
		it.environment.AssignAt(distance, expr.Name.Lexeme, v)
		return v, nil
	}
	if err := it.globals.Assign(expr.Name, v); err != nil {
		return nil, newRuntimeError(expr.Name, "%s", err.Error())
	}
	return v, nil
}

func (it *Interpreter) VisitCallExpr(expr *ast.Call) (any, error) {
	callee, err := it.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]value.Value, len(expr.Arguments))
	for i, arg := range expr.Arguments {
		v, err := it.evaluate(arg)
		if err != nil {
			return nil, err
		}
		arguments[i] = v
	}

	callable, ok := callee.(function.Callable)
	if !ok {
		return nil, newRuntimeError(expr.Paren, "Can only call function and classes")
	}
	if len(arguments) != callable.Arity() {
		return nil, newRuntimeError(expr.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(arguments))
	}
	return callable.Call(it, arguments)
}
