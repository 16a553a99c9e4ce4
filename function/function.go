/*
File   : saturday/function/function.go
Author : adapted from go-mix/function/function.go and
         original_source/src/saturday_function.rs for the saturday core

Package function implements callable values: user-defined functions
(Function, wrapping a parsed declaration and the environment it closed over)
and native functions (NativeFunction, for builtins like clock). Both satisfy
Callable, so the interpreter's call-expression evaluation doesn't need to
know which kind it's invoking.

Function deliberately holds a *environment.Environment pointer rather than a
copy (go-mix's Scope.Copy() approach) - the declaring environment is shared,
not snapshotted, so a closure observes later mutations of variables it
captured, exactly as original_source's Rc<RefCell<Environment>> does.
*/
package function

import (
	"fmt"

	"github.com/akashmaji946/saturday/ast"
	"github.com/akashmaji946/saturday/environment"
	"github.com/akashmaji946/saturday/value"
)

// Executor is the minimal capability a Callable needs from the interpreter
// to run a function body: execute a statement list in a given environment
// and report any propagating error (including an unwound ReturnSignal).
// Defining this here, rather than importing package interp, is what keeps
// function free of a dependency cycle - interp already must import
// function to construct Function values, so function cannot import interp
// back. *interp.Interpreter satisfies this interface structurally.
type Executor interface {
	ExecuteBlock(statements []ast.Stmt, env *environment.Environment) error
}

// Callable is a value that can be invoked. Function and NativeFunction both
// implement it. Implementations compare by identity (their own pointer),
// never structurally.
type Callable interface {
	value.Value
	Arity() int
	Call(ex Executor, arguments []value.Value) (value.Value, error)
	Name() string
}

// ReturnSignal unwinds a function call with its result. It is returned as
// an ordinary Go error so it can propagate through the same channel as
// real errors, but Function.Call (and nothing else) catches it before it
// can leak out as a user-visible error.
type ReturnSignal struct {
	Value value.Value
}

func (r *ReturnSignal) Error() string { return "return used outside of a function call" }

// ErrBreak unwinds the innermost enclosing while loop. Like ReturnSignal it
// rides the error channel but is caught at the loop boundary, never shown
// to the user.
var ErrBreak = fmt.Errorf("break used outside of a loop")

// Function is a user-defined function value: its declaration (name,
// parameters, body) plus the environment active at the point it was
// declared.
type Function struct {
	decl    *ast.FunctionStmt
	closure *environment.Environment
}

// New wraps decl as a callable value, closing over closure.
func New(decl *ast.FunctionStmt, closure *environment.Environment) *Function {
	return &Function{decl: decl, closure: closure}
}

func (*Function) Type() value.Type   { return value.FunctionType }
func (f *Function) Name() string     { return f.decl.Name.Lexeme }
func (f *Function) Arity() int       { return len(f.decl.Params) }
func (f *Function) Display() string  { return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme) }

// Call creates a fresh environment enclosed by the function's closure,
// binds each parameter to its argument, and runs the body through ex. A
// *ReturnSignal produced by the body supplies the call's result; running
// off the end of the body without hitting `return` yields Nil.
func (f *Function) Call(ex Executor, arguments []value.Value) (value.Value, error) {
	callEnv := environment.NewEnclosed(f.closure)
	for i, param := range f.decl.Params {
		callEnv.Define(param.Lexeme, arguments[i])
	}

	err := ex.ExecuteBlock(f.decl.Body, callEnv)
	if err == nil {
		return value.Nil{}, nil
	}
	if ret, ok := err.(*ReturnSignal); ok {
		return ret.Value, nil
	}
	return nil, err
}

// NativeFunction wraps a Go function as a callable value, used for builtins
// like clock that have no source-level declaration.
type NativeFunction struct {
	name  string
	arity int
	fn    func(arguments []value.Value) (value.Value, error)
}

// NewNative builds a NativeFunction named name, accepting exactly arity
// arguments, implemented by fn.
func NewNative(name string, arity int, fn func(arguments []value.Value) (value.Value, error)) *NativeFunction {
	return &NativeFunction{name: name, arity: arity, fn: fn}
}

func (*NativeFunction) Type() value.Type  { return value.FunctionType }
func (n *NativeFunction) Name() string    { return n.name }
func (n *NativeFunction) Arity() int      { return n.arity }
func (n *NativeFunction) Display() string { return fmt.Sprintf("<native fn %s>", n.name) }

// Call invokes the wrapped Go function. NativeFunction never produces a
// *ReturnSignal or ErrBreak; it either returns a value.Value or a genuine
// error (e.g. SystemError for a clock failure).
func (n *NativeFunction) Call(_ Executor, arguments []value.Value) (value.Value, error) {
	return n.fn(arguments)
}
