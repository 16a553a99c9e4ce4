/*
File   : saturday/environment/environment.go
Author : adapted from go-mix/scope/scope.go and original_source/src/environment.rs
         for the saturday core

Package environment implements the lexical binding chain the interpreter
walks to look up and assign variables. It plays the same role as go-mix's
Scope, but where Scope.Copy() snapshots its variable map for "closures",
Environment is always shared by pointer: a function captures the
*Environment active at its declaration, and every reference through that
pointer - including later ones from other closures - observes the same
mutable storage. This is required for the language's closures, where
mutating a captured variable from one call must be visible to another
closure over the same variable.
*/
package environment

import (
	"fmt"

	"github.com/akashmaji946/saturday/token"
	"github.com/akashmaji946/saturday/value"
)

// Environment is one lexical scope: a flat map of bindings plus a pointer
// to the enclosing scope (nil at the global scope).
type Environment struct {
	values    map[string]value.Value
	enclosing *Environment
}

// New creates a top-level environment with no enclosing scope.
func New() *Environment {
	return &Environment{values: make(map[string]value.Value)}
}

// NewEnclosed creates a child environment nested inside enclosing.
func NewEnclosed(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]value.Value), enclosing: enclosing}
}

// Define binds name to v in the current scope, overwriting any existing
// binding of the same name in this scope (re-declaration is allowed at
// runtime; the resolver is what forbids it at compile time).
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// ancestor walks up distance enclosing scopes. distance is produced by the
// resolver and is trusted to be in range: walking past the global scope is
// a programming error, not a user-facing one.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name from the scope exactly distance levels up, the lookup
// path the resolver computes for a resolved local variable.
func (e *Environment) GetAt(distance int, name string) value.Value {
	return e.ancestor(distance).values[name]
}

// AssignAt writes name in the scope exactly distance levels up.
func (e *Environment) AssignAt(distance int, name string, v value.Value) {
	e.ancestor(distance).values[name] = v
}

// Get looks up name by walking the enclosing chain, used for globals and
// any variable the resolver left unresolved (which means: look it up at
// the outermost scope at the time of the call).
func (e *Environment) Get(name token.Token) (value.Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name.Lexeme)
}

// Assign walks the enclosing chain looking for an existing binding of
// name.Lexeme and mutates it in place. Unlike Define, Assign never creates
// a new binding - assigning to an undefined variable is a runtime error.
func (e *Environment) Assign(name token.Token, v value.Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = v
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return fmt.Errorf("Undefined variable '%s'.", name.Lexeme)
}

// Enclosing returns the parent scope, or nil at the global scope. Used by
// the REPL's diagnostic `@` hook to walk and print the whole chain.
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Names returns the variable names bound directly in this scope, in no
// particular order. Used only for diagnostics.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	return names
}
