/*
File   : saturday/environment/environment_test.go

Test cases are carried over from original_source/src/environment.rs's own
#[cfg(test)] module, translated to Go and testify.
*/
package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/saturday/token"
	"github.com/akashmaji946/saturday/value"
)

func name(lexeme string) token.Token {
	return token.New(token.Identifier, lexeme, 1)
}

func TestCanDefineAVariable(t *testing.T) {
	env := New()
	env.Define("x", value.Number(1))
	got, err := env.Get(name("x"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(1), got)
}

func TestCanRedefineAVariable(t *testing.T) {
	env := New()
	env.Define("x", value.Number(1))
	env.Define("x", value.Number(2))
	got, err := env.Get(name("x"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(2), got)
}

func TestErrorWhenVariableUndefined(t *testing.T) {
	env := New()
	_, err := env.Get(name("missing"))
	require.Error(t, err)
	assert.Equal(t, "Undefined variable 'missing'.", err.Error())
}

func TestErrorWhenAssigningToUndefinedVariable(t *testing.T) {
	env := New()
	err := env.Assign(name("missing"), value.Number(1))
	require.Error(t, err)
	assert.Equal(t, "Undefined variable 'missing'.", err.Error())
}

func TestCanReassignExistingVariable(t *testing.T) {
	env := New()
	env.Define("x", value.Number(1))
	require.NoError(t, env.Assign(name("x"), value.Number(99)))
	got, err := env.Get(name("x"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(99), got)
}

func TestCanEncloseAnEnvironment(t *testing.T) {
	outer := New()
	inner := NewEnclosed(outer)
	assert.Equal(t, outer, inner.Enclosing())
}

func TestCanReadFromEnclosedEnvironment(t *testing.T) {
	outer := New()
	outer.Define("x", value.Number(7))
	inner := NewEnclosed(outer)
	got, err := inner.Get(name("x"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(7), got)
}

func TestCanAssignToEnclosedEnvironment(t *testing.T) {
	outer := New()
	outer.Define("x", value.Number(1))
	inner := NewEnclosed(outer)
	require.NoError(t, inner.Assign(name("x"), value.Number(2)))
	got, err := outer.Get(name("x"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(2), got)
}

func TestGetAtAndAssignAtUseDistance(t *testing.T) {
	global := New()
	middle := NewEnclosed(global)
	inner := NewEnclosed(middle)

	global.Define("x", value.Number(1))
	middle.Define("x", value.Number(2))

	assert.Equal(t, value.Number(2), inner.GetAt(1, "x"))
	assert.Equal(t, value.Number(1), inner.GetAt(2, "x"))

	inner.AssignAt(1, "x", value.Number(42))
	got, err := middle.Get(name("x"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(42), got)
}
