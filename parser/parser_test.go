package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/saturday/ast"
	"github.com/akashmaji946/saturday/token"
)

// astOpts ignores token.Token.Line so structural-equality comparisons in
// these tests don't break if line numbers shift; positions are covered by
// the lexer's own tests.
var astOpts = cmp.Options{
	cmpopts.IgnoreFields(token.Token{}, "Line"),
	cmp.AllowUnexported(),
}

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	p := New(src)
	stmts := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.Errors())
	return stmts
}

func TestParse_VarDeclarationWithInitializer(t *testing.T) {
	stmts := parse(t, "def x = 1 + 2;")
	require.Len(t, stmts, 1)
	def, ok := stmts[0].(*ast.DefStmt)
	require.True(t, ok)
	assert.Equal(t, "x", def.Name.Lexeme)
	bin, ok := def.Initializer.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.Plus, bin.Operator.Kind)
}

func TestParse_VarDeclarationWithoutInitializer(t *testing.T) {
	stmts := parse(t, "def x;")
	require.Len(t, stmts, 1)
	def := stmts[0].(*ast.DefStmt)
	assert.Nil(t, def.Initializer)
}

func TestParse_PrintAndBlock(t *testing.T) {
	stmts := parse(t, "{ print 1; print 2; }")
	require.Len(t, stmts, 1)
	block := stmts[0].(*ast.BlockStmt)
	assert.Len(t, block.Statements, 2)
}

func TestParse_IfElse(t *testing.T) {
	stmts := parse(t, "if (true) print 1; else print 2;")
	require.Len(t, stmts, 1)
	ifStmt := stmts[0].(*ast.IfStmt)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParse_WhileAndBreak(t *testing.T) {
	stmts := parse(t, "while (true) { break; }")
	require.Len(t, stmts, 1)
	whileStmt := stmts[0].(*ast.WhileStmt)
	body := whileStmt.Body.(*ast.BlockStmt)
	_, ok := body.Statements[0].(*ast.BreakStmt)
	assert.True(t, ok)
}

func TestParse_ForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, "for (def i = 0; i < 3; i = i + 1) print i;")
	require.Len(t, stmts, 1)
	outer := stmts[0].(*ast.BlockStmt)
	require.Len(t, outer.Statements, 2)
	_, ok := outer.Statements[0].(*ast.DefStmt)
	assert.True(t, ok)
	whileStmt, ok := outer.Statements[1].(*ast.WhileStmt)
	require.True(t, ok)
	innerBlock := whileStmt.Body.(*ast.BlockStmt)
	require.Len(t, innerBlock.Statements, 2)
}

func TestParse_ForMissingConditionDefaultsTrue(t *testing.T) {
	stmts := parse(t, "for (;;) { break; }")
	whileStmt := stmts[0].(*ast.WhileStmt)
	lit, ok := whileStmt.Condition.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, true, lit.Value)
}

func TestParse_FunctionDeclaration(t *testing.T) {
	stmts := parse(t, "fun add(a, b) { return a + b; }")
	require.Len(t, stmts, 1)
	fn := stmts[0].(*ast.FunctionStmt)
	assert.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Lexeme)
	require.Len(t, fn.Body, 1)
	_, ok := fn.Body[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParse_CallExpression(t *testing.T) {
	stmts := parse(t, "add(1, 2);")
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	call, ok := exprStmt.Expression.(*ast.Call)
	require.True(t, ok)
	assert.Len(t, call.Arguments, 2)
}

func TestParse_Assignment(t *testing.T) {
	stmts := parse(t, "x = 5;")
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	assign, ok := exprStmt.Expression.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name.Lexeme)
}

func TestParse_InvalidAssignmentTargetReportsError(t *testing.T) {
	p := New("1 = 2;")
	p.Parse()
	require.True(t, p.HasErrors())
	assert.Contains(t, p.Errors()[0], "Invalid assignment target.")
}

func TestParse_PrecedenceAndAssociativity(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3), i.e. the top node is a Binary
	// with Plus whose Right is a Binary with Star.
	stmts := parse(t, "1 + 2 * 3;")
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	plus := exprStmt.Expression.(*ast.Binary)
	assert.Equal(t, token.Plus, plus.Operator.Kind)
	mul, ok := plus.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.Star, mul.Operator.Kind)
}

func TestParse_LogicalOperators(t *testing.T) {
	stmts := parse(t, "a and b or c;")
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	or, ok := exprStmt.Expression.(*ast.Logical)
	require.True(t, ok)
	assert.Equal(t, token.Or, or.Operator.Kind)
	_, ok = or.Left.(*ast.Logical)
	assert.True(t, ok)
}

func TestParse_TooManyArgumentsReportsError(t *testing.T) {
	src := "f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ");"
	p := New(src)
	p.Parse()
	require.True(t, p.HasErrors())
	found := false
	for _, e := range p.Errors() {
		if strings.Contains(e, "Can't have more than 255 arguments.") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParse_SynchronizeAfterError(t *testing.T) {
	// The malformed first statement should not prevent the second,
	// well-formed statement from being parsed.
	p := New("def = ; def y = 2;")
	stmts := p.Parse()
	require.True(t, p.HasErrors())
	found := false
	for _, s := range stmts {
		if def, ok := s.(*ast.DefStmt); ok && def.Name.Lexeme == "y" {
			found = true
		}
	}
	assert.True(t, found)
}

// TestParse_Deterministic exercises Property law 2: parsing the same
// source twice produces structurally identical ASTs.
func TestParse_Deterministic(t *testing.T) {
	src := `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		def result = fib(10);
		print result;
	`
	first := parse(t, src)
	second := parse(t, src)
	if diff := cmp.Diff(first, second, astOpts); diff != "" {
		t.Fatalf("two parses of the same source diverged (-first +second):\n%s", diff)
	}
}
