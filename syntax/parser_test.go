package syntax

import (
	"bufio"
	"strings"
	"testing"

	"falsec/ast"
)

// parse parses src, failing the test on error.
func parse(t *testing.T, src string) []ast.Node {
	t.Helper()

	program, err := NewParser(bufio.NewReader(strings.NewReader(src))).Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	return program
}

// parseErr parses src, failing the test unless it errors.
func parseErr(t *testing.T, src string) error {
	t.Helper()

	_, err := NewParser(bufio.NewReader(strings.NewReader(src))).Parse()
	if err == nil {
		t.Fatalf("expected a parse error for %q", src)
	}

	return err
}

func TestParser_FlatProgram(t *testing.T) {
	program := parse(t, "1 2 + .")

	if len(program) != 4 {
		t.Fatalf("len(program) = %d", len(program))
	}

	if lit, ok := program[0].(*ast.IntLit); !ok || lit.Value != 1 {
		t.Errorf("program[0] = %#v", program[0])
	}
	if lit, ok := program[1].(*ast.IntLit); !ok || lit.Value != 2 {
		t.Errorf("program[1] = %#v", program[1])
	}
	if op, ok := program[2].(*ast.Op); !ok || op.Kind != ast.OpPlus {
		t.Errorf("program[2] = %#v", program[2])
	}
	if op, ok := program[3].(*ast.Op); !ok || op.Kind != ast.OpPrintInt {
		t.Errorf("program[3] = %#v", program[3])
	}
}

func TestParser_VariableFetchStore(t *testing.T) {
	program := parse(t, "10 a: a; .")

	if len(program) != 6 {
		t.Fatalf("len(program) = %d", len(program))
	}

	if v, ok := program[1].(*ast.Variable); !ok || v.Name != 'a' {
		t.Errorf("program[1] = %#v", program[1])
	}
	if op, ok := program[2].(*ast.Op); !ok || op.Kind != ast.OpSetVar {
		t.Errorf("program[2] = %#v", program[2])
	}
	if op, ok := program[4].(*ast.Op); !ok || op.Kind != ast.OpGetVar {
		t.Errorf("program[4] = %#v", program[4])
	}
}

// countQuotes counts every quote in the tree rooted at the given sequence.
func countQuotes(stmts []ast.Node) int {
	n := 0
	for _, stmt := range stmts {
		if quote, ok := stmt.(*ast.Quote); ok {
			n += 1 + countQuotes(quote.Body)
		}
	}
	return n
}

func TestParser_QuoteNesting(t *testing.T) {
	program := parse(t, "[1 [2 [3]] []]")

	if len(program) != 1 {
		t.Fatalf("len(program) = %d", len(program))
	}

	if countQuotes(program) != 4 {
		t.Errorf("quote count = %d, want 4", countQuotes(program))
	}

	outer := program[0].(*ast.Quote)
	if len(outer.Body) != 3 {
		t.Errorf("outer body length = %d", len(outer.Body))
	}
}

func TestParser_FlushDropped(t *testing.T) {
	program := parse(t, "1B2")

	if len(program) != 2 {
		t.Fatalf("len(program) = %d, flush should not produce a node", len(program))
	}
}

func TestParser_CharLiteralValue(t *testing.T) {
	program := parse(t, "' ,")

	if lit, ok := program[0].(*ast.IntLit); !ok || lit.Value != 32 {
		t.Errorf("program[0] = %#v, want integer 32", program[0])
	}
}

func TestParser_TopLevelCloseBracketEndsInput(t *testing.T) {
	program := parse(t, "1]2")

	if len(program) != 1 {
		t.Fatalf("len(program) = %d, a top-level ] should end input", len(program))
	}
}

func TestParser_UnclosedQuote(t *testing.T) {
	err := parseErr(t, "[1 2")

	if err.Error() != "unexpected end of file" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestParser_AsmRejected(t *testing.T) {
	err := parseErr(t, "` 7")

	if err.Error() != "assembly not supported" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestParser_AsmMissingOperand(t *testing.T) {
	for _, src := range []string{"`", "` +"} {
		err := parseErr(t, src)

		if err.Error() != "syntax error: expected a short" {
			t.Errorf("%q error = %q", src, err.Error())
		}
	}
}

func TestParser_AsmInsideQuote(t *testing.T) {
	err := parseErr(t, "[` 7]")

	if err.Error() != "assembly not supported" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestParser_LexErrorPropagates(t *testing.T) {
	err := parseErr(t, "1 {oops")

	if err.Error() != "unclosed comment" {
		t.Errorf("error = %q", err.Error())
	}
}
