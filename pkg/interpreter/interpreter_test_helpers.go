package interpreter

import (
	"bytes"
	"testing"

	"abrvalg/interpreter-go/pkg/ast"
	"abrvalg/interpreter-go/pkg/lexer"
	"abrvalg/interpreter-go/pkg/parser"
	"abrvalg/interpreter-go/pkg/runtime"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return program
}

// evalSource evaluates a program and returns its final value. Output
// from print goes to a discarded buffer.
func evalSource(t *testing.T, src string) runtime.Value {
	t.Helper()
	interp := New()
	interp.SetOutput(&bytes.Buffer{})
	val, err := interp.EvaluateProgram(parseProgram(t, src))
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	return val
}

// runSource evaluates a program and returns what it printed.
func runSource(t *testing.T, src string) string {
	t.Helper()
	var out bytes.Buffer
	interp := New()
	interp.SetOutput(&out)
	if _, err := interp.EvaluateProgram(parseProgram(t, src)); err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	return out.String()
}

// evalFailure evaluates a program expected to fail and returns the
// runtime error.
func evalFailure(t *testing.T, src string) *RuntimeError {
	t.Helper()
	interp := New()
	interp.SetOutput(&bytes.Buffer{})
	_, err := interp.EvaluateProgram(parseProgram(t, src))
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	return rerr
}

func expectInt(t *testing.T, val runtime.Value, want int64) {
	t.Helper()
	num, ok := val.(runtime.NumberValue)
	if !ok || !num.IsInt || num.Int != want {
		t.Fatalf("expected integer %d, got %#v", want, val)
	}
}

func expectFloat(t *testing.T, val runtime.Value, want float64) {
	t.Helper()
	num, ok := val.(runtime.NumberValue)
	if !ok || num.IsInt || num.Float != want {
		t.Fatalf("expected float %v, got %#v", want, val)
	}
}

func expectString(t *testing.T, val runtime.Value, want string) {
	t.Helper()
	str, ok := val.(runtime.StringValue)
	if !ok || str.Val != want {
		t.Fatalf("expected string %q, got %#v", want, val)
	}
}

func expectBool(t *testing.T, val runtime.Value, want bool) {
	t.Helper()
	b, ok := val.(runtime.BoolValue)
	if !ok || b.Val != want {
		t.Fatalf("expected %v, got %#v", want, val)
	}
}

func expectNone(t *testing.T, val runtime.Value) {
	t.Helper()
	if _, ok := val.(runtime.NoneValue); !ok {
		t.Fatalf("expected none, got %#v", val)
	}
}

func expectList(t *testing.T, val runtime.Value, want ...int64) {
	t.Helper()
	list, ok := val.(*runtime.ListValue)
	if !ok {
		t.Fatalf("expected list, got %#v", val)
	}
	if len(list.Elements) != len(want) {
		t.Fatalf("expected %d elements, got %s", len(want), runtime.Inspect(list))
	}
	for i, n := range want {
		num, ok := list.Elements[i].(runtime.NumberValue)
		if !ok || !num.IsInt || num.Int != n {
			t.Fatalf("element %d: expected %d, got %s", i, n, runtime.Inspect(list))
		}
	}
}
