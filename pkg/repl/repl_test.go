package repl

import (
	"bytes"
	"strings"
	"testing"

	"abrvalg/interpreter-go/pkg/driver"
)

func testREPL() (*REPL, *bytes.Buffer) {
	var buf bytes.Buffer
	d := driver.New(&driver.Config{Colors: false})
	d.SetOutput(&buf)
	r := New(d, &driver.Config{Colors: false})
	r.SetOutput(&buf)
	return r, &buf
}

func TestNeedsMoreAfterBlockHeader(t *testing.T) {
	if !needsMore("func greet(name):") {
		t.Fatalf("expected continuation after a block header")
	}
}

func TestNeedsMoreInsideIndentedBlock(t *testing.T) {
	if !needsMore("func one():\n    return 1") {
		t.Fatalf("expected continuation while the last line is indented")
	}
}

func TestNeedsMoreAfterNestedHeader(t *testing.T) {
	if !needsMore("func check(n):\n    if n:") {
		t.Fatalf("expected continuation after a nested block header")
	}
}

func TestNeedsMoreFalseForCompleteExpression(t *testing.T) {
	if needsMore("1 + 2") {
		t.Fatalf("a complete expression should evaluate immediately")
	}
}

func TestNeedsMoreFalseForCompleteBlock(t *testing.T) {
	src := "func one():\n    return 1\none()"
	if needsMore(src) {
		t.Fatalf("a closed block followed by a call should evaluate immediately")
	}
}

func TestNeedsMoreFalseForBrokenExpression(t *testing.T) {
	if needsMore("x = (1 +") {
		t.Fatalf("a broken expression should be reported, not continued")
	}
}

func TestNeedsMoreFalseForLexError(t *testing.T) {
	if needsMore("x = 'unterminated") {
		t.Fatalf("a lex error should be reported, not continued")
	}
}

func TestSubmitPrintsInspectedResult(t *testing.T) {
	r, buf := testREPL()
	r.submit("1 + 2")
	if got := buf.String(); got != "3\n" {
		t.Fatalf("expected \"3\\n\", got %q", got)
	}
}

func TestSubmitQuotesStringResults(t *testing.T) {
	r, buf := testREPL()
	r.submit("'hi ' + 'there'")
	if got := buf.String(); got != "'hi there'\n" {
		t.Fatalf("expected quoted string result, got %q", got)
	}
}

func TestSubmitSuppressesNoneResult(t *testing.T) {
	r, buf := testREPL()
	r.submit("x = 1")
	if got := buf.String(); got != "" {
		t.Fatalf("assignment should print nothing, got %q", got)
	}
}

func TestSubmitPrintsProgramOutputBeforeResult(t *testing.T) {
	r, buf := testREPL()
	r.submit("print('side effect')\n'value'")
	want := "side effect\n'value'\n"
	if got := buf.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSubmitKeepsBindingsAcrossLines(t *testing.T) {
	r, buf := testREPL()
	r.submit("base = 40")
	r.submit("base + 2")
	if got := buf.String(); got != "42\n" {
		t.Fatalf("expected binding to survive between submissions, got %q", got)
	}
}

func TestSubmitRendersErrorsAndKeepsEnvironment(t *testing.T) {
	r, buf := testREPL()
	r.submit("kept = 7")
	r.submit("missing")
	if !strings.Contains(buf.String(), "name 'missing' is not defined") {
		t.Fatalf("expected an unbound name report, got %q", buf.String())
	}
	buf.Reset()
	r.submit("kept")
	if got := buf.String(); got != "7\n" {
		t.Fatalf("expected earlier binding to survive the error, got %q", got)
	}
}

func TestSubmitDefinesFunctionsForLaterLines(t *testing.T) {
	r, buf := testREPL()
	r.submit("func double(n):\n    return n * 2")
	r.submit("double(21)")
	if got := buf.String(); got != "42\n" {
		t.Fatalf("expected 42 from a function defined earlier, got %q", got)
	}
}

func TestLastLine(t *testing.T) {
	if got := lastLine("a\nb\nc"); got != "c" {
		t.Fatalf("expected \"c\", got %q", got)
	}
	if got := lastLine("single"); got != "single" {
		t.Fatalf("expected \"single\", got %q", got)
	}
	if got := lastLine("ends\n"); got != "" {
		t.Fatalf("expected empty last line, got %q", got)
	}
}
