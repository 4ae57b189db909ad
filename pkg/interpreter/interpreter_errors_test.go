package interpreter

import (
	"strings"
	"testing"
)

func TestUnboundNameError(t *testing.T) {
	rerr := evalFailure(t, "ghost + 1")
	if rerr.Kind != ErrUnboundName {
		t.Fatalf("expected unbound name error, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "name 'ghost' is not defined") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
	if rerr.Pos.Line != 1 || rerr.Pos.Column != 1 {
		t.Fatalf("unexpected position %v", rerr.Pos)
	}
}

func TestErrorPositionPointsAtFailure(t *testing.T) {
	src := strings.Join([]string{
		"x = 1",
		"y = 2",
		"z = missing",
	}, "\n")
	rerr := evalFailure(t, src)
	if rerr.Pos.Line != 3 || rerr.Pos.Column != 5 {
		t.Fatalf("expected line 3 column 5, got %v", rerr.Pos)
	}
}

func TestNotCallable(t *testing.T) {
	rerr := evalFailure(t, "x = 5\nx(1)")
	if rerr.Kind != ErrNotCallable {
		t.Fatalf("expected not callable, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "number is not callable") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestTypeMismatchOnOperands(t *testing.T) {
	rerr := evalFailure(t, "1 + 'one'")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "unsupported operand kinds for '+'") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestOrderingRejectsMixedKinds(t *testing.T) {
	rerr := evalFailure(t, "1 < 'two'")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
}

func TestUnaryMinusRejectsNonNumbers(t *testing.T) {
	rerr := evalFailure(t, "-'text'")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
}

func TestIntegerDivisionByZero(t *testing.T) {
	rerr := evalFailure(t, "1 / 0")
	if rerr.Kind != ErrDivisionByZero {
		t.Fatalf("expected division by zero, got %v", rerr)
	}
}

func TestFloatDivisionByZero(t *testing.T) {
	rerr := evalFailure(t, "1.5 / 0.0")
	if rerr.Kind != ErrDivisionByZero {
		t.Fatalf("expected division by zero, got %v", rerr)
	}
}

func TestModuloByZero(t *testing.T) {
	rerr := evalFailure(t, "10 % 0")
	if rerr.Kind != ErrDivisionByZero {
		t.Fatalf("expected division by zero, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "modulo by zero") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestListIndexOutOfRange(t *testing.T) {
	rerr := evalFailure(t, "[1, 2, 3][5]")
	if rerr.Kind != ErrIndexOutOfRange {
		t.Fatalf("expected index out of range, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "list index 5 out of range for length 3") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestNegativeIndexOutOfRange(t *testing.T) {
	rerr := evalFailure(t, "[1, 2, 3][-1]")
	if rerr.Kind != ErrIndexOutOfRange {
		t.Fatalf("expected index out of range, got %v", rerr)
	}
}

func TestStringIndexOutOfRange(t *testing.T) {
	rerr := evalFailure(t, "'abc'[10]")
	if rerr.Kind != ErrIndexOutOfRange {
		t.Fatalf("expected index out of range, got %v", rerr)
	}
}

func TestMissingMapKey(t *testing.T) {
	rerr := evalFailure(t, "{'a': 1}['b']")
	if rerr.Kind != ErrIndexOutOfRange {
		t.Fatalf("expected index out of range, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "map has no key 'b'") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestNonIntegerListIndex(t *testing.T) {
	rerr := evalFailure(t, "[1, 2][1.5]")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
}

func TestUnhashableMapKey(t *testing.T) {
	rerr := evalFailure(t, "{[1]: 'list key'}")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "map key must be a string or an integer number") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestFloatMapKeyRejected(t *testing.T) {
	rerr := evalFailure(t, "m = {}\nm[1.5] = 'x'")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
}

func TestIndexingUnindexableValue(t *testing.T) {
	rerr := evalFailure(t, "5[0]")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "cannot index number") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestSetIndexOnUnsupportedTarget(t *testing.T) {
	rerr := evalFailure(t, "s = 'abc'\ns[0] = 'x'")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "cannot assign into string by index") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestSetIndexOutOfRange(t *testing.T) {
	rerr := evalFailure(t, "xs = [1]\nxs[3] = 9")
	if rerr.Kind != ErrIndexOutOfRange {
		t.Fatalf("expected index out of range, got %v", rerr)
	}
}

func TestIterationOverNonIterable(t *testing.T) {
	src := strings.Join([]string{
		"for x in 42:",
		"    x",
	}, "\n")
	rerr := evalFailure(t, src)
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "cannot iterate over number") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestRangeBoundsMustBeIntegers(t *testing.T) {
	rerr := evalFailure(t, "1.5..3")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "range bounds must be integer numbers") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestSliceBoundsMustBeIntegers(t *testing.T) {
	rerr := evalFailure(t, "[1, 2, 3][1.5:2]")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
}

func TestSlicingUnsliceableValue(t *testing.T) {
	rerr := evalFailure(t, "42[0:1]")
	if rerr.Kind != ErrTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", rerr)
	}
	if !strings.Contains(rerr.Msg, "cannot slice number") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}
}

func TestErrorStringsIncludeKindAndPosition(t *testing.T) {
	rerr := evalFailure(t, "ghost")
	msg := rerr.Error()
	if !strings.Contains(msg, "unbound name error:") {
		t.Fatalf("expected kind prefix, got %q", msg)
	}
	if !strings.Contains(msg, "line 1, column 1") {
		t.Fatalf("expected position suffix, got %q", msg)
	}
}

func TestErrorInsideFunctionPropagates(t *testing.T) {
	src := strings.Join([]string{
		"func broken():",
		"    return ghost",
		"broken()",
	}, "\n")
	rerr := evalFailure(t, src)
	if rerr.Kind != ErrUnboundName {
		t.Fatalf("expected unbound name, got %v", rerr)
	}
	if rerr.Pos.Line != 2 {
		t.Fatalf("expected error reported inside the function, got %v", rerr.Pos)
	}
}
