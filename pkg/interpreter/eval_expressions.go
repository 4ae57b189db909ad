package interpreter

import (
	"math"
	"strings"

	"abrvalg/interpreter-go/pkg/ast"
	"abrvalg/interpreter-go/pkg/runtime"
	"abrvalg/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch expr := node.(type) {
	case *ast.NumberLiteral:
		if expr.IsInt {
			return runtime.IntNumber(expr.Int), nil
		}
		return runtime.FloatNumber(expr.Float), nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: expr.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: expr.Value}, nil
	case *ast.NoneLiteral:
		return runtime.NoneValue{}, nil
	case *ast.Identifier:
		val, ok := env.Get(expr.Name)
		if !ok {
			return nil, runtimeErrorf(ErrUnboundName, expr.Pos, "name '%s' is not defined", expr.Name)
		}
		return val, nil
	case *ast.ListLiteral:
		elements := make([]runtime.Value, 0, len(expr.Elements))
		for _, el := range expr.Elements {
			val, err := i.evaluateExpression(el, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, val)
		}
		return runtime.NewList(elements), nil
	case *ast.MapLiteral:
		m := runtime.NewMap()
		for _, entry := range expr.Entries {
			key, err := i.evaluateExpression(entry.Key, env)
			if err != nil {
				return nil, err
			}
			if !runtime.Hashable(key) {
				return nil, runtimeErrorf(ErrTypeMismatch, entry.Key.Position(), "map key must be a string or an integer number, got %s", key.Kind())
			}
			val, err := i.evaluateExpression(entry.Value, env)
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil
	case *ast.RangeLiteral:
		return i.evaluateRange(expr, env)
	case *ast.UnaryOp:
		return i.evaluateUnaryOp(expr, env)
	case *ast.BinaryOp:
		return i.evaluateBinaryOp(expr, env)
	case *ast.Call:
		return i.evaluateCall(expr, env)
	case *ast.Index:
		return i.evaluateIndex(expr, env)
	case *ast.Slice:
		return i.evaluateSlice(expr, env)
	default:
		return nil, runtimeErrorf(ErrTypeMismatch, node.Position(), "cannot evaluate %s expression", node.NodeType())
	}
}

func (i *Interpreter) evaluateRange(expr *ast.RangeLiteral, env *runtime.Environment) (runtime.Value, error) {
	start, err := i.evaluateExpression(expr.Start, env)
	if err != nil {
		return nil, err
	}
	end, err := i.evaluateExpression(expr.End, env)
	if err != nil {
		return nil, err
	}
	lo, okLo := intIndex(start)
	hi, okHi := intIndex(end)
	if !okLo || !okHi {
		return nil, runtimeErrorf(ErrTypeMismatch, expr.Pos, "range bounds must be integer numbers, got %s and %s", start.Kind(), end.Kind())
	}
	return runtime.RangeValue{Start: lo, End: hi, Inclusive: expr.Inclusive}, nil
}

func (i *Interpreter) evaluateUnaryOp(expr *ast.UnaryOp, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case "-":
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, runtimeErrorf(ErrTypeMismatch, expr.Pos, "unary '-' requires a number, got %s", operand.Kind())
		}
		if num.IsInt {
			return runtime.IntNumber(-num.Int), nil
		}
		return runtime.FloatNumber(-num.Float), nil
	case "not":
		return runtime.BoolValue{Val: !isTruthy(operand)}, nil
	default:
		return nil, runtimeErrorf(ErrTypeMismatch, expr.Pos, "unknown unary operator '%s'", expr.Op)
	}
}

// evaluateBinaryOp handles logical operators lazily and defers the
// rest to the per-kind dispatch in applyBinaryOp. The right operand of
// && and || is only evaluated when the left side does not already
// decide the result.
func (i *Interpreter) evaluateBinaryOp(expr *ast.BinaryOp, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case "&&":
		if !isTruthy(left) {
			return runtime.BoolValue{Val: false}, nil
		}
		right, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: isTruthy(right)}, nil
	case "||":
		if isTruthy(left) {
			return runtime.BoolValue{Val: true}, nil
		}
		right, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: isTruthy(right)}, nil
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(expr.Op, left, right, expr.Pos)
}

// applyBinaryOp dispatches on the operand kind pair; combinations
// outside the table fail with a type mismatch.
func applyBinaryOp(op string, left, right runtime.Value, pos token.Position) (runtime.Value, error) {
	switch op {
	case "+":
		switch l := left.(type) {
		case runtime.NumberValue:
			if r, ok := right.(runtime.NumberValue); ok {
				return addNumbers(l, r), nil
			}
		case runtime.StringValue:
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		case *runtime.ListValue:
			if r, ok := right.(*runtime.ListValue); ok {
				elements := make([]runtime.Value, 0, len(l.Elements)+len(r.Elements))
				elements = append(elements, l.Elements...)
				elements = append(elements, r.Elements...)
				return runtime.NewList(elements), nil
			}
		}
	case "-":
		if l, r, ok := numberPair(left, right); ok {
			return subNumbers(l, r), nil
		}
	case "*":
		switch l := left.(type) {
		case runtime.NumberValue:
			switch r := right.(type) {
			case runtime.NumberValue:
				return mulNumbers(l, r), nil
			case runtime.StringValue:
				if l.IsInt {
					return repeatString(r.Val, l.Int), nil
				}
			case *runtime.ListValue:
				if l.IsInt {
					return repeatList(r, l.Int), nil
				}
			}
		case runtime.StringValue:
			if r, ok := right.(runtime.NumberValue); ok && r.IsInt {
				return repeatString(l.Val, r.Int), nil
			}
		case *runtime.ListValue:
			if r, ok := right.(runtime.NumberValue); ok && r.IsInt {
				return repeatList(l, r.Int), nil
			}
		}
	case "/":
		if l, r, ok := numberPair(left, right); ok {
			return divNumbers(l, r, pos)
		}
	case "%":
		if l, r, ok := numberPair(left, right); ok {
			return modNumbers(l, r, pos)
		}
	case "<", "<=", ">", ">=":
		return compareValues(op, left, right, pos)
	case "==":
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	}
	return nil, runtimeErrorf(ErrTypeMismatch, pos, "unsupported operand kinds for '%s': %s and %s", op, left.Kind(), right.Kind())
}

// Numeric helpers. Integer pairs stay integral except for division,
// which only stays integral when it is exact.

func numberPair(left, right runtime.Value) (runtime.NumberValue, runtime.NumberValue, bool) {
	l, okL := left.(runtime.NumberValue)
	r, okR := right.(runtime.NumberValue)
	return l, r, okL && okR
}

func addNumbers(l, r runtime.NumberValue) runtime.Value {
	if l.IsInt && r.IsInt {
		return runtime.IntNumber(l.Int + r.Int)
	}
	return runtime.FloatNumber(l.AsFloat() + r.AsFloat())
}

func subNumbers(l, r runtime.NumberValue) runtime.Value {
	if l.IsInt && r.IsInt {
		return runtime.IntNumber(l.Int - r.Int)
	}
	return runtime.FloatNumber(l.AsFloat() - r.AsFloat())
}

func mulNumbers(l, r runtime.NumberValue) runtime.Value {
	if l.IsInt && r.IsInt {
		return runtime.IntNumber(l.Int * r.Int)
	}
	return runtime.FloatNumber(l.AsFloat() * r.AsFloat())
}

func divNumbers(l, r runtime.NumberValue, pos token.Position) (runtime.Value, error) {
	if r.IsZero() {
		return nil, runtimeErrorf(ErrDivisionByZero, pos, "division by zero")
	}
	if l.IsInt && r.IsInt {
		if l.Int%r.Int == 0 {
			return runtime.IntNumber(l.Int / r.Int), nil
		}
		return runtime.FloatNumber(float64(l.Int) / float64(r.Int)), nil
	}
	return runtime.FloatNumber(l.AsFloat() / r.AsFloat()), nil
}

func modNumbers(l, r runtime.NumberValue, pos token.Position) (runtime.Value, error) {
	if r.IsZero() {
		return nil, runtimeErrorf(ErrDivisionByZero, pos, "modulo by zero")
	}
	if l.IsInt && r.IsInt {
		return runtime.IntNumber(l.Int % r.Int), nil
	}
	return runtime.FloatNumber(math.Mod(l.AsFloat(), r.AsFloat())), nil
}

func repeatString(s string, count int64) runtime.Value {
	if count <= 0 {
		return runtime.StringValue{}
	}
	return runtime.StringValue{Val: strings.Repeat(s, int(count))}
}

func repeatList(list *runtime.ListValue, count int64) runtime.Value {
	if count <= 0 {
		return runtime.NewList(nil)
	}
	elements := make([]runtime.Value, 0, int64(len(list.Elements))*count)
	for n := int64(0); n < count; n++ {
		elements = append(elements, list.Elements...)
	}
	return runtime.NewList(elements)
}

// compareValues orders numbers by value and strings lexicographically.
func compareValues(op string, left, right runtime.Value, pos token.Position) (runtime.Value, error) {
	if l, r, ok := numberPair(left, right); ok {
		return runtime.BoolValue{Val: orderingHolds(op, compareNumbers(l, r))}, nil
	}
	if l, ok := left.(runtime.StringValue); ok {
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.BoolValue{Val: orderingHolds(op, strings.Compare(l.Val, r.Val))}, nil
		}
	}
	return nil, runtimeErrorf(ErrTypeMismatch, pos, "cannot order %s and %s with '%s'", left.Kind(), right.Kind(), op)
}

func compareNumbers(l, r runtime.NumberValue) int {
	if l.IsInt && r.IsInt {
		switch {
		case l.Int < r.Int:
			return -1
		case l.Int > r.Int:
			return 1
		}
		return 0
	}
	switch {
	case l.AsFloat() < r.AsFloat():
		return -1
	case l.AsFloat() > r.AsFloat():
		return 1
	}
	return 0
}

func orderingHolds(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	default:
		return cmp >= 0
	}
}

// valuesEqual implements '==': cross-kind comparisons are simply
// unequal, lists and maps compare deeply, functions compare by
// identity.
func valuesEqual(a, b runtime.Value) bool {
	switch av := a.(type) {
	case runtime.NumberValue:
		bv, ok := b.(runtime.NumberValue)
		if !ok {
			return false
		}
		if av.IsInt && bv.IsInt {
			return av.Int == bv.Int
		}
		return av.AsFloat() == bv.AsFloat()
	case runtime.StringValue:
		bv, ok := b.(runtime.StringValue)
		return ok && av.Val == bv.Val
	case runtime.BoolValue:
		bv, ok := b.(runtime.BoolValue)
		return ok && av.Val == bv.Val
	case runtime.NoneValue:
		_, ok := b.(runtime.NoneValue)
		return ok
	case *runtime.ListValue:
		bv, ok := b.(*runtime.ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for idx := range av.Elements {
			if !valuesEqual(av.Elements[idx], bv.Elements[idx]) {
				return false
			}
		}
		return true
	case *runtime.MapValue:
		bv, ok := b.(*runtime.MapValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, key := range av.Keys() {
			left, _ := av.Get(key)
			right, found := bv.Get(key)
			if !found || !valuesEqual(left, right) {
				return false
			}
		}
		return true
	case runtime.RangeValue:
		bv, ok := b.(runtime.RangeValue)
		return ok && av == bv
	case *runtime.FunctionValue:
		bv, ok := b.(*runtime.FunctionValue)
		return ok && av == bv
	case runtime.BuiltinValue:
		bv, ok := b.(runtime.BuiltinValue)
		return ok && av.Name == bv.Name
	default:
		return false
	}
}

// isTruthy: false, none, zero, and empty strings, lists, maps and
// ranges are falsy; everything else is truthy.
func isTruthy(v runtime.Value) bool {
	switch val := v.(type) {
	case runtime.BoolValue:
		return val.Val
	case runtime.NoneValue:
		return false
	case runtime.NumberValue:
		return !val.IsZero()
	case runtime.StringValue:
		return val.Val != ""
	case *runtime.ListValue:
		return len(val.Elements) > 0
	case *runtime.MapValue:
		return val.Len() > 0
	case runtime.RangeValue:
		return val.Count() > 0
	default:
		return true
	}
}

// intIndex extracts an integer from a value used as an index or bound.
func intIndex(v runtime.Value) (int64, bool) {
	num, ok := v.(runtime.NumberValue)
	if !ok || !num.IsInt {
		return 0, false
	}
	return num.Int, true
}

//-----------------------------------------------------------------------------
// Calls
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluateCall(expr *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(expr.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args, expr.Pos)
	case runtime.BuiltinValue:
		if len(args) != fn.Arity {
			return nil, runtimeErrorf(ErrArity, expr.Pos, "builtin '%s' expects %d arguments, got %d", fn.Name, fn.Arity, len(args))
		}
		val, err := fn.Impl(&runtime.NativeCallContext{Out: i.out}, args)
		if err != nil {
			if rerr, ok := err.(*RuntimeError); ok && rerr.Pos.Line == 0 {
				rerr.Pos = expr.Pos
			}
			return nil, err
		}
		return val, nil
	default:
		return nil, runtimeErrorf(ErrNotCallable, expr.Pos, "%s is not callable", callee.Kind())
	}
}

// invokeFunction runs a user function in a fresh environment whose
// parent is the function's captured defining environment, never the
// caller's. That chain is what resolves both free variables and the
// function's own name for recursion.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value, pos token.Position) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, runtimeErrorf(ErrArity, pos, "function '%s' expects %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}
	if i.depth >= i.maxDepth {
		return nil, runtimeErrorf(ErrStackOverflow, pos, "maximum call depth %d exceeded", i.maxDepth)
	}
	i.depth++
	defer func() { i.depth-- }()

	callEnv := fn.Closure.Extend()
	for idx, param := range fn.Params {
		callEnv.Define(param, args[idx])
	}
	val, _, err := i.evaluateBlock(fn.Body, callEnv)
	if err != nil {
		return nil, err
	}
	return val, nil
}

//-----------------------------------------------------------------------------
// Indexing and slicing
//-----------------------------------------------------------------------------

func (i *Interpreter) evaluateIndex(expr *ast.Index, env *runtime.Environment) (runtime.Value, error) {
	target, err := i.evaluateExpression(expr.Target, env)
	if err != nil {
		return nil, err
	}
	key, err := i.evaluateExpression(expr.Key, env)
	if err != nil {
		return nil, err
	}
	switch collection := target.(type) {
	case *runtime.ListValue:
		idx, ok := intIndex(key)
		if !ok {
			return nil, runtimeErrorf(ErrTypeMismatch, expr.Key.Position(), "list index must be an integer number, got %s", key.Kind())
		}
		if idx < 0 || idx >= int64(len(collection.Elements)) {
			return nil, runtimeErrorf(ErrIndexOutOfRange, expr.Key.Position(), "list index %d out of range for length %d", idx, len(collection.Elements))
		}
		return collection.Elements[idx], nil
	case runtime.StringValue:
		idx, ok := intIndex(key)
		if !ok {
			return nil, runtimeErrorf(ErrTypeMismatch, expr.Key.Position(), "string index must be an integer number, got %s", key.Kind())
		}
		runes := []rune(collection.Val)
		if idx < 0 || idx >= int64(len(runes)) {
			return nil, runtimeErrorf(ErrIndexOutOfRange, expr.Key.Position(), "string index %d out of range for length %d", idx, len(runes))
		}
		return runtime.StringValue{Val: string(runes[idx])}, nil
	case *runtime.MapValue:
		if !runtime.Hashable(key) {
			return nil, runtimeErrorf(ErrTypeMismatch, expr.Key.Position(), "map key must be a string or an integer number, got %s", key.Kind())
		}
		val, found := collection.Get(key)
		if !found {
			return nil, runtimeErrorf(ErrIndexOutOfRange, expr.Key.Position(), "map has no key %s", runtime.Inspect(key))
		}
		return val, nil
	default:
		return nil, runtimeErrorf(ErrTypeMismatch, expr.Target.Position(), "cannot index %s", target.Kind())
	}
}

func (i *Interpreter) evaluateSlice(expr *ast.Slice, env *runtime.Environment) (runtime.Value, error) {
	target, err := i.evaluateExpression(expr.Target, env)
	if err != nil {
		return nil, err
	}
	start, err := i.evaluateExpression(expr.Start, env)
	if err != nil {
		return nil, err
	}
	end, err := i.evaluateExpression(expr.End, env)
	if err != nil {
		return nil, err
	}
	lo, okLo := intIndex(start)
	hi, okHi := intIndex(end)
	if !okLo || !okHi {
		return nil, runtimeErrorf(ErrTypeMismatch, expr.Pos, "slice bounds must be integer numbers, got %s and %s", start.Kind(), end.Kind())
	}
	return sliceSequence(target, lo, hi, expr.Pos)
}

// sliceSequence implements half-open slicing with clamping bounds for
// both the slice syntax and the slice builtin. Strings slice by rune.
func sliceSequence(seq runtime.Value, start, end int64, pos token.Position) (runtime.Value, error) {
	switch s := seq.(type) {
	case *runtime.ListValue:
		lo, hi := clampBounds(start, end, int64(len(s.Elements)))
		elements := make([]runtime.Value, hi-lo)
		copy(elements, s.Elements[lo:hi])
		return runtime.NewList(elements), nil
	case runtime.StringValue:
		runes := []rune(s.Val)
		lo, hi := clampBounds(start, end, int64(len(runes)))
		return runtime.StringValue{Val: string(runes[lo:hi])}, nil
	default:
		return nil, runtimeErrorf(ErrTypeMismatch, pos, "cannot slice %s", seq.Kind())
	}
}

func clampBounds(start, end, length int64) (int64, int64) {
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	if end > length {
		end = length
	}
	if end < start {
		end = start
	}
	return start, end
}
