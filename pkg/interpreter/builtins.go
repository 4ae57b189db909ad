package interpreter

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"abrvalg/interpreter-go/pkg/runtime"
	"abrvalg/interpreter-go/pkg/token"
)

// registerBuiltins installs the native functions every program can
// reach. Builtins report errors without a position; the call site
// stamps one on before propagating.
func registerBuiltins(env *runtime.Environment) {
	for _, b := range []runtime.BuiltinValue{
		{Name: "print", Arity: 1, Impl: builtinPrint},
		{Name: "len", Arity: 1, Impl: builtinLen},
		{Name: "slice", Arity: 3, Impl: builtinSlice},
		{Name: "str", Arity: 1, Impl: builtinStr},
		{Name: "int", Arity: 1, Impl: builtinInt},
	} {
		env.Define(b.Name, b)
	}
}

func builtinPrint(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if _, err := fmt.Fprintln(ctx.Out, runtime.Display(args[0])); err != nil {
		return nil, builtinErrorf(ErrTypeMismatch, "print failed: %v", err)
	}
	return runtime.NoneValue{}, nil
}

func builtinLen(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.StringValue:
		return runtime.IntNumber(int64(utf8.RuneCountInString(v.Val))), nil
	case *runtime.ListValue:
		return runtime.IntNumber(int64(len(v.Elements))), nil
	case *runtime.MapValue:
		return runtime.IntNumber(int64(v.Len())), nil
	case runtime.RangeValue:
		return runtime.IntNumber(v.Count()), nil
	default:
		return nil, builtinErrorf(ErrTypeMismatch, "len expects a string, list, map or range, got %s", v.Kind())
	}
}

func builtinSlice(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	start, okStart := intIndex(args[1])
	end, okEnd := intIndex(args[2])
	if !okStart || !okEnd {
		return nil, builtinErrorf(ErrTypeMismatch, "slice bounds must be integer numbers, got %s and %s", args[1].Kind(), args[2].Kind())
	}
	return sliceSequence(args[0], start, end, token.Position{})
}

func builtinStr(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.StringValue{Val: runtime.Display(args[0])}, nil
}

func builtinInt(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.NumberValue:
		if v.IsInt {
			return v, nil
		}
		return runtime.IntNumber(int64(v.Float)), nil
	case runtime.StringValue:
		n, err := strconv.ParseInt(v.Val, 10, 64)
		if err != nil {
			return nil, builtinErrorf(ErrTypeMismatch, "cannot convert %q to an integer", v.Val)
		}
		return runtime.IntNumber(n), nil
	case runtime.BoolValue:
		if v.Val {
			return runtime.IntNumber(1), nil
		}
		return runtime.IntNumber(0), nil
	default:
		return nil, builtinErrorf(ErrTypeMismatch, "int expects a number, string or bool, got %s", v.Kind())
	}
}
