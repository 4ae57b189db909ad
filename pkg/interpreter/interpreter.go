package interpreter

import (
	"io"
	"os"

	"abrvalg/interpreter-go/pkg/ast"
	"abrvalg/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds program recursion before evaluation fails
// with a stack overflow error.
const DefaultMaxCallDepth = 1000

// control tags the outcome of a statement so return, break and
// continue propagate explicitly instead of through the error channel,
// which stays reserved for RuntimeErrors.
type control int

const (
	ctrlNone control = iota
	ctrlReturn
	ctrlBreak
	ctrlContinue
)

// Interpreter walks a Program against a chain of environments. It owns
// the global environment, so evaluating several programs in sequence
// (the REPL case) accumulates bindings.
type Interpreter struct {
	globals  *runtime.Environment
	out      io.Writer
	maxDepth int
	depth    int
}

func New() *Interpreter {
	i := &Interpreter{
		globals:  runtime.NewEnvironment(nil),
		out:      os.Stdout,
		maxDepth: DefaultMaxCallDepth,
	}
	registerBuiltins(i.globals)
	return i
}

// GlobalEnvironment exposes the top-level environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.globals
}

// SetOutput redirects print output (the CLI and tests capture it).
func (i *Interpreter) SetOutput(w io.Writer) {
	i.out = w
}

// SetMaxCallDepth overrides the recursion bound; n <= 0 keeps the
// default.
func (i *Interpreter) SetMaxCallDepth(n int) {
	if n > 0 {
		i.maxDepth = n
	}
}

// EvaluateProgram executes the program's statements in order against
// the global environment and returns the last statement's value (none
// when the program ends with a non-expression statement). A
// RuntimeError aborts the program but leaves the environment usable.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	var result runtime.Value = runtime.NoneValue{}
	for _, stmt := range program.Statements {
		val, _, err := i.evaluateStatement(stmt, i.globals)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, control, error) {
	switch stmt := node.(type) {
	case *ast.ExpressionStatement:
		val, err := i.evaluateExpression(stmt.Expr, env)
		if err != nil {
			return nil, ctrlNone, err
		}
		return val, ctrlNone, nil
	case *ast.Assign:
		val, err := i.evaluateExpression(stmt.Value, env)
		if err != nil {
			return nil, ctrlNone, err
		}
		env.Assign(stmt.Name, val)
		return runtime.NoneValue{}, ctrlNone, nil
	case *ast.SetIndex:
		return i.evaluateSetIndex(stmt, env)
	case *ast.FunctionDef:
		fn := &runtime.FunctionValue{
			Name:    stmt.Name,
			Params:  stmt.Params,
			Body:    stmt.Body,
			Closure: env,
		}
		env.Define(stmt.Name, fn)
		return runtime.NoneValue{}, ctrlNone, nil
	case *ast.If:
		return i.evaluateIf(stmt, env)
	case *ast.Match:
		return i.evaluateMatch(stmt, env)
	case *ast.While:
		return i.evaluateWhile(stmt, env)
	case *ast.For:
		return i.evaluateFor(stmt, env)
	case *ast.Return:
		var val runtime.Value = runtime.NoneValue{}
		if stmt.Value != nil {
			v, err := i.evaluateExpression(stmt.Value, env)
			if err != nil {
				return nil, ctrlNone, err
			}
			val = v
		}
		return val, ctrlReturn, nil
	case *ast.Break:
		return runtime.NoneValue{}, ctrlBreak, nil
	case *ast.Continue:
		return runtime.NoneValue{}, ctrlContinue, nil
	default:
		return nil, ctrlNone, runtimeErrorf(ErrTypeMismatch, node.Position(), "cannot evaluate %s statement", node.NodeType())
	}
}

// evaluateBlock runs statements in order, tracking the running block
// result. Any control transfer short-circuits the rest of the block.
func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) (runtime.Value, control, error) {
	var result runtime.Value = runtime.NoneValue{}
	for _, stmt := range block.Statements {
		val, ctrl, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return nil, ctrlNone, err
		}
		if ctrl != ctrlNone {
			return val, ctrl, nil
		}
		result = val
	}
	return result, ctrlNone, nil
}

// evaluateIf runs at most one branch and propagates that branch's
// block value, which is what lets a function body end in if/else and
// still produce an implicit return value.
func (i *Interpreter) evaluateIf(stmt *ast.If, env *runtime.Environment) (runtime.Value, control, error) {
	cond, err := i.evaluateExpression(stmt.Cond, env)
	if err != nil {
		return nil, ctrlNone, err
	}
	if isTruthy(cond) {
		return i.evaluateBlock(stmt.Then, env)
	}
	if stmt.Else != nil {
		return i.evaluateBlock(stmt.Else, env)
	}
	return runtime.NoneValue{}, ctrlNone, nil
}

// evaluateMatch runs the first when clause whose pattern equals the
// subject, else the else block.
func (i *Interpreter) evaluateMatch(stmt *ast.Match, env *runtime.Environment) (runtime.Value, control, error) {
	subject, err := i.evaluateExpression(stmt.Subject, env)
	if err != nil {
		return nil, ctrlNone, err
	}
	for _, clause := range stmt.Clauses {
		pattern, err := i.evaluateExpression(clause.Pattern, env)
		if err != nil {
			return nil, ctrlNone, err
		}
		if valuesEqual(pattern, subject) {
			return i.evaluateBlock(clause.Body, env)
		}
	}
	if stmt.Else != nil {
		return i.evaluateBlock(stmt.Else, env)
	}
	return runtime.NoneValue{}, ctrlNone, nil
}

func (i *Interpreter) evaluateWhile(stmt *ast.While, env *runtime.Environment) (runtime.Value, control, error) {
	for {
		cond, err := i.evaluateExpression(stmt.Cond, env)
		if err != nil {
			return nil, ctrlNone, err
		}
		if !isTruthy(cond) {
			return runtime.NoneValue{}, ctrlNone, nil
		}
		val, ctrl, err := i.evaluateBlock(stmt.Body, env)
		if err != nil {
			return nil, ctrlNone, err
		}
		switch ctrl {
		case ctrlBreak:
			return runtime.NoneValue{}, ctrlNone, nil
		case ctrlReturn:
			return val, ctrlReturn, nil
		}
	}
}

func (i *Interpreter) evaluateFor(stmt *ast.For, env *runtime.Environment) (runtime.Value, control, error) {
	iter, err := i.evaluateExpression(stmt.Iter, env)
	if err != nil {
		return nil, ctrlNone, err
	}

	runBody := func(element runtime.Value) (runtime.Value, control, error) {
		env.Define(stmt.Var, element)
		return i.evaluateBlock(stmt.Body, env)
	}

	switch collection := iter.(type) {
	case *runtime.ListValue:
		for _, element := range collection.Elements {
			val, ctrl, err := runBody(element)
			if err != nil {
				return nil, ctrlNone, err
			}
			if ctrl == ctrlBreak {
				return runtime.NoneValue{}, ctrlNone, nil
			}
			if ctrl == ctrlReturn {
				return val, ctrlReturn, nil
			}
		}
	case runtime.RangeValue:
		end := collection.End
		if collection.Inclusive {
			end++
		}
		for n := collection.Start; n < end; n++ {
			val, ctrl, err := runBody(runtime.IntNumber(n))
			if err != nil {
				return nil, ctrlNone, err
			}
			if ctrl == ctrlBreak {
				return runtime.NoneValue{}, ctrlNone, nil
			}
			if ctrl == ctrlReturn {
				return val, ctrlReturn, nil
			}
		}
	case runtime.StringValue:
		for _, r := range collection.Val {
			val, ctrl, err := runBody(runtime.StringValue{Val: string(r)})
			if err != nil {
				return nil, ctrlNone, err
			}
			if ctrl == ctrlBreak {
				return runtime.NoneValue{}, ctrlNone, nil
			}
			if ctrl == ctrlReturn {
				return val, ctrlReturn, nil
			}
		}
	case *runtime.MapValue:
		for _, key := range collection.Keys() {
			val, ctrl, err := runBody(key)
			if err != nil {
				return nil, ctrlNone, err
			}
			if ctrl == ctrlBreak {
				return runtime.NoneValue{}, ctrlNone, nil
			}
			if ctrl == ctrlReturn {
				return val, ctrlReturn, nil
			}
		}
	default:
		return nil, ctrlNone, runtimeErrorf(ErrTypeMismatch, stmt.Iter.Position(), "cannot iterate over %s", iter.Kind())
	}
	return runtime.NoneValue{}, ctrlNone, nil
}

func (i *Interpreter) evaluateSetIndex(stmt *ast.SetIndex, env *runtime.Environment) (runtime.Value, control, error) {
	target, err := i.evaluateExpression(stmt.Target, env)
	if err != nil {
		return nil, ctrlNone, err
	}
	key, err := i.evaluateExpression(stmt.Index, env)
	if err != nil {
		return nil, ctrlNone, err
	}
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return nil, ctrlNone, err
	}
	switch collection := target.(type) {
	case *runtime.ListValue:
		idx, ok := intIndex(key)
		if !ok {
			return nil, ctrlNone, runtimeErrorf(ErrTypeMismatch, stmt.Index.Position(), "list index must be an integer number, got %s", key.Kind())
		}
		if idx < 0 || idx >= int64(len(collection.Elements)) {
			return nil, ctrlNone, runtimeErrorf(ErrIndexOutOfRange, stmt.Index.Position(), "list index %d out of range for length %d", idx, len(collection.Elements))
		}
		collection.Elements[idx] = val
	case *runtime.MapValue:
		if !runtime.Hashable(key) {
			return nil, ctrlNone, runtimeErrorf(ErrTypeMismatch, stmt.Index.Position(), "map key must be a string or an integer number, got %s", key.Kind())
		}
		collection.Set(key, val)
	default:
		return nil, ctrlNone, runtimeErrorf(ErrTypeMismatch, stmt.Target.Position(), "cannot assign into %s by index", target.Kind())
	}
	return runtime.NoneValue{}, ctrlNone, nil
}
