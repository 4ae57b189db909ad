package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Display renders a value the way print and str show it: strings bare,
// everything else as written in source. Container elements always use
// the Inspect form so a list of strings stays readable.
func Display(v Value) string {
	return format(v, false)
}

// Inspect renders a value for the REPL: like Display, but strings are
// quoted.
func Inspect(v Value) string {
	return format(v, true)
}

func format(v Value, quoted bool) string {
	switch val := v.(type) {
	case NumberValue:
		if val.IsInt {
			return strconv.FormatInt(val.Int, 10)
		}
		return fmt.Sprintf("%g", val.Float)
	case StringValue:
		if quoted {
			return quoteString(val.Val)
		}
		return val.Val
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NoneValue:
		return "none"
	case *ListValue:
		parts := make([]string, len(val.Elements))
		for i, el := range val.Elements {
			parts[i] = format(el, true)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *MapValue:
		parts := make([]string, 0, val.Len())
		for _, key := range val.Keys() {
			item, _ := val.Get(key)
			parts = append(parts, format(key, true)+": "+format(item, true))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case RangeValue:
		op := ".."
		if val.Inclusive {
			op = "..."
		}
		return fmt.Sprintf("%d%s%d", val.Start, op, val.End)
	case *FunctionValue:
		return fmt.Sprintf("<func %s>", val.Name)
	case BuiltinValue:
		return fmt.Sprintf("<builtin %s>", val.Name)
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
