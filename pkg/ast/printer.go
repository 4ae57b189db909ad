package ast

import (
	"fmt"
	"strings"
)

// Dump renders a node as an indented tree, one node per line. It backs
// the CLI's AST dump and is handy in tests.
func Dump(node Node) string {
	var b strings.Builder
	writeNode(&b, node, 0)
	return b.String()
}

func writeNode(b *strings.Builder, node Node, depth int) {
	if node == nil {
		writeLine(b, depth, "<nil>")
		return
	}
	switch n := node.(type) {
	case *Program:
		writeLine(b, depth, "Program")
		for _, s := range n.Statements {
			writeNode(b, s, depth+1)
		}
	case *Block:
		writeLine(b, depth, "Block")
		for _, s := range n.Statements {
			writeNode(b, s, depth+1)
		}
	case *FunctionDef:
		writeLine(b, depth, "FunctionDef %s(%s)", n.Name, strings.Join(n.Params, ", "))
		writeNode(b, n.Body, depth+1)
	case *If:
		writeLine(b, depth, "If")
		writeNode(b, n.Cond, depth+1)
		writeNode(b, n.Then, depth+1)
		if n.Else != nil {
			writeLine(b, depth, "Else")
			writeNode(b, n.Else, depth+1)
		}
	case *While:
		writeLine(b, depth, "While")
		writeNode(b, n.Cond, depth+1)
		writeNode(b, n.Body, depth+1)
	case *For:
		writeLine(b, depth, "For %s", n.Var)
		writeNode(b, n.Iter, depth+1)
		writeNode(b, n.Body, depth+1)
	case *Match:
		writeLine(b, depth, "Match")
		writeNode(b, n.Subject, depth+1)
		for _, clause := range n.Clauses {
			writeNode(b, clause, depth+1)
		}
		if n.Else != nil {
			writeLine(b, depth, "Else")
			writeNode(b, n.Else, depth+1)
		}
	case *MatchClause:
		writeLine(b, depth, "When")
		writeNode(b, n.Pattern, depth+1)
		writeNode(b, n.Body, depth+1)
	case *Assign:
		writeLine(b, depth, "Assign %s", n.Name)
		writeNode(b, n.Value, depth+1)
	case *SetIndex:
		writeLine(b, depth, "SetIndex")
		writeNode(b, n.Target, depth+1)
		writeNode(b, n.Index, depth+1)
		writeNode(b, n.Value, depth+1)
	case *Return:
		writeLine(b, depth, "Return")
		if n.Value != nil {
			writeNode(b, n.Value, depth+1)
		}
	case *Break:
		writeLine(b, depth, "Break")
	case *Continue:
		writeLine(b, depth, "Continue")
	case *ExpressionStatement:
		writeLine(b, depth, "ExpressionStatement")
		writeNode(b, n.Expr, depth+1)
	case *BinaryOp:
		writeLine(b, depth, "BinaryOp %s", n.Op)
		writeNode(b, n.Left, depth+1)
		writeNode(b, n.Right, depth+1)
	case *UnaryOp:
		writeLine(b, depth, "UnaryOp %s", n.Op)
		writeNode(b, n.Operand, depth+1)
	case *Call:
		writeLine(b, depth, "Call")
		writeNode(b, n.Callee, depth+1)
		for _, arg := range n.Args {
			writeNode(b, arg, depth+1)
		}
	case *Index:
		writeLine(b, depth, "Index")
		writeNode(b, n.Target, depth+1)
		writeNode(b, n.Key, depth+1)
	case *Slice:
		writeLine(b, depth, "Slice")
		writeNode(b, n.Target, depth+1)
		writeNode(b, n.Start, depth+1)
		writeNode(b, n.End, depth+1)
	case *ListLiteral:
		writeLine(b, depth, "ListLiteral")
		for _, el := range n.Elements {
			writeNode(b, el, depth+1)
		}
	case *MapLiteral:
		writeLine(b, depth, "MapLiteral")
		for _, entry := range n.Entries {
			writeNode(b, entry.Key, depth+1)
			writeNode(b, entry.Value, depth+2)
		}
	case *RangeLiteral:
		if n.Inclusive {
			writeLine(b, depth, "RangeLiteral ...")
		} else {
			writeLine(b, depth, "RangeLiteral ..")
		}
		writeNode(b, n.Start, depth+1)
		writeNode(b, n.End, depth+1)
	case *Identifier:
		writeLine(b, depth, "Identifier %s", n.Name)
	case *NumberLiteral:
		if n.IsInt {
			writeLine(b, depth, "NumberLiteral %d", n.Int)
		} else {
			writeLine(b, depth, "NumberLiteral %g", n.Float)
		}
	case *StringLiteral:
		writeLine(b, depth, "StringLiteral %q", n.Value)
	case *BooleanLiteral:
		writeLine(b, depth, "BooleanLiteral %t", n.Value)
	case *NoneLiteral:
		writeLine(b, depth, "NoneLiteral")
	default:
		writeLine(b, depth, "Unknown %s", node.NodeType())
	}
}

func writeLine(b *strings.Builder, depth int, format string, args ...any) {
	b.WriteString(strings.Repeat("    ", depth))
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}
