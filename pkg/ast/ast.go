package ast

import "abrvalg/interpreter-go/pkg/token"

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeBlock               NodeType = "Block"
	NodeFunctionDef         NodeType = "FunctionDef"
	NodeIf                  NodeType = "If"
	NodeWhile               NodeType = "While"
	NodeFor                 NodeType = "For"
	NodeMatch               NodeType = "Match"
	NodeMatchClause         NodeType = "MatchClause"
	NodeAssign              NodeType = "Assign"
	NodeSetIndex            NodeType = "SetIndex"
	NodeReturn              NodeType = "Return"
	NodeBreak               NodeType = "Break"
	NodeContinue            NodeType = "Continue"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeBinaryOp            NodeType = "BinaryOp"
	NodeUnaryOp             NodeType = "UnaryOp"
	NodeCall                NodeType = "Call"
	NodeIndex               NodeType = "Index"
	NodeSlice               NodeType = "Slice"
	NodeListLiteral         NodeType = "ListLiteral"
	NodeMapLiteral          NodeType = "MapLiteral"
	NodeRangeLiteral        NodeType = "RangeLiteral"
	NodeIdentifier          NodeType = "Identifier"
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeNoneLiteral         NodeType = "NoneLiteral"
)

type Node interface {
	NodeType() NodeType
	Position() token.Position
	isNode()
}

type nodeImpl struct {
	Type NodeType
	Pos  token.Position
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType       { return n.Type }
func (n nodeImpl) Position() token.Position { return n.Pos }
func (nodeImpl) isNode()                    {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Program and blocks

type Program struct {
	nodeImpl

	Statements []Statement
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

type Block struct {
	nodeImpl

	Statements []Statement
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

// Statements

type FunctionDef struct {
	nodeImpl
	statementMarker

	Name   string
	Params []string
	Body   *Block
}

func NewFunctionDef(name string, params []string, body *Block) *FunctionDef {
	return &FunctionDef{nodeImpl: newNodeImpl(NodeFunctionDef), Name: name, Params: params, Body: body}
}

// If holds one condition and branch; an elif chain nests as an Else
// block containing a single If.
type If struct {
	nodeImpl
	statementMarker

	Cond Expression
	Then *Block
	Else *Block
}

func NewIf(cond Expression, then, els *Block) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Cond: cond, Then: then, Else: els}
}

type While struct {
	nodeImpl
	statementMarker

	Cond Expression
	Body *Block
}

func NewWhile(cond Expression, body *Block) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Cond: cond, Body: body}
}

type For struct {
	nodeImpl
	statementMarker

	Var  string
	Iter Expression
	Body *Block
}

func NewFor(name string, iter Expression, body *Block) *For {
	return &For{nodeImpl: newNodeImpl(NodeFor), Var: name, Iter: iter, Body: body}
}

type MatchClause struct {
	nodeImpl

	Pattern Expression
	Body    *Block
}

func NewMatchClause(pattern Expression, body *Block) *MatchClause {
	return &MatchClause{nodeImpl: newNodeImpl(NodeMatchClause), Pattern: pattern, Body: body}
}

type Match struct {
	nodeImpl
	statementMarker

	Subject Expression
	Clauses []*MatchClause
	Else    *Block
}

func NewMatch(subject Expression, clauses []*MatchClause, els *Block) *Match {
	return &Match{nodeImpl: newNodeImpl(NodeMatch), Subject: subject, Clauses: clauses, Else: els}
}

type Assign struct {
	nodeImpl
	statementMarker

	Name  string
	Value Expression
}

func NewAssign(name string, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

type SetIndex struct {
	nodeImpl
	statementMarker

	Target Expression
	Index  Expression
	Value  Expression
}

func NewSetIndex(target, index, value Expression) *SetIndex {
	return &SetIndex{nodeImpl: newNodeImpl(NodeSetIndex), Target: target, Index: index, Value: value}
}

// Return carries an optional value expression; nil means return none.
type Return struct {
	nodeImpl
	statementMarker

	Value Expression
}

func NewReturn(value Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Value: value}
}

type Break struct {
	nodeImpl
	statementMarker
}

func NewBreak() *Break {
	return &Break{nodeImpl: newNodeImpl(NodeBreak)}
}

type Continue struct {
	nodeImpl
	statementMarker
}

func NewContinue() *Continue {
	return &Continue{nodeImpl: newNodeImpl(NodeContinue)}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expr Expression
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expr: expr}
}

// Expressions

type BinaryOp struct {
	nodeImpl
	expressionMarker

	Op    string
	Left  Expression
	Right Expression
}

func NewBinaryOp(op string, left, right Expression) *BinaryOp {
	return &BinaryOp{nodeImpl: newNodeImpl(NodeBinaryOp), Op: op, Left: left, Right: right}
}

type UnaryOp struct {
	nodeImpl
	expressionMarker

	Op      string
	Operand Expression
}

func NewUnaryOp(op string, operand Expression) *UnaryOp {
	return &UnaryOp{nodeImpl: newNodeImpl(NodeUnaryOp), Op: op, Operand: operand}
}

type Call struct {
	nodeImpl
	expressionMarker

	Callee Expression
	Args   []Expression
}

func NewCall(callee Expression, args []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Args: args}
}

type Index struct {
	nodeImpl
	expressionMarker

	Target Expression
	Key    Expression
}

func NewIndex(target, key Expression) *Index {
	return &Index{nodeImpl: newNodeImpl(NodeIndex), Target: target, Key: key}
}

type Slice struct {
	nodeImpl
	expressionMarker

	Target Expression
	Start  Expression
	End    Expression
}

func NewSlice(target, start, end Expression) *Slice {
	return &Slice{nodeImpl: newNodeImpl(NodeSlice), Target: target, Start: start, End: end}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

type MapEntry struct {
	Key   Expression
	Value Expression
}

type MapLiteral struct {
	nodeImpl
	expressionMarker

	Entries []MapEntry
}

func NewMapLiteral(entries []MapEntry) *MapLiteral {
	return &MapLiteral{nodeImpl: newNodeImpl(NodeMapLiteral), Entries: entries}
}

type RangeLiteral struct {
	nodeImpl
	expressionMarker

	Start     Expression
	End       Expression
	Inclusive bool
}

func NewRangeLiteral(start, end Expression, inclusive bool) *RangeLiteral {
	return &RangeLiteral{nodeImpl: newNodeImpl(NodeRangeLiteral), Start: start, End: end, Inclusive: inclusive}
}

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	IsInt bool
	Int   int64
	Float float64
}

func NewIntLiteral(value int64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), IsInt: true, Int: value}
}

func NewFloatLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Float: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NoneLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNoneLiteral() *NoneLiteral {
	return &NoneLiteral{nodeImpl: newNodeImpl(NodeNoneLiteral)}
}
