package ast

// NodeKind identifies a decoded node variant. The set is closed: the wire
// format carries the kind as a string under the "kind" key.
type NodeKind string

const (
	NodeInt      NodeKind = "Int"
	NodeStr      NodeKind = "Str"
	NodeBool     NodeKind = "Bool"
	NodePrint    NodeKind = "Print"
	NodeLet      NodeKind = "Let"
	NodeVar      NodeKind = "Var"
	NodeIf       NodeKind = "If"
	NodeFunction NodeKind = "Function"
	NodeCall     NodeKind = "Call"
	NodeBinary   NodeKind = "Binary"
	NodeTuple    NodeKind = "Tuple"
	NodeFirst    NodeKind = "First"
	NodeSecond   NodeKind = "Second"
)

// BinaryOp enumerates the binary operator tokens of the wire format.
type BinaryOp string

const (
	OpAdd BinaryOp = "Add"
	OpSub BinaryOp = "Sub"
	OpMul BinaryOp = "Mul"
	OpDiv BinaryOp = "Div"
	OpRem BinaryOp = "Rem"
	OpEq  BinaryOp = "Eq"
	OpNeq BinaryOp = "Neq"
	OpLt  BinaryOp = "Lt"
	OpGt  BinaryOp = "Gt"
	OpLte BinaryOp = "Lte"
	OpGte BinaryOp = "Gte"
	OpAnd BinaryOp = "And"
	OpOr  BinaryOp = "Or"
)

// Location is the optional source span attached to wire nodes.
type Location struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Filename string `json:"filename"`
}

// Node is the shared behaviour for all decoded nodes. Nodes are immutable
// once decoded; the evaluator never writes through them.
type Node interface {
	NodeKind() NodeKind
	Location() *Location
	isNode()
}

type nodeImpl struct {
	Kind NodeKind  `json:"kind"`
	Loc  *Location `json:"location,omitempty"`
}

func newNodeImpl(kind NodeKind) nodeImpl {
	return nodeImpl{Kind: kind}
}

func (n nodeImpl) NodeKind() NodeKind  { return n.Kind }
func (n nodeImpl) Location() *Location { return n.Loc }
func (nodeImpl) isNode()               {}

// Program is the decoded top-level document: a name plus the root expression.
type Program struct {
	Name       string
	Expression Node
}

// Parameter is a declared function parameter (or the bound name of a Let).
type Parameter struct {
	Text string    `json:"text"`
	Loc  *Location `json:"location,omitempty"`
}

// Literals

type IntLiteral struct {
	nodeImpl

	Value int64 `json:"value"`
}

func NewIntLiteral(value int64) *IntLiteral {
	return &IntLiteral{nodeImpl: newNodeImpl(NodeInt), Value: value}
}

type StrLiteral struct {
	nodeImpl

	Value string `json:"value"`
}

func NewStrLiteral(value string) *StrLiteral {
	return &StrLiteral{nodeImpl: newNodeImpl(NodeStr), Value: value}
}

type BoolLiteral struct {
	nodeImpl

	Value bool `json:"value"`
}

func NewBoolLiteral(value bool) *BoolLiteral {
	return &BoolLiteral{nodeImpl: newNodeImpl(NodeBool), Value: value}
}

// PrintExpression evaluates its operand, writes the textual form to the
// interpreter's output, and yields the operand's value.
type PrintExpression struct {
	nodeImpl

	Value Node `json:"value"`
}

func NewPrintExpression(value Node) *PrintExpression {
	return &PrintExpression{nodeImpl: newNodeImpl(NodePrint), Value: value}
}

// LetExpression binds Value to Name and continues with Next in the
// extended scope.
type LetExpression struct {
	nodeImpl

	Name  Parameter `json:"name"`
	Value Node      `json:"value"`
	Next  Node      `json:"next"`
}

func NewLetExpression(name Parameter, value, next Node) *LetExpression {
	return &LetExpression{nodeImpl: newNodeImpl(NodeLet), Name: name, Value: value, Next: next}
}

// VarExpression references a binding by name.
type VarExpression struct {
	nodeImpl

	Text string `json:"text"`
}

func NewVarExpression(text string) *VarExpression {
	return &VarExpression{nodeImpl: newNodeImpl(NodeVar), Text: text}
}

// IfExpression evaluates exactly one of its branches.
type IfExpression struct {
	nodeImpl

	Condition Node `json:"condition"`
	Then      Node `json:"then"`
	Otherwise Node `json:"otherwise"`
}

func NewIfExpression(condition, then, otherwise Node) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Then: then, Otherwise: otherwise}
}

// FunctionLiteral is an anonymous function expression. Evaluating it
// produces a closure; the body runs only on call.
type FunctionLiteral struct {
	nodeImpl

	Parameters []Parameter `json:"parameters"`
	Value      Node        `json:"value"`
}

func NewFunctionLiteral(parameters []Parameter, value Node) *FunctionLiteral {
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunction), Parameters: parameters, Value: value}
}

// CallExpression applies a callee to positional arguments.
type CallExpression struct {
	nodeImpl

	Callee    Node   `json:"callee"`
	Arguments []Node `json:"arguments"`
}

func NewCallExpression(callee Node, arguments []Node) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: arguments}
}

// BinaryExpression applies Op to the evaluated operands.
type BinaryExpression struct {
	nodeImpl

	Op  BinaryOp `json:"op"`
	LHS Node     `json:"lhs"`
	RHS Node     `json:"rhs"`
}

func NewBinaryExpression(op BinaryOp, lhs, rhs Node) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinary), Op: op, LHS: lhs, RHS: rhs}
}

// TupleLiteral constructs a two-element tuple.
type TupleLiteral struct {
	nodeImpl

	First  Node `json:"first"`
	Second Node `json:"second"`
}

func NewTupleLiteral(first, second Node) *TupleLiteral {
	return &TupleLiteral{nodeImpl: newNodeImpl(NodeTuple), First: first, Second: second}
}

// FirstExpression projects the first component of a tuple.
type FirstExpression struct {
	nodeImpl

	Value Node `json:"value"`
}

func NewFirstExpression(value Node) *FirstExpression {
	return &FirstExpression{nodeImpl: newNodeImpl(NodeFirst), Value: value}
}

// SecondExpression projects the second component of a tuple.
type SecondExpression struct {
	nodeImpl

	Value Node `json:"value"`
}

func NewSecondExpression(value Node) *SecondExpression {
	return &SecondExpression{nodeImpl: newNodeImpl(NodeSecond), Value: value}
}
