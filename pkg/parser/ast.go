package parser

type Operator string

const (
	OperatorAddition       Operator = "+"
	OperatorSubtraction    Operator = "-"
	OperatorMultiplication Operator = "*"
	OperatorDivision       Operator = "/"
	OperatorEqual          Operator = "=="
	OperatorNotEqual       Operator = "!="
	OperatorLess           Operator = "<"
	OperatorLessEqual      Operator = "<="
	OperatorGreater        Operator = ">"
	OperatorGreaterEqual   Operator = ">="
	OperatorLogicalAnd     Operator = "and"
	OperatorLogicalOr      Operator = "or"
	OperatorNot            Operator = "!"
)

type Node interface {
	WrapError(err error) error
}

type Program struct {
	Statements []Statement
}

type Statement interface {
	Node
	statement()
}

type VarStatement struct {
	Name string
	Expr Expr

	Position
}

func (*VarStatement) statement() {}

type FunctionStatement struct {
	Name       string
	Parameters []string
	Body       []Statement

	Position
}

func (*FunctionStatement) statement() {}

type PrintStatement struct {
	Expr Expr

	Position
}

func (*PrintStatement) statement() {}

type ExprStatement struct {
	Expr Expr

	Position
}

func (*ExprStatement) statement() {}

type BlockStatement struct {
	Body []Statement

	Position
}

func (*BlockStatement) statement() {}

type IfStatement struct {
	Condition Expr
	Body      []Statement
	Else      Statement

	Position
}

func (*IfStatement) statement() {}

type WhileStatement struct {
	Condition Expr
	Body      []Statement

	Position
}

func (*WhileStatement) statement() {}

type ForStatement struct {
	Init      Statement
	Condition Expr
	Update    Expr
	Body      []Statement

	Position
}

func (*ForStatement) statement() {}

type ReturnStatement struct {
	Expr Expr

	Position
}

func (*ReturnStatement) statement() {}

type BreakStatement struct {
	Position
}

func (*BreakStatement) statement() {}

type ContinueStatement struct {
	Position
}

func (*ContinueStatement) statement() {}

type Expr interface {
	Node
	expr()
}

type NumberLiteral struct {
	Value float64

	Position
}

func (*NumberLiteral) expr() {}

func (l *NumberLiteral) IsInteger() bool {
	return float64(int64(l.Value)) == l.Value
}

type StringLiteral struct {
	Value string

	Position
}

func (*StringLiteral) expr() {}

type BooleanLiteral struct {
	Value bool

	Position
}

func (*BooleanLiteral) expr() {}

type NilLiteral struct {
	Position
}

func (*NilLiteral) expr() {}

type IdentifierExpr struct {
	Name string

	Position
}

func (*IdentifierExpr) expr() {}

type AssignExpr struct {
	Name string
	Expr Expr

	Position
}

func (*AssignExpr) expr() {}

type BinaryExpr struct {
	Left     Expr
	Operator Operator
	Right    Expr

	Position
}

func (*BinaryExpr) expr() {}

type LogicalExpr struct {
	Left     Expr
	Operator Operator
	Right    Expr

	Position
}

func (*LogicalExpr) expr() {}

type UnaryExpr struct {
	Operator Operator
	Expr     Expr

	Position
}

func (*UnaryExpr) expr() {}

type CallExpr struct {
	Callee Expr
	Args   []Expr

	Position
}

func (*CallExpr) expr() {}
