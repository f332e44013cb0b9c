package algoritmo

// Program is the root node produced by the parser. It is never mutated
// after parsing.
type Program struct {
	Name string
	Body []Statement
}

type Node interface {
	GetLocation() *Location
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

type Assignment struct {
	Loc   *Location
	Name  string
	Value Expression
}

type ArrayDecl struct {
	Loc  *Location
	Name string
	Size Expression
}

type ArrayAssign struct {
	Loc   *Location
	Name  string
	Index Expression
	Value Expression
}

type PrintStmt struct {
	Loc   *Location
	Exprs []Expression
}

type ReadStmt struct {
	Loc     *Location
	Targets []*Identifier
}

type IfStmt struct {
	Loc  *Location
	Cond Expression
	Then []Statement
	Else []Statement // nil when there is no Sino branch
}

// SwitchStmt keeps Cases and Blocks index-aligned.
type SwitchStmt struct {
	Loc     *Location
	Subject Expression
	Cases   []Expression
	Blocks  [][]Statement
	Default []Statement
}

type WhileStmt struct {
	Loc  *Location
	Cond Expression
	Body []Statement
}

// RepeatStmt is the post-test loop: Body runs until Cond becomes true.
type RepeatStmt struct {
	Loc  *Location
	Body []Statement
	Cond Expression
}

type ForStmt struct {
	Loc  *Location
	Var  string
	From float64
	To   float64
	Step float64
	Body []Statement
}

type StringLiteral struct {
	Loc   *Location
	Value string
}

type NumberLiteral struct {
	Loc   *Location
	Value float64
}

type BooleanLiteral struct {
	Loc   *Location
	Value bool
}

type Identifier struct {
	Loc  *Location
	Name string
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryGreater        BinaryOp = ">"
	BinaryLess           BinaryOp = "<"
	BinaryGreaterEqual   BinaryOp = ">="
	BinaryLessEqual      BinaryOp = "<="
	BinaryEqual          BinaryOp = "="
	BinaryNotEqual       BinaryOp = "<>"
	BinaryAnd            BinaryOp = "&"
	BinaryOr             BinaryOp = "|"
)

type BinaryExpr struct {
	Loc       *Location
	Operation BinaryOp
	Op1       Expression
	Op2       Expression
}

type UnaryOp string

const (
	UnaryNegative UnaryOp = "-"
)

type UnaryExpr struct {
	Loc       *Location
	Operation UnaryOp
	Operand   Expression
}

type ArrayAccess struct {
	Loc   *Location
	Name  string
	Index Expression
}

type FuncCall struct {
	Loc  *Location
	Name string
	Args []Expression
}

func (n *Assignment) GetLocation() *Location     { return n.Loc }
func (n *ArrayDecl) GetLocation() *Location      { return n.Loc }
func (n *ArrayAssign) GetLocation() *Location    { return n.Loc }
func (n *PrintStmt) GetLocation() *Location      { return n.Loc }
func (n *ReadStmt) GetLocation() *Location       { return n.Loc }
func (n *IfStmt) GetLocation() *Location         { return n.Loc }
func (n *SwitchStmt) GetLocation() *Location     { return n.Loc }
func (n *WhileStmt) GetLocation() *Location      { return n.Loc }
func (n *RepeatStmt) GetLocation() *Location     { return n.Loc }
func (n *ForStmt) GetLocation() *Location        { return n.Loc }
func (n *StringLiteral) GetLocation() *Location  { return n.Loc }
func (n *NumberLiteral) GetLocation() *Location  { return n.Loc }
func (n *BooleanLiteral) GetLocation() *Location { return n.Loc }
func (n *Identifier) GetLocation() *Location     { return n.Loc }
func (n *BinaryExpr) GetLocation() *Location     { return n.Loc }
func (n *UnaryExpr) GetLocation() *Location      { return n.Loc }
func (n *ArrayAccess) GetLocation() *Location    { return n.Loc }
func (n *FuncCall) GetLocation() *Location       { return n.Loc }

func (*Assignment) stmtNode()  {}
func (*ArrayDecl) stmtNode()   {}
func (*ArrayAssign) stmtNode() {}
func (*PrintStmt) stmtNode()   {}
func (*ReadStmt) stmtNode()    {}
func (*IfStmt) stmtNode()      {}
func (*SwitchStmt) stmtNode()  {}
func (*WhileStmt) stmtNode()   {}
func (*RepeatStmt) stmtNode()  {}
func (*ForStmt) stmtNode()     {}

func (*StringLiteral) exprNode()  {}
func (*NumberLiteral) exprNode()  {}
func (*BooleanLiteral) exprNode() {}
func (*Identifier) exprNode()     {}
func (*BinaryExpr) exprNode()     {}
func (*UnaryExpr) exprNode()      {}
func (*ArrayAccess) exprNode()    {}
func (*FuncCall) exprNode()       {}
