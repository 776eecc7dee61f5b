package ast

// Program is the ordered list of function definitions handed over by the parser.
type Program struct {
	Functions []*FunctionDef
}

// Function returns the definition named name, or nil
func (p *Program) Function(name string) *FunctionDef {
	for _, fn := range p.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

type Param struct {
	Name string
	Type Type
}

type FunctionDef struct {
	Pos
	Name   string
	Params []Param
	Return Type
	Body   []Stmt
}

// ParamTypes returns the declared parameter types in order
func (f *FunctionDef) ParamTypes() []Type {
	types := make([]Type, len(f.Params))
	for i, p := range f.Params {
		types[i] = p.Type
	}
	return types
}

type Node interface {
	Position() Pos
}

// Stmt is implemented only by the statement nodes of this package.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented only by the expression nodes of this package.
type Expr interface {
	Node
	exprNode()
}

// ExprStmt evaluates an expression and discards its value.
type ExprStmt struct {
	Pos
	Expr Expr
}

// DeclStmt declares one or more variables without initializing them.
type DeclStmt struct {
	Pos
	Type  Type
	Names []string
}

// InitStmt declares a single variable with an initial value.
type InitStmt struct {
	Pos
	Type  Type
	Name  string
	Value Expr
}

// ReturnStmt leaves the enclosing function. Value is nil for a bare return.
type ReturnStmt struct {
	Pos
	Value Expr
}

type WhileStmt struct {
	Pos
	Cond Expr
	Body Stmt
}

type BlockStmt struct {
	Pos
	Stmts []Stmt
}

// IfStmt is an if/else. Else is nil when the parser produced no else branch.
type IfStmt struct {
	Pos
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*ExprStmt) stmtNode()   {}
func (*DeclStmt) stmtNode()   {}
func (*InitStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode() {}
func (*WhileStmt) stmtNode()  {}
func (*BlockStmt) stmtNode()  {}
func (*IfStmt) stmtNode()     {}

type BoolLit struct {
	Pos
	Value bool
}

// IntLit holds a 32-bit literal, the width of int on the target machine.
type IntLit struct {
	Pos
	Value int32
}

type DoubleLit struct {
	Pos
	Value float64
}

type Ident struct {
	Pos
	Name string
}

type Call struct {
	Pos
	Func string
	Args []Expr
}

type IncDecOp int

const (
	PostIncr IncDecOp = iota
	PostDecr
	PreIncr
	PreDecr
)

// String returns the operator spelling with the operand shown as x
func (op IncDecOp) String() string {
	switch op {
	case PostIncr:
		return "x++"
	case PostDecr:
		return "x--"
	case PreIncr:
		return "++x"
	case PreDecr:
		return "--x"
	}
	return "?"
}

// IsPrefix reports whether the expression yields the updated value
func (op IncDecOp) IsPrefix() bool {
	return op == PreIncr || op == PreDecr
}

// Delta is the amount added to the variable
func (op IncDecOp) Delta() int {
	if op == PostIncr || op == PreIncr {
		return 1
	}
	return -1
}

// IncDec is one of x++, x--, ++x, --x. The parser only produces an Ident target.
type IncDec struct {
	Pos
	Op     IncDecOp
	Target Expr
}

type BinaryOp string

const (
	Mul BinaryOp = "*"
	Div BinaryOp = "/"
	Add BinaryOp = "+"
	Sub BinaryOp = "-"
	Lt  BinaryOp = "<"
	Gt  BinaryOp = ">"
	Le  BinaryOp = "<="
	Ge  BinaryOp = ">="
	Eq  BinaryOp = "=="
	Ne  BinaryOp = "!="
	And BinaryOp = "&&"
	Or  BinaryOp = "||"
)

// IsArithmetic reports whether op is one of * / + -
func (op BinaryOp) IsArithmetic() bool {
	switch op {
	case Mul, Div, Add, Sub:
		return true
	}
	return false
}

// IsComparison reports whether op is relational or equality
func (op BinaryOp) IsComparison() bool {
	switch op {
	case Lt, Gt, Le, Ge, Eq, Ne:
		return true
	}
	return false
}

// IsLogical reports whether op is && or ||
func (op BinaryOp) IsLogical() bool {
	return op == And || op == Or
}

// IsValid reports whether op is a known binary operator
func (op BinaryOp) IsValid() bool {
	return op.IsArithmetic() || op.IsComparison() || op.IsLogical()
}

type Binary struct {
	Pos
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Assign stores Value into Target and yields the stored value.
type Assign struct {
	Pos
	Target Expr
	Value  Expr
}

func (*BoolLit) exprNode()   {}
func (*IntLit) exprNode()    {}
func (*DoubleLit) exprNode() {}
func (*Ident) exprNode()     {}
func (*Call) exprNode()      {}
func (*IncDec) exprNode()    {}
func (*Binary) exprNode()    {}
func (*Assign) exprNode()    {}
