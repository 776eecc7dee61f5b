package ast

// Shorthand constructors for building trees in Go code (tests, embedders).
// Nodes built this way carry no position.

func Func(name string, ret Type, params []Param, body ...Stmt) *FunctionDef {
	return &FunctionDef{Name: name, Params: params, Return: ret, Body: body}
}

func Params(nameTypes ...any) []Param {
	params := make([]Param, 0, len(nameTypes)/2)
	for i := 0; i+1 < len(nameTypes); i += 2 {
		params = append(params, Param{Name: nameTypes[i].(string), Type: nameTypes[i+1].(Type)})
	}
	return params
}

func Do(e Expr) *ExprStmt { return &ExprStmt{Expr: e} }
func Decl(t Type, names ...string) *DeclStmt { return &DeclStmt{Type: t, Names: names} }
func Init(t Type, name string, v Expr) *InitStmt {
	return &InitStmt{Type: t, Name: name, Value: v}
}
func Ret(v Expr) *ReturnStmt { return &ReturnStmt{Value: v} }
func While(cond Expr, body Stmt) *WhileStmt { return &WhileStmt{Cond: cond, Body: body} }
func Block(stmts ...Stmt) *BlockStmt { return &BlockStmt{Stmts: stmts} }
func If(cond Expr, then, els Stmt) *IfStmt { return &IfStmt{Cond: cond, Then: then, Else: els} }
func True() *BoolLit { return &BoolLit{Value: true} }
func False() *BoolLit { return &BoolLit{Value: false} }
func I(v int32) *IntLit { return &IntLit{Value: v} }
func D(v float64) *DoubleLit { return &DoubleLit{Value: v} }
func Id(name string) *Ident { return &Ident{Name: name} }
func CallOf(fn string, args ...Expr) *Call { return &Call{Func: fn, Args: args} }
func Bin(op BinaryOp, l, r Expr) *Binary { return &Binary{Op: op, Left: l, Right: r} }
func Set(name string, v Expr) *Assign { return &Assign{Target: Id(name), Value: v} }
func Step(op IncDecOp, name string) *IncDec { return &IncDec{Op: op, Target: Id(name)} }
func NewProgram(fns ...*FunctionDef) *Program { return &Program{Functions: fns} }
