package jvm

import (
	"bytes"
	"fmt"
	"strconv"

	"minic/pkg/ast"
	"minic/pkg/checker"
	"minic/pkg/diag"
	"minic/pkg/scope"

	"github.com/charmbracelet/log"
)

// Generate emits the class header, the trampoline and one method per user function
func (j *jvm) Generate() error {
	if j.class == RuntimeClass {
		return ErrReservedClass
	}

	j.header.Reset()
	j.methods.Reset()

	j.emitHeader()

	for _, fn := range j.prog.Functions {
		if err := j.emitFunction(fn); err != nil {
			return fmt.Errorf("generating %s: %w", fn.Name, err)
		}
	}
	return nil
}

// GetCode returns the generated Jasmin source
func (j *jvm) GetCode() string {
	var b bytes.Buffer
	b.Write(j.header.Bytes())
	b.Write(j.methods.Bytes())
	return b.String()
}

func (j *jvm) emitHeader() {
	j.addHeader(".class public " + j.class)
	j.addHeader(".super java/lang/Object")
	j.addHeader("")
	j.addHeader(".method public <init>()V")
	j.addHeader("\taload_0")
	j.addHeader("\tinvokespecial java/lang/Object/<init>()V")
	j.addHeader("\treturn")
	j.addHeader(".end method")
	j.addHeader("")
	j.addHeader(".method public static main([Ljava/lang/String;)V")
	j.addHeader("\t.limit locals 1")
	j.addHeader("\t.limit stack 1")
	j.addHeader(fmt.Sprintf("\tinvokestatic %s/%s()I", j.class, checker.EntryPoint))
	j.addHeader("\tpop")
	j.addHeader("\treturn")
	j.addHeader(".end method")
}

// emitFunction walks the body first, then writes the header with the limits it found
func (j *jvm) emitFunction(fn *ast.FunctionDef) error {
	j.m = &method{fn: fn, vars: scope.New[local]()}
	defer func() { j.m = nil }()

	j.m.vars.Push()
	for _, p := range fn.Params {
		if err := j.m.vars.Declare(p.Name, local{slot: j.m.locals, typ: p.Type}); err != nil {
			return err
		}
		j.m.locals += size(p.Type)
	}

	if err := j.genStmts(fn.Body); err != nil {
		return err
	}
	if n := len(fn.Body); n == 0 {
		j.emitTail()
	} else if _, ok := fn.Body[n-1].(*ast.ReturnStmt); !ok {
		j.emitTail()
	}

	log.Debug("Generated method", "name", fn.Name, "stack", j.m.maxStack, "locals", j.m.locals)

	j.addMethod("")
	j.addMethod(fmt.Sprintf(".method public static %s%s", fn.Name, methodDescriptor(fn.ParamTypes(), fn.Return)))
	j.addMethod(fmt.Sprintf("\t.limit stack %d", j.m.maxStack))
	j.addMethod(fmt.Sprintf("\t.limit locals %d", j.m.locals))
	for _, line := range j.m.body {
		j.addMethod(line)
	}
	j.addMethod(".end method")
	return nil
}

// emitTail returns the zero value of the function's type when control reaches the end
func (j *jvm) emitTail() {
	switch j.m.fn.Return {
	case ast.Void:
		j.emit(OpReturn)
	case ast.Double:
		j.emitInstr(doubleConst(0))
		j.emit(OpDreturn)
	default:
		j.emitInstr(intConst(0))
		j.emit(OpIreturn)
	}
}

// emit appends an instruction and tracks its effect on the operand stack
func (j *jvm) emit(op Opcode, args ...string) {
	j.emitInstr(Instruction{Op: op, Args: args})
}

func (j *jvm) emitInstr(in Instruction) {
	j.adjustStack(stackEffect[in.Op])
	j.m.body = append(j.m.body, "\t"+in.String())
}

func (j *jvm) adjustStack(delta int) {
	j.m.stack += delta
	if j.m.stack > j.m.maxStack {
		j.m.maxStack = j.m.stack
	}
}

func (j *jvm) newLabel() string {
	l := "L" + strconv.Itoa(j.m.labels)
	j.m.labels++
	return l
}

func (j *jvm) placeLabel(l string) {
	j.m.body = append(j.m.body, l+":")
}

// declare binds name to the next free slot
func (j *jvm) declare(n ast.Node, name string, t ast.Type) (local, error) {
	l := local{slot: j.m.locals, typ: t}
	if err := j.m.vars.Declare(name, l); err != nil {
		return local{}, internalf(n, "%v", err)
	}
	j.m.locals += size(t)
	return l, nil
}

func (j *jvm) load(l local) {
	if l.typ == ast.Double {
		j.emit(OpDload, strconv.Itoa(l.slot))
		return
	}
	j.emit(OpIload, strconv.Itoa(l.slot))
}

func (j *jvm) store(l local) {
	if l.typ == ast.Double {
		j.emit(OpDstore, strconv.Itoa(l.slot))
		return
	}
	j.emit(OpIstore, strconv.Itoa(l.slot))
}

func (j *jvm) genStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := j.genStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// genScoped generates s inside a fresh frame
func (j *jvm) genScoped(s ast.Stmt) error {
	j.m.vars.Push()
	defer j.m.vars.Pop()
	return j.genStmt(s)
}

func (j *jvm) genStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.ExprStmt:
		t, err := j.genExpr(s.Expr)
		if err != nil {
			return err
		}
		if t == ast.Double {
			j.emit(OpPop2)
		} else {
			j.emit(OpPop)
		}
		return nil

	case *ast.DeclStmt:
		for _, name := range s.Names {
			l, err := j.declare(s, name, s.Type)
			if err != nil {
				return err
			}
			// the verifier rejects reads of unassigned slots
			if s.Type == ast.Double {
				j.emitInstr(doubleConst(0))
			} else {
				j.emitInstr(intConst(0))
			}
			j.store(l)
		}
		return nil

	case *ast.InitStmt:
		if _, err := j.genExpr(s.Value); err != nil {
			return err
		}
		l, err := j.declare(s, s.Name, s.Type)
		if err != nil {
			return err
		}
		j.store(l)
		return nil

	case *ast.ReturnStmt:
		return j.genReturn(s)

	case *ast.WhileStmt:
		top, end := j.newLabel(), j.newLabel()
		j.placeLabel(top)
		if err := j.genCond(s.Cond); err != nil {
			return err
		}
		j.emit(OpIfeq, end)
		if err := j.genScoped(s.Body); err != nil {
			return err
		}
		j.emit(OpGoto, top)
		j.placeLabel(end)
		return nil

	case *ast.BlockStmt:
		j.m.vars.Push()
		defer j.m.vars.Pop()
		return j.genStmts(s.Stmts)

	case *ast.IfStmt:
		if err := j.genCond(s.Cond); err != nil {
			return err
		}
		if s.Else == nil {
			end := j.newLabel()
			j.emit(OpIfeq, end)
			if err := j.genScoped(s.Then); err != nil {
				return err
			}
			j.placeLabel(end)
			return nil
		}
		els, end := j.newLabel(), j.newLabel()
		j.emit(OpIfeq, els)
		if err := j.genScoped(s.Then); err != nil {
			return err
		}
		j.emit(OpGoto, end)
		j.placeLabel(els)
		if err := j.genScoped(s.Else); err != nil {
			return err
		}
		j.placeLabel(end)
		return nil
	}

	return diag.Errorf(diag.CodeGenInternal, "no rule for statement %T", s)
}

func (j *jvm) genReturn(s *ast.ReturnStmt) error {
	ret := j.m.fn.Return
	if s.Value == nil {
		if ret != ast.Void {
			return internalf(s, "bare return in a function returning %s", ret)
		}
		j.emit(OpReturn)
		return nil
	}

	t, err := j.genExpr(s.Value)
	if err != nil {
		return err
	}
	switch ret {
	case ast.Void:
		// the value of a void call is the placeholder pushed by genCall
		j.emit(OpPop)
		j.emit(OpReturn)
	case ast.Double:
		j.emit(OpDreturn)
	default:
		if t == ast.Double {
			return internalf(s, "returning double from a function returning %s", ret)
		}
		j.emit(OpIreturn)
	}
	return nil
}

// genCond leaves 0 or 1 for a bool condition
func (j *jvm) genCond(e ast.Expr) error {
	t, err := j.genExpr(e)
	if err != nil {
		return err
	}
	if t != ast.Bool {
		return internalf(e, "condition of type %s", t)
	}
	return nil
}

// genExpr leaves the value of e on the stack and returns its type
func (j *jvm) genExpr(e ast.Expr) (ast.Type, error) {
	switch e := e.(type) {
	case *ast.BoolLit:
		if e.Value {
			j.emit(OpIconst1)
		} else {
			j.emit(OpIconst0)
		}
		return ast.Bool, nil

	case *ast.IntLit:
		j.emitInstr(intConst(e.Value))
		return ast.Int, nil

	case *ast.DoubleLit:
		j.emitInstr(doubleConst(e.Value))
		return ast.Double, nil

	case *ast.Ident:
		l, err := j.lookup(e)
		if err != nil {
			return ast.Invalid, err
		}
		j.load(l)
		return l.typ, nil

	case *ast.Call:
		return j.genCall(e)

	case *ast.IncDec:
		return j.genIncDec(e)

	case *ast.Binary:
		if e.Op.IsLogical() {
			return j.genLogical(e)
		}
		return j.genBinary(e)

	case *ast.Assign:
		id, ok := e.Target.(*ast.Ident)
		if !ok {
			return ast.Invalid, internalf(e, "assignment to %T", e.Target)
		}
		l, err := j.lookup(id)
		if err != nil {
			return ast.Invalid, err
		}
		if _, err := j.genExpr(e.Value); err != nil {
			return ast.Invalid, err
		}
		if l.typ == ast.Double {
			j.emit(OpDup2)
		} else {
			j.emit(OpDup)
		}
		j.store(l)
		return l.typ, nil
	}

	return ast.Invalid, diag.Errorf(diag.CodeGenInternal, "no rule for expression %T", e)
}

func (j *jvm) lookup(id *ast.Ident) (local, error) {
	l, err := j.m.vars.Lookup(id.Name)
	if err != nil {
		return local{}, internalf(id, "%v", err)
	}
	return l, nil
}

// genCall pushes the arguments left to right and invokes the static method.
// A void call still leaves one word so every expression has a value.
func (j *jvm) genCall(e *ast.Call) (ast.Type, error) {
	sig, err := j.sigs.Lookup(e.Func)
	if err != nil {
		return ast.Invalid, internalf(e, "%v", err)
	}
	if len(sig.Params) != len(e.Args) {
		return ast.Invalid, internalf(e, "%s called with %d arguments", e.Func, len(e.Args))
	}

	words := 0
	for _, arg := range e.Args {
		t, err := j.genExpr(arg)
		if err != nil {
			return ast.Invalid, err
		}
		words += size(t)
	}

	owner := j.class
	if scope.IsBuiltin(e.Func) {
		owner = RuntimeClass
	}
	j.m.body = append(j.m.body, fmt.Sprintf("\t%s %s/%s%s",
		OpInvokestatic, owner, e.Func, methodDescriptor(sig.Params, sig.Return)))
	j.adjustStack(size(sig.Return) - words)

	if sig.Return == ast.Void {
		j.emit(OpIconst0)
	}
	return sig.Return, nil
}

// genIncDec updates the variable in place. Postfix forms leave the old value, prefix forms the new one.
func (j *jvm) genIncDec(e *ast.IncDec) (ast.Type, error) {
	id, ok := e.Target.(*ast.Ident)
	if !ok {
		return ast.Invalid, internalf(e, "%s on %T", e.Op, e.Target)
	}
	l, err := j.lookup(id)
	if err != nil {
		return ast.Invalid, err
	}
	slot := strconv.Itoa(l.slot)

	switch l.typ {
	case ast.Int:
		delta := strconv.Itoa(e.Op.Delta())
		if e.Op.IsPrefix() {
			j.emit(OpIinc, slot, delta)
			j.load(l)
		} else {
			j.load(l)
			j.emit(OpIinc, slot, delta)
		}
		return ast.Int, nil

	case ast.Double:
		op := OpDadd
		if e.Op.Delta() < 0 {
			op = OpDsub
		}
		j.load(l)
		if e.Op.IsPrefix() {
			j.emit(OpDconst1)
			j.emit(op)
			j.emit(OpDup2)
		} else {
			j.emit(OpDup2)
			j.emit(OpDconst1)
			j.emit(op)
		}
		j.store(l)
		return ast.Double, nil
	}

	return ast.Invalid, internalf(e, "%s on %s", e.Op, l.typ)
}

func (j *jvm) genBinary(e *ast.Binary) (ast.Type, error) {
	if ops, ok := arithmeticOps[e.Op]; ok {
		t, err := j.genOperands(e)
		if err != nil {
			return ast.Invalid, err
		}
		switch t {
		case ast.Int:
			j.emit(ops[0])
		case ast.Double:
			j.emit(ops[1])
		default:
			return ast.Invalid, internalf(e, "%s on %s", e.Op, t)
		}
		return t, nil
	}

	if !e.Op.IsComparison() {
		return ast.Invalid, internalf(e, "unknown operator %q", e.Op)
	}

	// iconst_1; a; b; branch to done when true; otherwise replace the 1 with 0
	done := j.newLabel()
	j.emit(OpIconst1)
	t, err := j.genOperands(e)
	if err != nil {
		return ast.Invalid, err
	}
	if t == ast.Double {
		j.emit(doubleCompare(e.Op))
		j.emit(zeroCompareOps[e.Op], done)
	} else {
		j.emit(intCompareOps[e.Op], done)
	}
	j.emit(OpPop)
	j.emit(OpIconst0)
	j.placeLabel(done)
	return ast.Bool, nil
}

func (j *jvm) genOperands(e *ast.Binary) (ast.Type, error) {
	lt, err := j.genExpr(e.Left)
	if err != nil {
		return ast.Invalid, err
	}
	rt, err := j.genExpr(e.Right)
	if err != nil {
		return ast.Invalid, err
	}
	if lt != rt {
		return ast.Invalid, internalf(e, "operands of %s are %s and %s", e.Op, lt, rt)
	}
	return lt, nil
}

// genLogical short-circuits: && leaves 0 as soon as an operand is false, || leaves 1 as soon as one is true
func (j *jvm) genLogical(e *ast.Binary) (ast.Type, error) {
	short, rest := OpIconst0, OpIconst1
	if e.Op == ast.Or {
		short, rest = OpIconst1, OpIconst0
	}

	done := j.newLabel()
	j.emit(short)
	for _, operand := range []ast.Expr{e.Left, e.Right} {
		inverted, err := j.genTruth(operand)
		if err != nil {
			return ast.Invalid, err
		}
		// && leaves on a false operand, || on a true one
		if (e.Op == ast.Or) != inverted {
			j.emit(OpIfne, done)
		} else {
			j.emit(OpIfeq, done)
		}
	}
	j.emit(OpPop)
	j.emit(rest)
	j.placeLabel(done)
	return ast.Bool, nil
}

// genTruth leaves an int that is zero exactly when e is false, or exactly
// when e is true if inverted is set. An int is true only when it equals 1.
func (j *jvm) genTruth(e ast.Expr) (inverted bool, err error) {
	t, err := j.genExpr(e)
	if err != nil {
		return false, err
	}
	switch t {
	case ast.Int:
		j.emit(OpIconst1)
		j.emit(OpIsub)
		return true, nil
	case ast.Double:
		j.emit(OpDconst0)
		j.emit(OpDcmpl)
	}
	return false, nil
}

func internalf(n ast.Node, format string, args ...any) error {
	return diag.At(n, diag.CodeGenInternal, format, args...)
}
