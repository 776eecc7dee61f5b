package interpreter

import (
	"fmt"

	"minic/pkg/ast"
	"minic/pkg/diag"
	"minic/pkg/scope"
)

// execStmts runs stmts in order and stops at the first Return
func (i *Interpreter) execStmts(env *scope.Stack[Value], stmts []ast.Stmt) (Signal, error) {
	for _, s := range stmts {
		sig, err := i.execStmt(env, s)
		if err != nil || sig.Returned() {
			return sig, err
		}
	}
	return Continue, nil
}

// execScoped runs stmts inside a fresh frame that is dropped on every exit path
func (i *Interpreter) execScoped(env *scope.Stack[Value], stmts ...ast.Stmt) (Signal, error) {
	env.Push()
	defer env.Pop()
	return i.execStmts(env, stmts)
}

func (i *Interpreter) execStmt(env *scope.Stack[Value], s ast.Stmt) (Signal, error) {
	if err := i.tick(); err != nil {
		return Continue, err
	}

	switch s := s.(type) {
	case *ast.ExprStmt:
		_, err := i.eval(env, s.Expr)
		return Continue, err

	case *ast.DeclStmt:
		for _, name := range s.Names {
			if err := env.Declare(name, Value{}); err != nil {
				return Continue, err
			}
		}
		return Continue, nil

	case *ast.InitStmt:
		v, err := i.eval(env, s.Value)
		if err != nil {
			return Continue, err
		}
		return Continue, env.Declare(s.Name, v)

	case *ast.ReturnStmt:
		if s.Value == nil {
			return Return(Value{}), nil
		}
		v, err := i.eval(env, s.Value)
		if err != nil {
			return Continue, err
		}
		return Return(v), nil

	case *ast.WhileStmt:
		for {
			ok, err := i.evalCond(env, s.Cond)
			if err != nil || !ok {
				return Continue, err
			}
			sig, err := i.execScoped(env, s.Body)
			if err != nil || sig.Returned() {
				return sig, err
			}
			if err := i.tick(); err != nil {
				return Continue, err
			}
		}

	case *ast.BlockStmt:
		return i.execScoped(env, s.Stmts...)

	case *ast.IfStmt:
		ok, err := i.evalCond(env, s.Cond)
		if err != nil {
			return Continue, err
		}
		if ok {
			return i.execScoped(env, s.Then)
		}
		if s.Else != nil {
			return i.execScoped(env, s.Else)
		}
		return Continue, nil
	}

	return Continue, fmt.Errorf("%w: unexpected statement %T", ErrMalformedProgram, s)
}

func (i *Interpreter) evalCond(env *scope.Stack[Value], e ast.Expr) (bool, error) {
	v, err := i.eval(env, e)
	if err != nil {
		return false, err
	}
	if v.Kind != KindBool {
		return false, fmt.Errorf("%w: condition evaluated to %s", ErrMalformedProgram, v)
	}
	return v.Bool, nil
}

func (i *Interpreter) eval(env *scope.Stack[Value], e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.BoolLit:
		return BoolValue(e.Value), nil
	case *ast.IntLit:
		return IntValue(e.Value), nil
	case *ast.DoubleLit:
		return DoubleValue(e.Value), nil

	case *ast.Ident:
		return i.read(env, e)

	case *ast.Call:
		args := make([]Value, 0, len(e.Args))
		for _, a := range e.Args {
			v, err := i.eval(env, a)
			if err != nil {
				return Value{}, err
			}
			args = append(args, v)
		}
		return i.call(e.Func, args)

	case *ast.IncDec:
		return i.evalIncDec(env, e)

	case *ast.Binary:
		if e.Op.IsLogical() {
			return i.evalLogical(env, e)
		}
		l, err := i.eval(env, e.Left)
		if err != nil {
			return Value{}, err
		}
		r, err := i.eval(env, e.Right)
		if err != nil {
			return Value{}, err
		}
		v, err := binary(e.Op, l, r)
		if err != nil {
			if k, ok := diag.KindOf(err); ok && k == diag.DivisionByZero {
				err = withPos(err, e)
			}
			return Value{}, err
		}
		return v, nil

	case *ast.Assign:
		target, ok := e.Target.(*ast.Ident)
		if !ok {
			return Value{}, fmt.Errorf("%w: assignment to %T", ErrMalformedProgram, e.Target)
		}
		v, err := i.eval(env, e.Value)
		if err != nil {
			return Value{}, err
		}
		return v, env.Update(target.Name, v)
	}

	return Value{}, fmt.Errorf("%w: unexpected expression %T", ErrMalformedProgram, e)
}

// read loads a variable; reading one that was declared but never assigned is fatal
func (i *Interpreter) read(env *scope.Stack[Value], id *ast.Ident) (Value, error) {
	v, err := env.Lookup(id.Name)
	if err != nil {
		return Value{}, withPos(err, id)
	}
	if !v.IsSet() {
		return Value{}, diag.At(id, diag.UninitializedRead, "%q was used uninitialized", id.Name)
	}
	return v, nil
}

// evalIncDec updates the variable in place and yields the old (postfix) or new (prefix) value
func (i *Interpreter) evalIncDec(env *scope.Stack[Value], e *ast.IncDec) (Value, error) {
	target, ok := e.Target.(*ast.Ident)
	if !ok {
		return Value{}, fmt.Errorf("%w: %s on %T", ErrMalformedProgram, e.Op, e.Target)
	}
	old, err := i.read(env, target)
	if err != nil {
		return Value{}, err
	}

	var updated Value
	switch old.Kind {
	case KindInt:
		updated = IntValue(old.I32 + int32(e.Op.Delta()))
	case KindDouble:
		updated = DoubleValue(old.F64 + float64(e.Op.Delta()))
	default:
		return Value{}, fmt.Errorf("%w: %s on %s", ErrMalformedProgram, e.Op, old)
	}

	if err := env.Update(target.Name, updated); err != nil {
		return Value{}, err
	}
	if e.Op.IsPrefix() {
		return updated, nil
	}
	return old, nil
}

// evalLogical evaluates the right operand only when the left one does not decide the result
func (i *Interpreter) evalLogical(env *scope.Stack[Value], e *ast.Binary) (Value, error) {
	l, err := i.eval(env, e.Left)
	if err != nil {
		return Value{}, err
	}
	lb, err := l.Truthy()
	if err != nil {
		return Value{}, err
	}
	if e.Op == ast.And && !lb {
		return BoolValue(false), nil
	}
	if e.Op == ast.Or && lb {
		return BoolValue(true), nil
	}

	r, err := i.eval(env, e.Right)
	if err != nil {
		return Value{}, err
	}
	rb, err := r.Truthy()
	if err != nil {
		return Value{}, err
	}
	return BoolValue(rb), nil
}

func withPos(err error, n ast.Node) error {
	if e, ok := err.(*diag.Error); ok && !e.Pos.IsValid() {
		e.Pos = n.Position()
	}
	return err
}
