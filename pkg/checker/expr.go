package checker

import (
	"fmt"

	"minic/pkg/ast"
	"minic/pkg/diag"
)

// infer returns the type of e
func (c *Checker) infer(e ast.Expr) (ast.Type, error) {
	switch e := e.(type) {
	case *ast.BoolLit:
		return ast.Bool, nil
	case *ast.IntLit:
		return ast.Int, nil
	case *ast.DoubleLit:
		return ast.Double, nil

	case *ast.Ident:
		t, err := c.vars.Lookup(e.Name)
		return t, withPos(err, e)

	case *ast.Call:
		return c.inferCall(e)

	case *ast.IncDec:
		if _, ok := e.Target.(*ast.Ident); !ok {
			return ast.Invalid, diag.At(e, diag.InvalidOperand, "%s needs a variable operand", e.Op)
		}
		t, err := c.infer(e.Target)
		if err != nil {
			return ast.Invalid, err
		}
		if !t.IsNumeric() {
			return ast.Invalid, diag.At(e, diag.InvalidOperand, "%s is not applicable to %s", e.Op, t)
		}
		return t, nil

	case *ast.Binary:
		return c.inferBinary(e)

	case *ast.Assign:
		if _, ok := e.Target.(*ast.Ident); !ok {
			return ast.Invalid, diag.At(e, diag.InvalidOperand, "left side of assignment must be a variable")
		}
		return c.sameType(e.Target, e.Value, "assignment")
	}

	return ast.Invalid, fmt.Errorf("checker: unexpected expression %T", e)
}

func (c *Checker) inferCall(e *ast.Call) (ast.Type, error) {
	sig, err := c.sigs.Lookup(e.Func)
	if err != nil {
		return ast.Invalid, withPos(err, e)
	}
	if len(e.Args) != len(sig.Params) {
		return ast.Invalid, diag.At(e, diag.ArityMismatch,
			"%s expects %d arguments, got %d", e.Func, len(sig.Params), len(e.Args))
	}
	for i, arg := range e.Args {
		t, err := c.infer(arg)
		if err != nil {
			return ast.Invalid, err
		}
		if t != sig.Params[i] {
			return ast.Invalid, diag.At(arg, diag.TypeMismatch,
				"argument %d of %s must be %s, found %s", i+1, e.Func, sig.Params[i], t)
		}
	}
	return sig.Return, nil
}

func (c *Checker) inferBinary(e *ast.Binary) (ast.Type, error) {
	t, err := c.sameType(e.Left, e.Right, string(e.Op))
	if err != nil {
		return ast.Invalid, err
	}

	switch {
	case e.Op.IsArithmetic():
		if !t.IsNumeric() {
			return ast.Invalid, diag.At(e, diag.InvalidOperand, "%s is not applicable to %s", e.Op, t)
		}
		return t, nil
	case e.Op.IsComparison(), e.Op.IsLogical():
		if !t.IsComparable() {
			return ast.Invalid, diag.At(e, diag.InvalidOperand, "%s is not applicable to %s", e.Op, t)
		}
		return ast.Bool, nil
	}

	return ast.Invalid, diag.At(e, diag.InvalidOperand, "unknown operator %q", e.Op)
}

// sameType infers both operands and requires them to be identical
func (c *Checker) sameType(l, r ast.Expr, what string) (ast.Type, error) {
	lt, err := c.infer(l)
	if err != nil {
		return ast.Invalid, err
	}
	rt, err := c.infer(r)
	if err != nil {
		return ast.Invalid, err
	}
	if lt != rt {
		return ast.Invalid, diag.At(l, diag.TypeMismatch, "operands of %s don't match (%s, %s)", what, lt, rt)
	}
	return lt, nil
}
