package checker

import (
	"fmt"

	"minic/pkg/ast"
	"minic/pkg/diag"
	"minic/pkg/scope"

	"github.com/charmbracelet/log"
)

// EntryPoint is the function every program starts in
const EntryPoint = "main"

// returnKey binds the declared return type in a function's outermost frame.
// "return" is a keyword, so no variable can collide with it.
const returnKey = "return"

// Checker validates a whole program in one pass and stops at the first error.
type Checker struct {
	prog *ast.Program
	sigs *scope.Signatures
	vars *scope.Stack[ast.Type] // variables of the function being checked
}

// NewChecker creates a checker for prog
func NewChecker(prog *ast.Program) *Checker {
	return &Checker{
		prog: prog,
		sigs: scope.NewSignatures(),
	}
}

// Check type-checks prog and returns the global signature table on success
func Check(prog *ast.Program) (*scope.Signatures, error) {
	c := NewChecker(prog)
	if err := c.Check(); err != nil {
		return nil, err
	}
	return c.Signatures(), nil
}

// Signatures returns the function table built by Check
func (c *Checker) Signatures() *scope.Signatures {
	return c.sigs
}

// Check runs the pass: builtins, user signatures, entry point, then bodies
func (c *Checker) Check() error {
	if err := scope.RegisterBuiltins(c.sigs); err != nil {
		return err
	}

	for _, fn := range c.prog.Functions {
		if err := c.sigs.Register(fn.Name, scope.SignatureOf(fn)); err != nil {
			return withPos(err, fn)
		}
	}

	if err := c.checkEntryPoint(); err != nil {
		return err
	}

	for _, fn := range c.prog.Functions {
		log.Debug("Checking function", "name", fn.Name, "signature", scope.SignatureOf(fn))
		if err := c.checkFunction(fn); err != nil {
			return fmt.Errorf("function %s: %w", fn.Name, err)
		}
	}
	return nil
}

func (c *Checker) checkEntryPoint() error {
	fn := c.prog.Function(EntryPoint)
	if fn == nil {
		return diag.Errorf(diag.InvalidEntryPoint, "program has no %s function", EntryPoint)
	}
	if len(fn.Params) != 0 || fn.Return != ast.Int {
		return diag.At(fn, diag.InvalidEntryPoint,
			"%s must take no parameters and return int, found %s", EntryPoint, scope.SignatureOf(fn))
	}
	return nil
}

func (c *Checker) checkFunction(fn *ast.FunctionDef) error {
	c.vars = scope.New[ast.Type]()
	c.vars.Push()
	defer c.vars.Pop()

	if err := c.vars.Declare(returnKey, fn.Return); err != nil {
		return err
	}
	for _, p := range fn.Params {
		if p.Type == ast.Void {
			return diag.At(fn, diag.InvalidOperand, "parameter %q cannot have type void", p.Name)
		}
		if err := c.vars.Declare(p.Name, p.Type); err != nil {
			return withPos(err, fn)
		}
	}
	return c.checkStmts(fn.Body)
}

func (c *Checker) checkStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// checkScoped checks s inside a fresh child frame
func (c *Checker) checkScoped(s ast.Stmt) error {
	c.vars.Push()
	defer c.vars.Pop()
	return c.checkStmt(s)
}

func (c *Checker) checkStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.ExprStmt:
		_, err := c.infer(s.Expr)
		return err

	case *ast.DeclStmt:
		if s.Type == ast.Void {
			return diag.At(s, diag.InvalidOperand, "variables cannot have type void")
		}
		for _, name := range s.Names {
			if err := c.vars.Declare(name, s.Type); err != nil {
				return withPos(err, s)
			}
		}
		return nil

	case *ast.InitStmt:
		if s.Type == ast.Void {
			return diag.At(s, diag.InvalidOperand, "variable %q cannot have type void", s.Name)
		}
		t, err := c.infer(s.Value)
		if err != nil {
			return err
		}
		if t != s.Type {
			return diag.At(s, diag.TypeMismatch,
				"cannot initialize %q of type %s with a value of type %s", s.Name, s.Type, t)
		}
		return withPos(c.vars.Declare(s.Name, s.Type), s)

	case *ast.ReturnStmt:
		want, err := c.vars.Lookup(returnKey)
		if err != nil {
			return err
		}
		got := ast.Void
		if s.Value != nil {
			if got, err = c.infer(s.Value); err != nil {
				return err
			}
		}
		if got != want {
			return diag.At(s, diag.TypeMismatch, "returning %s from a function declared to return %s", got, want)
		}
		return nil

	case *ast.WhileStmt:
		if err := c.expectBool(s.Cond, "while condition"); err != nil {
			return err
		}
		return c.checkScoped(s.Body)

	case *ast.BlockStmt:
		c.vars.Push()
		defer c.vars.Pop()
		return c.checkStmts(s.Stmts)

	case *ast.IfStmt:
		if err := c.expectBool(s.Cond, "if condition"); err != nil {
			return err
		}
		if err := c.checkScoped(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return c.checkScoped(s.Else)
		}
		return nil
	}

	return fmt.Errorf("checker: unexpected statement %T", s)
}

func (c *Checker) expectBool(e ast.Expr, what string) error {
	t, err := c.infer(e)
	if err != nil {
		return err
	}
	if t != ast.Bool {
		return diag.At(e, diag.TypeMismatch, "%s must be bool, found %s", what, t)
	}
	return nil
}

// withPos attaches the position of n to a positionless diagnostic
func withPos(err error, n ast.Node) error {
	if e, ok := err.(*diag.Error); ok && !e.Pos.IsValid() {
		e.Pos = n.Position()
	}
	return err
}
