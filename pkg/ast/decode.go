package ast

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// The parser hands trees over as a YAML (or JSON) document:
//
//	functions:
//	  - name: main
//	    returns: int
//	    params: [{name: n, type: int}]
//	    body:
//	      - {kind: return, expr: {kind: int, value: 0}}
//
// Every statement and expression is a mapping tagged by its kind.

type rawProgram struct {
	Functions []rawFunction `yaml:"functions"`
}

type rawFunction struct {
	Name    string     `yaml:"name"`
	Returns string     `yaml:"returns"`
	Params  []rawParam `yaml:"params"`
	Body    []*rawNode `yaml:"body"`
	Line    int        `yaml:"line"`
	Column  int        `yaml:"column"`
}

type rawParam struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type rawNode struct {
	Kind   string `yaml:"kind"`
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`

	Type  string   `yaml:"type"`
	Name  string   `yaml:"name"`
	Names []string `yaml:"names"`
	Op    string   `yaml:"op"`
	Value string   `yaml:"value"`

	Expr   *rawNode   `yaml:"expr"`
	Cond   *rawNode   `yaml:"cond"`
	Body   *rawNode   `yaml:"body"`
	Then   *rawNode   `yaml:"then"`
	Else   *rawNode   `yaml:"else"`
	Target *rawNode   `yaml:"target"`
	Left   *rawNode   `yaml:"left"`
	Right  *rawNode   `yaml:"right"`
	Stmts  []*rawNode `yaml:"stmts"`
	Args   []*rawNode `yaml:"args"`
}

var incDecKinds = map[string]IncDecOp{
	"postincr": PostIncr,
	"postdecr": PostDecr,
	"preincr":  PreIncr,
	"predecr":  PreDecr,
}

// DecodeFile reads a program document from disk
func DecodeFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ast: open %s: %w", path, err)
	}
	defer f.Close()

	prog, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("ast: %s: %w", path, err)
	}
	return prog, nil
}

// Decode reads a program document. Unknown keys and unknown node kinds are errors.
func Decode(r io.Reader) (*Program, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw rawProgram
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty program document")
		}
		return nil, fmt.Errorf("parse: %w", err)
	}

	prog := &Program{Functions: make([]*FunctionDef, 0, len(raw.Functions))}
	for _, rf := range raw.Functions {
		fn, err := rf.toFunction()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	return prog, nil
}

func (rf rawFunction) toFunction() (*FunctionDef, error) {
	if rf.Name == "" {
		return nil, fmt.Errorf("%d:%d: function without a name", rf.Line, rf.Column)
	}
	ret, err := ParseType(rf.Returns)
	if err != nil {
		return nil, fmt.Errorf("function %s: return type: %w", rf.Name, err)
	}

	fn := &FunctionDef{
		Pos:    Pos{Line: rf.Line, Column: rf.Column},
		Name:   rf.Name,
		Return: ret,
	}
	for _, p := range rf.Params {
		t, err := ParseType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("function %s: parameter %s: %w", rf.Name, p.Name, err)
		}
		fn.Params = append(fn.Params, Param{Name: p.Name, Type: t})
	}
	if fn.Body, err = toStmts(rf.Body); err != nil {
		return nil, fmt.Errorf("function %s: %w", rf.Name, err)
	}
	return fn, nil
}

func (n *rawNode) pos() Pos {
	return Pos{Line: n.Line, Column: n.Column}
}

func (n *rawNode) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if n.Line > 0 {
		return fmt.Errorf("%s: %s", n.pos(), msg)
	}
	return errors.New(msg)
}

func toStmts(nodes []*rawNode) ([]Stmt, error) {
	stmts := make([]Stmt, 0, len(nodes))
	for _, n := range nodes {
		s, err := n.toStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func toExprs(nodes []*rawNode) ([]Expr, error) {
	exprs := make([]Expr, 0, len(nodes))
	for _, n := range nodes {
		e, err := n.toExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

// child converts a required sub-node, reporting which key was missing
func (n *rawNode) child(key string, c *rawNode) (Expr, error) {
	if c == nil {
		return nil, n.errorf("%s node without %q", n.Kind, key)
	}
	return c.toExpr()
}

func (n *rawNode) childStmt(key string, c *rawNode) (Stmt, error) {
	if c == nil {
		return nil, n.errorf("%s node without %q", n.Kind, key)
	}
	return c.toStmt()
}

func (n *rawNode) toStmt() (Stmt, error) {
	if n == nil {
		return nil, errors.New("null statement")
	}
	pos := n.pos()

	switch n.Kind {
	case "expr":
		e, err := n.child("expr", n.Expr)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Pos: pos, Expr: e}, nil

	case "decl":
		t, err := ParseType(n.Type)
		if err != nil {
			return nil, n.errorf("decl: %v", err)
		}
		if len(n.Names) == 0 {
			return nil, n.errorf("decl without names")
		}
		return &DeclStmt{Pos: pos, Type: t, Names: n.Names}, nil

	case "init":
		t, err := ParseType(n.Type)
		if err != nil {
			return nil, n.errorf("init: %v", err)
		}
		v, err := n.child("expr", n.Expr)
		if err != nil {
			return nil, err
		}
		return &InitStmt{Pos: pos, Type: t, Name: n.Name, Value: v}, nil

	case "return":
		s := &ReturnStmt{Pos: pos}
		if n.Expr != nil {
			v, err := n.Expr.toExpr()
			if err != nil {
				return nil, err
			}
			s.Value = v
		}
		return s, nil

	case "while":
		cond, err := n.child("cond", n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := n.childStmt("body", n.Body)
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Pos: pos, Cond: cond, Body: body}, nil

	case "block":
		stmts, err := toStmts(n.Stmts)
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Pos: pos, Stmts: stmts}, nil

	case "if":
		cond, err := n.child("cond", n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := n.childStmt("then", n.Then)
		if err != nil {
			return nil, err
		}
		s := &IfStmt{Pos: pos, Cond: cond, Then: then}
		if n.Else != nil {
			if s.Else, err = n.Else.toStmt(); err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	return nil, n.errorf("unknown statement kind %q", n.Kind)
}

func (n *rawNode) toExpr() (Expr, error) {
	if n == nil {
		return nil, errors.New("null expression")
	}
	pos := n.pos()

	switch n.Kind {
	case "bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, n.errorf("bad bool literal %q", n.Value)
		}
		return &BoolLit{Pos: pos, Value: b}, nil

	case "int":
		i, err := strconv.ParseInt(n.Value, 10, 32)
		if err != nil {
			return nil, n.errorf("bad int literal %q", n.Value)
		}
		return &IntLit{Pos: pos, Value: int32(i)}, nil

	case "double":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, n.errorf("bad double literal %q", n.Value)
		}
		return &DoubleLit{Pos: pos, Value: f}, nil

	case "id":
		if n.Name == "" {
			return nil, n.errorf("identifier without a name")
		}
		return &Ident{Pos: pos, Name: n.Name}, nil

	case "call":
		args, err := toExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &Call{Pos: pos, Func: n.Name, Args: args}, nil

	case "postincr", "postdecr", "preincr", "predecr":
		target, err := n.child("target", n.Target)
		if err != nil {
			return nil, err
		}
		return &IncDec{Pos: pos, Op: incDecKinds[n.Kind], Target: target}, nil

	case "binary":
		op := BinaryOp(n.Op)
		if !op.IsValid() {
			return nil, n.errorf("unknown operator %q", n.Op)
		}
		left, err := n.child("left", n.Left)
		if err != nil {
			return nil, err
		}
		right, err := n.child("right", n.Right)
		if err != nil {
			return nil, err
		}
		return &Binary{Pos: pos, Op: op, Left: left, Right: right}, nil

	case "assign":
		target, err := n.child("target", n.Target)
		if err != nil {
			return nil, err
		}
		v, err := n.child("expr", n.Expr)
		if err != nil {
			return nil, err
		}
		return &Assign{Pos: pos, Target: target, Value: v}, nil
	}

	return nil, n.errorf("unknown expression kind %q", n.Kind)
}
