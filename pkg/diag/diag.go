// Package diag defines the error kinds reported by the checker, the interpreter
// and the code generator.
package diag

import (
	"errors"
	"fmt"

	"minic/pkg/ast"
)

type Kind int

const (
	_ Kind = iota

	// static, reported by the checker
	DuplicateDeclaration
	DuplicateFunction
	UndeclaredName
	UndeclaredFunction
	TypeMismatch
	ArityMismatch
	InvalidOperand
	InvalidEntryPoint

	// runtime, reported by the interpreter
	UninitializedRead
	InputExhausted
	InputParseFailure
	DivisionByZero

	// generation time; unreachable for a checked program
	CodeGenInternal
)

var kindNames = map[Kind]string{
	DuplicateDeclaration: "duplicate declaration",
	DuplicateFunction:    "duplicate function",
	UndeclaredName:       "undeclared name",
	UndeclaredFunction:   "undeclared function",
	TypeMismatch:         "type mismatch",
	ArityMismatch:        "arity mismatch",
	InvalidOperand:       "invalid operand",
	InvalidEntryPoint:    "invalid entry point",
	UninitializedRead:    "uninitialized read",
	InputExhausted:       "input exhausted",
	InputParseFailure:    "input parse failure",
	DivisionByZero:       "division by zero",
	CodeGenInternal:      "internal code generation error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error lets a Kind be used directly as an errors.Is target
func (k Kind) Error() string {
	return k.String()
}

// IsStatic reports whether the kind is found before anything runs
func (k Kind) IsStatic() bool {
	return k >= DuplicateDeclaration && k <= InvalidEntryPoint
}

// Error is a failure of one of the passes, tagged with its kind.
type Error struct {
	Kind Kind
	Pos  ast.Pos // zero when unknown
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is matches a bare Kind target
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Errorf creates an Error without position
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// At creates an Error at the position of node n
func At(n ast.Node, kind Kind, format string, args ...any) *Error {
	e := Errorf(kind, format, args...)
	if n != nil {
		e.Pos = n.Position()
	}
	return e
}

// KindOf extracts the kind of the first *Error in err's chain
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
