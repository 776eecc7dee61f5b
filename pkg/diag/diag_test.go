package diag_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"minic/pkg/ast"
	"minic/pkg/color"
	"minic/pkg/diag"
)

func TestErrorMatching(t *testing.T) {
	err := fmt.Errorf("function main: %w", diag.At(&ast.Ident{Pos: ast.Pos{Line: 2, Column: 7}, Name: "x"},
		diag.UndeclaredName, "%q is not declared", "x"))

	if !errors.Is(err, diag.UndeclaredName) {
		t.Errorf("expected errors.Is to match the kind")
	}
	if errors.Is(err, diag.TypeMismatch) {
		t.Errorf("expected errors.Is not to match another kind")
	}
	if kind, ok := diag.KindOf(err); !ok || kind != diag.UndeclaredName {
		t.Errorf("KindOf: expected undeclared name, got %v %v", kind, ok)
	}
	if _, ok := diag.KindOf(errors.New("plain")); ok {
		t.Errorf("KindOf: expected no kind for a plain error")
	}

	expected := `function main: undeclared name at 2:7: "x" is not declared`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	if got := diag.Errorf(diag.InputExhausted, "readInt: no more input").Error(); got != "input exhausted: readInt: no more input" {
		t.Errorf("unexpected message without position: %q", got)
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		kind   diag.Kind
		name   string
		static bool
	}{
		{diag.DuplicateDeclaration, "duplicate declaration", true},
		{diag.InvalidEntryPoint, "invalid entry point", true},
		{diag.ArityMismatch, "arity mismatch", true},
		{diag.UninitializedRead, "uninitialized read", false},
		{diag.DivisionByZero, "division by zero", false},
		{diag.CodeGenInternal, "internal code generation error", false},
	}
	for _, test := range tests {
		if test.kind.String() != test.name {
			t.Errorf("expected %q, got %q", test.name, test.kind)
		}
		if test.kind.IsStatic() != test.static {
			t.Errorf("%s: expected IsStatic %v", test.name, test.static)
		}
	}
}

func TestRender(t *testing.T) {
	prev := color.IsColorEnabled()
	color.EnableColor(false)
	defer color.EnableColor(prev)

	err := fmt.Errorf("function f: %w", diag.At(&ast.IntLit{Pos: ast.Pos{Line: 4, Column: 1}}, diag.TypeMismatch, "bad"))
	got := diag.Render(err)
	if !strings.HasPrefix(got, "Type mismatch: bad at Line: 4, Column 1") {
		t.Errorf("unexpected rendering %q", got)
	}
	if !strings.HasSuffix(got, "\nfunction f: type mismatch at 4:1: bad") {
		t.Errorf("expected the wrapped message in %q", got)
	}

	if got := diag.Render(errors.New("plain")); got != "plain" {
		t.Errorf("expected plain errors unchanged, got %q", got)
	}
}
