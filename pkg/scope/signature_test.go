package scope_test

import (
	"errors"
	"slices"
	"testing"

	"minic/pkg/ast"
	"minic/pkg/diag"
	"minic/pkg/scope"
)

func TestSignatures(t *testing.T) {
	sigs := scope.NewSignatures()
	if err := scope.RegisterBuiltins(sigs); err != nil {
		t.Fatalf("register builtins: %v", err)
	}

	fn := ast.Func("avg", ast.Double, ast.Params("a", ast.Double, "n", ast.Int))
	if err := sigs.Register(fn.Name, scope.SignatureOf(fn)); err != nil {
		t.Fatalf("register avg: %v", err)
	}

	sig, err := sigs.Lookup("avg")
	if err != nil {
		t.Fatalf("lookup avg: %v", err)
	}
	if got := sig.String(); got != "(double, int) -> double" {
		t.Errorf("expected (double, int) -> double, got %s", got)
	}

	if err := sigs.Register("avg", scope.Signature{Return: ast.Int}); !errors.Is(err, diag.DuplicateFunction) {
		t.Errorf("expected duplicate function, got %v", err)
	}
	if err := sigs.Register(scope.PrintInt, scope.Signature{Return: ast.Void}); !errors.Is(err, diag.DuplicateFunction) {
		t.Errorf("expected redefining a builtin to fail, got %v", err)
	}
	if _, err := sigs.Lookup("nope"); !errors.Is(err, diag.UndeclaredFunction) {
		t.Errorf("expected undeclared function, got %v", err)
	}

	if err := sigs.Register("abs", scope.Signature{Return: ast.Int, Params: []ast.Type{ast.Int}}); err != nil {
		t.Fatalf("register abs: %v", err)
	}

	// builtins first, then user functions as registered
	expected := []string{scope.PrintInt, scope.PrintDouble, scope.ReadInt, scope.ReadDouble, "avg", "abs"}
	got := sigs.Names()
	if !slices.Equal(got, expected) {
		t.Errorf("expected names %v, got %v", expected, got)
	}
	got[0] = "changed"
	if sigs.Names()[0] != scope.PrintInt {
		t.Errorf("expected Names to return a copy")
	}
	if sigs.Len() != 6 {
		t.Errorf("expected 6 functions, got %d", sigs.Len())
	}
}

func TestIsBuiltin(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"printInt", true},
		{"printDouble", true},
		{"readInt", true},
		{"readDouble", true},
		{"print", false},
		{"main", false},
		{"PrintInt", false},
	}

	for _, test := range tests {
		if got := scope.IsBuiltin(test.name); got != test.expected {
			t.Errorf("IsBuiltin(%q): expected %v, got %v", test.name, test.expected, got)
		}
	}
}
