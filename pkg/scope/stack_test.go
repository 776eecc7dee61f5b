package scope_test

import (
	"errors"
	"testing"

	"minic/pkg/ast"
	"minic/pkg/diag"
	"minic/pkg/scope"
)

func TestStackShadowing(t *testing.T) {
	s := scope.New[ast.Type]()
	s.Push()
	if err := s.Declare("x", ast.Int); err != nil {
		t.Fatalf("declare x: %v", err)
	}

	s.Push()
	if err := s.Declare("x", ast.Double); err != nil {
		t.Fatalf("shadowing x in a child frame: %v", err)
	}
	if got, _ := s.Lookup("x"); got != ast.Double {
		t.Errorf("inner lookup: expected double, got %s", got)
	}

	s.Pop()
	if got, _ := s.Lookup("x"); got != ast.Int {
		t.Errorf("lookup after pop: expected int, got %s", got)
	}
}

func TestStackErrors(t *testing.T) {
	s := scope.New[int]()
	s.Push()
	if err := s.Declare("a", 1); err != nil {
		t.Fatalf("declare a: %v", err)
	}

	tests := []struct {
		description string
		run         func() error
		expected    diag.Kind
	}{
		{"redeclare in same frame", func() error { return s.Declare("a", 2) }, diag.DuplicateDeclaration},
		{"lookup unknown", func() error { _, err := s.Lookup("b"); return err }, diag.UndeclaredName},
		{"update unknown", func() error { return s.Update("b", 3) }, diag.UndeclaredName},
	}

	for _, test := range tests {
		err := test.run()
		if !errors.Is(err, test.expected) {
			t.Errorf("%s: expected %s, got %v", test.description, test.expected, err)
		}
	}
}

func TestStackUpdateNearestFrame(t *testing.T) {
	s := scope.New[int]()
	s.Push()
	_ = s.Declare("n", 1)
	s.Push()
	_ = s.Declare("m", 2)

	if err := s.Update("n", 10); err != nil {
		t.Fatalf("update n: %v", err)
	}
	s.Pop()
	if got, _ := s.Lookup("n"); got != 10 {
		t.Errorf("expected outer n to be 10, got %d", got)
	}
	if _, err := s.Lookup("m"); err == nil {
		t.Errorf("expected m to be gone after pop")
	}
}

func TestStackDepth(t *testing.T) {
	s := scope.New[bool]()
	if s.Depth() != 0 {
		t.Errorf("expected empty stack, got depth %d", s.Depth())
	}
	s.Pop()
	if s.Depth() != 0 {
		t.Errorf("pop on an empty stack changed the depth to %d", s.Depth())
	}
	if err := s.Declare("x", true); err != nil {
		t.Fatalf("declare without a frame: %v", err)
	}
	if s.Depth() != 1 {
		t.Errorf("expected declare to open a frame, got depth %d", s.Depth())
	}
}
