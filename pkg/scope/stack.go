package scope

import "minic/pkg/diag"

// Stack is a stack of name bindings, innermost frame last. V is the bound
// value: a type while checking, a runtime value while interpreting, a local
// slot while generating code.
type Stack[V any] struct {
	frames []map[string]V
}

// New creates an empty stack with no frames
func New[V any]() *Stack[V] {
	return &Stack[V]{frames: make([]map[string]V, 0, 4)}
}

// Push opens a new innermost frame
func (s *Stack[V]) Push() {
	s.frames = append(s.frames, make(map[string]V))
}

// Pop discards the innermost frame
func (s *Stack[V]) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth returns the number of open frames
func (s *Stack[V]) Depth() int {
	return len(s.frames)
}

// Declare binds name in the innermost frame. A name bound in an outer frame is shadowed.
func (s *Stack[V]) Declare(name string, v V) error {
	if len(s.frames) == 0 {
		s.Push()
	}
	top := s.frames[len(s.frames)-1]
	if _, exists := top[name]; exists {
		return diag.Errorf(diag.DuplicateDeclaration, "%q is already declared in this block", name)
	}
	top[name] = v
	return nil
}

// Lookup returns the binding of name in the nearest frame
func (s *Stack[V]) Lookup(name string) (V, error) {
	if i := s.find(name); i >= 0 {
		return s.frames[i][name], nil
	}
	var zero V
	return zero, diag.Errorf(diag.UndeclaredName, "%q is not declared", name)
}

// Update rebinds name in the nearest frame that holds it
func (s *Stack[V]) Update(name string, v V) error {
	i := s.find(name)
	if i < 0 {
		return diag.Errorf(diag.UndeclaredName, "%q is not declared", name)
	}
	s.frames[i][name] = v
	return nil
}

// find returns the index of the innermost frame binding name, or -1
func (s *Stack[V]) find(name string) int {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i][name]; ok {
			return i
		}
	}
	return -1
}
