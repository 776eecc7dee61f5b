package scope

import "minic/pkg/ast"

// Names of the runtime-provided functions.
const (
	PrintInt    = "printInt"
	PrintDouble = "printDouble"
	ReadInt     = "readInt"
	ReadDouble  = "readDouble"
)

var builtins = []struct {
	name string
	sig  Signature
}{
	{PrintInt, Signature{Params: []ast.Type{ast.Int}, Return: ast.Void}},
	{PrintDouble, Signature{Params: []ast.Type{ast.Double}, Return: ast.Void}},
	{ReadInt, Signature{Return: ast.Int}},
	{ReadDouble, Signature{Return: ast.Double}},
}

// IsBuiltin reports whether name is one of the four runtime functions
func IsBuiltin(name string) bool {
	for _, b := range builtins {
		if b.name == name {
			return true
		}
	}
	return false
}

// RegisterBuiltins adds the runtime functions to t
func RegisterBuiltins(t *Signatures) error {
	for _, b := range builtins {
		if err := t.Register(b.name, b.sig); err != nil {
			return err
		}
	}
	return nil
}
