package scope

import (
	"strings"

	"minic/pkg/ast"
	"minic/pkg/diag"
)

// Signature is a function's parameter types and return type.
type Signature struct {
	Params []ast.Type
	Return ast.Type
}

// String renders the signature as (int, double) -> void
func (s Signature) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ", ") + ") -> " + s.Return.String()
}

// SignatureOf builds the signature declared by fn
func SignatureOf(fn *ast.FunctionDef) Signature {
	return Signature{Params: fn.ParamTypes(), Return: fn.Return}
}

// Signatures is the flat, global function namespace. It is filled once before
// any body is looked at and read-only afterwards.
type Signatures struct {
	table map[string]Signature
	order []string
}

// NewSignatures creates an empty table
func NewSignatures() *Signatures {
	return &Signatures{table: make(map[string]Signature)}
}

// Register adds a function. Names are never overloaded.
func (t *Signatures) Register(name string, sig Signature) error {
	if _, exists := t.table[name]; exists {
		return diag.Errorf(diag.DuplicateFunction, "function %q is already defined", name)
	}
	t.table[name] = sig
	t.order = append(t.order, name)
	return nil
}

// Lookup returns the signature registered for name
func (t *Signatures) Lookup(name string) (Signature, error) {
	sig, ok := t.table[name]
	if !ok {
		return Signature{}, diag.Errorf(diag.UndeclaredFunction, "function %q is not defined", name)
	}
	return sig, nil
}

// Names returns the registered names in registration order
func (t *Signatures) Names() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of registered functions, builtins included
func (t *Signatures) Len() int {
	return len(t.order)
}
