package ast

import "fmt"

// Type is one of the four built-in types of the language.
// Types are compared by plain equality; there is no subtyping or widening.
type Type int

const (
	Invalid Type = iota
	Int
	Double
	Bool
	Void
)

var typeNames = map[Type]string{
	Invalid: "invalid",
	Int:     "int",
	Double:  "double",
	Bool:    "bool",
	Void:    "void",
}

// String returns the source spelling of the type
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsNumeric reports whether arithmetic and ++/-- apply to the type
func (t Type) IsNumeric() bool {
	return t == Int || t == Double
}

// IsComparable reports whether relational, equality and logical operators apply to the type
func (t Type) IsComparable() bool {
	return t == Int || t == Double || t == Bool
}

// ParseType maps a source type name to a Type
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if t != Invalid && n == name {
			return t, nil
		}
	}
	return Invalid, fmt.Errorf("unknown type %q", name)
}
