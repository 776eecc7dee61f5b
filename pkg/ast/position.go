package ast

import "fmt"

// Pos is the source location of a node, as reported by the parser.
// The zero Pos means the parser did not record one.
type Pos struct {
	Line   int
	Column int
}

// Returns a string representation of the Pos
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was recorded
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Position returns the node position; embedding Pos gives every node the Node interface
func (p Pos) Position() Pos {
	return p
}
