package interpreter

// Frame represents one active function call.
type Frame struct {
	FuncName string // function name for this frame
}

// Signal tells the enclosing construct whether to keep going after a statement.
type Signal struct {
	returned bool
	value    Value
}

// Continue lets execution proceed with the next statement
var Continue = Signal{}

// Return stops the current function with v as its result
func Return(v Value) Signal {
	return Signal{returned: true, value: v}
}

// Returned reports whether the signal is a Return
func (s Signal) Returned() bool {
	return s.returned
}

// Value is the returned value; meaningful only when Returned is true
func (s Signal) Value() Value {
	return s.value
}
