package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"minic/pkg/ast"
)

type ValueKind int

const (
	KindUnset ValueKind = iota // declared but never assigned
	KindInt
	KindDouble
	KindBool
)

// Value is a runtime value. The zero Value is the unset sentinel.
type Value struct {
	Kind ValueKind
	I32  int32
	F64  float64
	Bool bool
}

// String renders the value the way the print builtins do.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(int64(v.I32), 10)
	case KindDouble:
		return formatDouble(v.F64)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return "<unset>"
	}
}

// IsSet reports whether the value was ever assigned
func (v Value) IsSet() bool {
	return v.Kind != KindUnset
}

// Truthy converts an operand of && or || to a boolean.
// An int is true only when it equals 1, a double whenever it is not zero.
func (v Value) Truthy() (bool, error) {
	switch v.Kind {
	case KindBool:
		return v.Bool, nil
	case KindInt:
		return v.I32 == 1, nil
	case KindDouble:
		return v.F64 != 0, nil
	default:
		return false, fmt.Errorf("%w: truth value of %s", ErrMalformedProgram, v)
	}
}

// IntValue creates a new int Value
func IntValue(i int32) Value {
	return Value{Kind: KindInt, I32: i}
}

// DoubleValue creates a new double Value
func DoubleValue(f float64) Value {
	return Value{Kind: KindDouble, F64: f}
}

// BoolValue creates a new bool Value
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// ZeroValue is what a function of type t yields when it ends without return
func ZeroValue(t ast.Type) Value {
	switch t {
	case ast.Int:
		return IntValue(0)
	case ast.Double:
		return DoubleValue(0)
	case ast.Bool:
		return BoolValue(false)
	default:
		return Value{}
	}
}

// formatDouble prints f like the JVM runtime's Double.toString, so that
// interpreted and compiled programs produce the same text.
func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	if abs := math.Abs(f); abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	// computerized scientific notation: 1.0E10, 1.5E-5
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'E', -1, 64), "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(e)
}
