package interpreter

import (
	"fmt"

	"minic/pkg/ast"
	"minic/pkg/diag"
)

// binary evaluates an arithmetic or comparison operator on two operands of the same kind
func binary(op ast.BinaryOp, a, b Value) (Value, error) {
	if a.Kind != b.Kind {
		return Value{}, fmt.Errorf("%w: %s applied to %s and %s", ErrMalformedProgram, op, a, b)
	}

	switch a.Kind {
	case KindInt:
		return intBinary(op, a.I32, b.I32)
	case KindDouble:
		return doubleBinary(op, a.F64, b.F64)
	case KindBool:
		return boolBinary(op, a.Bool, b.Bool)
	}
	return Value{}, fmt.Errorf("%w: %s applied to %s", ErrMalformedProgram, op, a)
}

// intBinary wraps around on overflow, like 32-bit JVM arithmetic
func intBinary(op ast.BinaryOp, a, b int32) (Value, error) {
	switch op {
	case ast.Add:
		return IntValue(a + b), nil
	case ast.Sub:
		return IntValue(a - b), nil
	case ast.Mul:
		return IntValue(a * b), nil
	case ast.Div:
		if b == 0 {
			return Value{}, diag.Errorf(diag.DivisionByZero, "%d / 0", a)
		}
		return IntValue(a / b), nil
	}
	if op.IsComparison() {
		return compare(op, a, b), nil
	}
	return Value{}, fmt.Errorf("%w: %s on int", ErrMalformedProgram, op)
}

// doubleBinary follows IEEE 754: x / 0.0 is an infinity or NaN, not an error
func doubleBinary(op ast.BinaryOp, a, b float64) (Value, error) {
	switch op {
	case ast.Add:
		return DoubleValue(a + b), nil
	case ast.Sub:
		return DoubleValue(a - b), nil
	case ast.Mul:
		return DoubleValue(a * b), nil
	case ast.Div:
		return DoubleValue(a / b), nil
	}
	if op.IsComparison() {
		return compare(op, a, b), nil
	}
	return Value{}, fmt.Errorf("%w: %s on double", ErrMalformedProgram, op)
}

// boolBinary orders false before true
func boolBinary(op ast.BinaryOp, a, b bool) (Value, error) {
	if !op.IsComparison() {
		return Value{}, fmt.Errorf("%w: %s on bool", ErrMalformedProgram, op)
	}
	return compare(op, boolToInt(a), boolToInt(b)), nil
}

func compare[T int32 | float64](op ast.BinaryOp, a, b T) Value {
	switch op {
	case ast.Lt:
		return BoolValue(a < b)
	case ast.Gt:
		return BoolValue(a > b)
	case ast.Le:
		return BoolValue(a <= b)
	case ast.Ge:
		return BoolValue(a >= b)
	case ast.Eq:
		return BoolValue(a == b)
	default:
		return BoolValue(a != b)
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
