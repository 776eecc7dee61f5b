package interpreter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"minic/pkg/diag"
	"minic/pkg/scope"
)

// callBuiltin runs one of the runtime functions. Dispatch compares names by value.
func (i *Interpreter) callBuiltin(name string, args []Value) (Value, error) {
	switch name {
	case scope.PrintInt:
		if len(args) != 1 || args[0].Kind != KindInt {
			return Value{}, fmt.Errorf("%w: %s(%v)", ErrMalformedProgram, name, args)
		}
		_, err := fmt.Fprintln(i.out, args[0].I32)
		return Value{}, err

	case scope.PrintDouble:
		if len(args) != 1 || args[0].Kind != KindDouble {
			return Value{}, fmt.Errorf("%w: %s(%v)", ErrMalformedProgram, name, args)
		}
		_, err := fmt.Fprintln(i.out, formatDouble(args[0].F64))
		return Value{}, err

	case scope.ReadInt:
		line, err := i.readLine(name)
		if err != nil {
			return Value{}, err
		}
		n, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			return Value{}, diag.Errorf(diag.InputParseFailure, "%s: %q is not an int", name, line)
		}
		return IntValue(int32(n)), nil

	case scope.ReadDouble:
		line, err := i.readLine(name)
		if err != nil {
			return Value{}, err
		}
		f, err := parseDouble(line)
		if err != nil {
			return Value{}, diag.Errorf(diag.InputParseFailure, "%s: %q is not a double", name, line)
		}
		return DoubleValue(f), nil
	}

	return Value{}, diag.Errorf(diag.UndeclaredFunction, "no builtin named %q", name)
}

// parseDouble accepts what Double.parseDouble does: an optional sign, then NaN,
// Infinity or a decimal or hex literal with an optional d or f suffix.
// Lowercase inf and nan are rejected, and overflow yields an infinity.
func parseDouble(s string) (float64, error) {
	body, neg := s, false
	if body != "" && (body[0] == '+' || body[0] == '-') {
		body, neg = body[1:], body[0] == '-'
	}

	switch body {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		if neg {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	}

	if len(body) > 1 && strings.IndexByte("dDfF", body[len(body)-1]) >= 0 {
		body = body[:len(body)-1]
	}
	if body == "" || strings.Contains(body, "_") || !(body[0] == '.' || body[0] >= '0' && body[0] <= '9') {
		return 0, strconv.ErrSyntax
	}

	f, err := strconv.ParseFloat(body, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	if neg {
		f = -f
	}
	return f, nil
}

// readLine blocks for one line of input, trimmed of surrounding blanks
func (i *Interpreter) readLine(name string) (string, error) {
	line, err := i.in.ReadLine()
	if errors.Is(err, io.EOF) {
		return "", diag.Errorf(diag.InputExhausted, "%s: no more input", name)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(line), nil
}
