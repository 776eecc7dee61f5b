package interpreter_test

import (
	"math"
	"testing"

	"minic/pkg/ast"
	"minic/pkg/interpreter"
)

func TestDoubleFormatting(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{-2.5, "-2.5"},
		{100, "100.0"},
		{123.456, "123.456"},
		{1.0 / 3, "0.3333333333333333"},
		{0.001, "0.001"},
		{0.0001, "1.0E-4"},
		{1.5e-5, "1.5E-5"},
		{9999999, "9999999.0"},
		{1e7, "1.0E7"},
		{1.25e21, "1.25E21"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, test := range tests {
		if got := interpreter.DoubleValue(test.input).String(); got != test.expected {
			t.Errorf("%v: expected %s, got %s", test.input, test.expected, got)
		}
	}
}

func TestValues(t *testing.T) {
	tests := []struct {
		value    interpreter.Value
		expected string
		truthy   bool
	}{
		{interpreter.IntValue(-3), "-3", false},
		{interpreter.IntValue(0), "0", false},
		{interpreter.IntValue(1), "1", true},
		{interpreter.IntValue(2), "2", false},
		{interpreter.BoolValue(true), "true", true},
		{interpreter.BoolValue(false), "false", false},
		{interpreter.DoubleValue(0.5), "0.5", true},
		{interpreter.DoubleValue(math.NaN()), "NaN", true},
	}

	for _, test := range tests {
		if got := test.value.String(); got != test.expected {
			t.Errorf("expected %s, got %s", test.expected, got)
		}
		truthy, err := test.value.Truthy()
		if err != nil || truthy != test.truthy {
			t.Errorf("%s: expected truthy %v, got %v (%v)", test.expected, test.truthy, truthy, err)
		}
	}

	var unset interpreter.Value
	if unset.IsSet() {
		t.Errorf("the zero Value must be unset")
	}
	if _, err := unset.Truthy(); err == nil {
		t.Errorf("expected an error for the truth value of an unset value")
	}
}

func TestZeroValue(t *testing.T) {
	tests := []struct {
		typ      ast.Type
		expected string
	}{
		{ast.Int, "0"},
		{ast.Double, "0.0"},
		{ast.Bool, "false"},
		{ast.Void, "<unset>"},
	}
	for _, test := range tests {
		if got := interpreter.ZeroValue(test.typ).String(); got != test.expected {
			t.Errorf("ZeroValue(%s): expected %s, got %s", test.typ, test.expected, got)
		}
	}
}
