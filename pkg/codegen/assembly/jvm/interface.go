package jvm

import (
	"bytes"
	"errors"

	"minic/pkg/ast"
	"minic/pkg/codegen/assembly"
	"minic/pkg/scope"
)

// RuntimeClass hosts printInt, printDouble, readInt and readDouble at run time
const RuntimeClass = "Runtime"

// ErrReservedClass is returned when the program class would replace the runtime class
var ErrReservedClass = errors.New("class name " + RuntimeClass + " is reserved for the builtins")

type jvm struct {
	prog *ast.Program
	sigs *scope.Signatures // checked signatures, builtins included

	class     string   // name of the emitted class
	outputDir string   // where Build writes <class>.j
	assembler []string // external assembler command, the .j path is appended

	header  bytes.Buffer // class boilerplate and trampoline
	methods bytes.Buffer // one block per user function

	m *method // method being generated
}

// method accumulates the body of one function before its limits are known
type method struct {
	fn   *ast.FunctionDef
	body []string // instructions and labels, in order

	stack    int // current operand stack depth in words
	maxStack int // peak operand stack depth
	locals   int // next free local slot

	vars   *scope.Stack[local]
	labels int // label counter
}

// local is a variable bound to a slot
type local struct {
	slot int
	typ  ast.Type
}

type Option func(*jvm)

// WithOutputDir sets the directory Build writes the .j file to
func WithOutputDir(dir string) Option {
	return func(j *jvm) { j.outputDir = dir }
}

// WithAssembler sets the command Build runs on the written .j file, e.g. java -jar jasmin.jar
func WithAssembler(cmd ...string) Option {
	return func(j *jvm) { j.assembler = cmd }
}

// NewJVM creates a Jasmin generator for a program that passed the checker
func NewJVM(prog *ast.Program, sigs *scope.Signatures, class string, opts ...Option) assembly.Assembly {
	j := &jvm{
		prog:      prog,
		sigs:      sigs,
		class:     class,
		outputDir: ".",
	}
	for _, o := range opts {
		o(j)
	}
	return j
}
