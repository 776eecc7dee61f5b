package compiler_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"minic/internal/compiler"
	"minic/pkg/codegen/assembly/jvm"
	"minic/pkg/diag"
	"minic/pkg/interpreter"
)

const factorialProgram = `
functions:
  - name: fact
    returns: int
    params: [{name: n, type: int}]
    body:
      - kind: if
        cond: {kind: binary, op: "<=", left: {kind: id, name: n}, right: {kind: int, value: 1}}
        then: {kind: return, expr: {kind: int, value: 1}}
        else:
          kind: return
          expr:
            kind: binary
            op: "*"
            left: {kind: id, name: n}
            right: {kind: call, name: fact, args: [{kind: binary, op: "-", left: {kind: id, name: n}, right: {kind: int, value: 1}}]}
  - name: main
    returns: int
    body:
      - {kind: init, type: int, name: n, expr: {kind: call, name: readInt}}
      - {kind: expr, expr: {kind: call, name: printInt, args: [{kind: call, name: fact, args: [{kind: id, name: n}]}]}}
      - {kind: return, expr: {kind: int, value: 0}}
`

const mismatchProgram = `
functions:
  - name: main
    returns: int
    body:
      - {kind: return, line: 1, column: 18, expr: {kind: double, value: 1.0}}
`

func writeProgram(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestInterpret(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := compiler.Compiler{
		ShouldInterpret: true,
		SourceFile:      writeProgram(t, "fact.yml", factorialProgram),
		Stdin:           strings.NewReader("5\n"),
		Stdout:          &stdout,
		Stderr:          &stderr,
	}
	if err := c.Compile(); err != nil {
		t.Fatalf("compile: %v\n%s", err, stderr.String())
	}
	if stdout.String() != "120\n" {
		t.Errorf("expected 120, got %q", stdout.String())
	}
}

func TestGenerate(t *testing.T) {
	out := t.TempDir()
	var stderr bytes.Buffer
	c := compiler.Compiler{
		ShouldCompile: true,
		Verbose:       true,
		SourceFile:    writeProgram(t, "fact.yml", factorialProgram),
		OutputDir:     out,
		Stderr:        &stderr,
	}
	if err := c.Compile(); err != nil {
		t.Fatalf("compile: %v\n%s", err, stderr.String())
	}

	code, err := os.ReadFile(filepath.Join(out, "Fact.j"))
	if err != nil {
		t.Fatalf("read Fact.j: %v", err)
	}
	for _, want := range []string{".class public Fact", "invokestatic Fact/fact(I)I", "invokestatic Runtime/readInt()I"} {
		if !strings.Contains(string(code), want) {
			t.Errorf("expected %q in Fact.j", want)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "Runtime.j")); err != nil {
		t.Errorf("expected Runtime.j next to Fact.j: %v", err)
	}
	if !strings.Contains(stderr.String(), "fact") || !strings.Contains(stderr.String(), "(int) -> int") {
		t.Errorf("expected the verbose signature listing, got\n%s", stderr.String())
	}
}

func TestClassFromConfig(t *testing.T) {
	out := t.TempDir()
	cfg := writeProgram(t, "minic.yml", "class: Factorials\noutput_dir: "+out+"\n")

	c := compiler.Compiler{
		ShouldCompile: true,
		SourceFile:    writeProgram(t, "fact.yml", factorialProgram),
		ConfigFile:    cfg,
		Stderr:        &bytes.Buffer{},
	}
	if err := c.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "Factorials.j")); err != nil {
		t.Errorf("expected Factorials.j: %v", err)
	}
}

func TestRuntimeClassName(t *testing.T) {
	out := t.TempDir()
	c := compiler.Compiler{
		ShouldCompile: true,
		SourceFile:    writeProgram(t, "runtime.yml", factorialProgram),
		OutputDir:     out,
		Stderr:        &bytes.Buffer{},
	}
	if err := c.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	code, err := os.ReadFile(filepath.Join(out, "Runtime_.j"))
	if err != nil {
		t.Fatalf("read Runtime_.j: %v", err)
	}
	if !strings.Contains(string(code), "invokestatic Runtime_/fact(I)I") {
		t.Errorf("expected calls on Runtime_ in\n%s", code)
	}

	c.ClassName = jvm.RuntimeClass
	if err := c.Compile(); !errors.Is(err, jvm.ErrReservedClass) {
		t.Errorf("expected %v, got %v", jvm.ErrReservedClass, err)
	}

	cfg := writeProgram(t, "minic.yml", "class: Runtime\noutput_dir: "+out+"\n")
	c = compiler.Compiler{
		ShouldBuild: true,
		SourceFile:  writeProgram(t, "fact.yml", factorialProgram),
		ConfigFile:  cfg,
		Stderr:      &bytes.Buffer{},
	}
	if err := c.Compile(); !errors.Is(err, jvm.ErrReservedClass) {
		t.Errorf("expected %v from the config class, got %v", jvm.ErrReservedClass, err)
	}
}

func TestFailures(t *testing.T) {
	var stderr bytes.Buffer
	c := compiler.Compiler{
		ShouldInterpret: true,
		SourceFile:      writeProgram(t, "bad.yml", mismatchProgram),
		Stdout:          &bytes.Buffer{},
		Stderr:          &stderr,
	}
	err := c.Compile()
	if !errors.Is(err, diag.TypeMismatch) {
		t.Fatalf("expected a type mismatch, got %v", err)
	}
	if !strings.Contains(stderr.String(), "=== Type Errors ===") || strings.Contains(stderr.String(), "=== Runtime Error ===") {
		t.Errorf("expected only the type error header, got %q", stderr.String())
	}

	stderr.Reset()
	c = compiler.Compiler{
		ShouldInterpret: true,
		SourceFile:      writeProgram(t, "fact.yml", factorialProgram),
		Stdin:           strings.NewReader(""),
		Stdout:          &bytes.Buffer{},
		Stderr:          &stderr,
	}
	if err := c.Compile(); !errors.Is(err, diag.InputExhausted) {
		t.Errorf("expected input exhausted, got %v", err)
	}
	if !strings.Contains(stderr.String(), "=== Runtime Error ===") || strings.Contains(stderr.String(), "=== Type Errors ===") {
		t.Errorf("expected only the runtime error header, got %q", stderr.String())
	}

	// a limit error carries no diagnostic kind
	stderr.Reset()
	c = compiler.Compiler{
		ShouldInterpret: true,
		SourceFile:      writeProgram(t, "fact.yml", factorialProgram),
		ConfigFile:      writeProgram(t, "minic.yml", "interpreter:\n  max_depth: 2\n"),
		Stdin:           strings.NewReader("5\n"),
		Stdout:          &bytes.Buffer{},
		Stderr:          &stderr,
	}
	if err := c.Compile(); !errors.Is(err, interpreter.ErrMaxDepthExceeded) {
		t.Errorf("expected max depth exceeded, got %v", err)
	}
	if !strings.Contains(stderr.String(), "=== Runtime Error ===") {
		t.Errorf("expected the runtime error header, got %q", stderr.String())
	}

	c = compiler.Compiler{
		ShouldBuild: true,
		SourceFile:  writeProgram(t, "fact.yml", factorialProgram),
		OutputDir:   t.TempDir(),
		Stderr:      &bytes.Buffer{},
	}
	if err := c.Compile(); err == nil || !strings.Contains(err.Error(), "no assembler configured") {
		t.Errorf("expected a missing assembler error, got %v", err)
	}

	c = compiler.Compiler{
		ShouldInterpret: true,
		SourceFile:      filepath.Join(t.TempDir(), "missing.yml"),
		Stderr:          &bytes.Buffer{},
	}
	if err := c.Compile(); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
