package compiler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"minic/internal/config"
	"minic/internal/console"
	"minic/pkg/ast"
	"minic/pkg/checker"
	"minic/pkg/codegen/assembly/jvm"
	"minic/pkg/color"
	"minic/pkg/diag"
	"minic/pkg/interpreter"
	"minic/pkg/scope"

	"github.com/charmbracelet/log"
)

type Compiler struct {
	Help            bool   // Show help message
	Verbose         bool   // Enable verbose output
	ShouldInterpret bool   // Whether to interpret the program
	ShouldCompile   bool   // Whether to generate Jasmin assembly
	ShouldBuild     bool   // Whether to run the external assembler on the generated files
	NoColor         bool   // Disable colored output
	SourceFile      string // Path to the AST document
	OutputDir       string // Directory for generated files, overrides the config
	ClassName       string // Name of the generated class, overrides the config
	ConfigFile      string // Optional minic.yml

	Stdin  io.Reader // program input, os.Stdin when nil
	Stdout io.Writer // program output, os.Stdout when nil
	Stderr io.Writer // diagnostics, os.Stderr when nil
}

// Compile loads and type-checks the program, then generates code for it and/or runs it based on the options set.
func (opts *Compiler) Compile() error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	log.Info("Processing file", "file", opts.SourceFile)

	prog, err := ast.DecodeFile(opts.SourceFile)
	if err != nil {
		fmt.Fprintln(opts.stderr(), color.BrightRedText("=== Syntax Errors ==="))
		fmt.Fprintln(opts.stderr(), err)
		return fmt.Errorf("loading program failed: %w", err)
	}

	log.Info("Checking program", "functions", len(prog.Functions))
	sigs, err := checker.Check(prog)
	if err != nil {
		opts.report(err)
		return fmt.Errorf("type checking failed: %w", err)
	}

	if opts.Verbose {
		opts.printSignatures(sigs)
	}

	if opts.ShouldCompile || opts.ShouldBuild {
		if err := opts.generate(cfg, prog, sigs); err != nil {
			return err
		}
	}

	if opts.ShouldInterpret {
		if err := opts.interpret(cfg, prog); err != nil {
			opts.report(err)
			return fmt.Errorf("interpretation failed: %w", err)
		}
	}

	return nil
}

// config loads the config file, if any, and applies the flag overrides
func (opts *Compiler) config() (*config.Config, error) {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if opts.ClassName != "" {
		cfg.Class = opts.ClassName
	}
	if cfg.Class == "" {
		base := filepath.Base(opts.SourceFile)
		cfg.Class = jvm.ClassName(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if (opts.ShouldCompile || opts.ShouldBuild) && cfg.Class == jvm.RuntimeClass {
		return nil, fmt.Errorf("class %q: %w", cfg.Class, jvm.ErrReservedClass)
	}
	return cfg, nil
}

func (opts *Compiler) generate(cfg *config.Config, prog *ast.Program, sigs *scope.Signatures) error {
	jopts := []jvm.Option{jvm.WithOutputDir(cfg.OutputDir)}
	if opts.ShouldBuild {
		if len(cfg.Assembler) == 0 {
			return errors.New("no assembler configured, set assembler in the config file")
		}
		jopts = append(jopts, jvm.WithAssembler(cfg.Assembler...))
	}

	arch := jvm.NewJVM(prog, sigs, cfg.Class, jopts...)
	if err := arch.Generate(); err != nil {
		return fmt.Errorf("assembly generation failed: %w", err)
	}

	if opts.Verbose {
		fmt.Fprintln(opts.stderr(), color.GreenText("\n=== Generated Jasmin code ==="))
		fmt.Fprintln(opts.stderr(), arch.GetCode())
	}

	if err := arch.Build(); err != nil {
		return fmt.Errorf("assembly build failed: %w", err)
	}
	return nil
}

func (opts *Compiler) interpret(cfg *config.Config, prog *ast.Program) error {
	iopts := []interpreter.Option{
		interpreter.WithWriter(opts.stdout()),
		interpreter.WithMaxSteps(cfg.Interpreter.MaxSteps),
		interpreter.WithMaxDepth(cfg.Interpreter.MaxDepth),
	}

	switch {
	case opts.Stdin != nil:
		iopts = append(iopts, interpreter.WithInput(opts.Stdin))
	case cfg.Interpreter.Interactive && console.StdinIsTerminal():
		c := console.New("> ")
		defer c.Close()
		iopts = append(iopts, interpreter.WithReader(c))
	default:
		iopts = append(iopts, interpreter.WithInput(os.Stdin))
	}

	if opts.Verbose {
		fmt.Fprintln(opts.stderr(), color.GreenText("\n=== Program Output ==="))
	}

	v, err := interpreter.NewInterpreter(prog, iopts...).Run()
	if err != nil {
		return err
	}
	log.Info("Program finished", "result", v)
	return nil
}

// report prints err under a banner picked by its kind
func (opts *Compiler) report(err error) {
	banner := "=== Runtime Error ==="
	if kind, ok := diag.KindOf(err); ok && kind.IsStatic() {
		banner = "=== Type Errors ==="
	}
	fmt.Fprintln(opts.stderr(), color.BrightRedText(banner))
	fmt.Fprintln(opts.stderr(), diag.Render(err))
}

func (opts *Compiler) printSignatures(sigs *scope.Signatures) {
	fmt.Fprintln(opts.stderr(), color.GreenText("\n=== Functions ==="))
	for _, name := range sigs.Names() {
		sig, _ := sigs.Lookup(name)
		kind := color.BlueText("user")
		if scope.IsBuiltin(name) {
			kind = color.GrayText("builtin")
		}
		fmt.Fprintf(opts.stderr(), "%s %s %s\n", color.CyanText(name), color.YellowText(sig.String()), kind)
	}
}

func (opts *Compiler) stdout() io.Writer {
	if opts.Stdout != nil {
		return opts.Stdout
	}
	return os.Stdout
}

func (opts *Compiler) stderr() io.Writer {
	if opts.Stderr != nil {
		return opts.Stderr
	}
	return os.Stderr
}
