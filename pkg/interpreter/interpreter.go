package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"minic/pkg/ast"
	"minic/pkg/diag"
	"minic/pkg/scope"
)

// LineReader supplies the lines consumed by readInt and readDouble.
// ReadLine returns io.EOF once the input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// Interpreter executes a type-checked program by walking its tree.
type Interpreter struct {
	funcs map[string]*ast.FunctionDef // function name -> definition

	stack []*Frame // active calls, innermost last

	out io.Writer  // output writer for print
	in  LineReader // input for read

	maxSteps int // maximum statements executed (0 = unlimited)
	steps    int // statements executed
	maxDepth int // maximum nested calls (0 = unlimited)
}

type Option func(*Interpreter)

// WithWriter sets the output writer for print builtins
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithReader sets the line source for read builtins
func WithReader(r LineReader) Option {
	return func(i *Interpreter) { i.in = r }
}

// WithInput reads lines for the read builtins from r
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) { i.in = NewLineScanner(r) }
}

// WithMaxSteps sets a maximum number of executed statements before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithMaxDepth sets a maximum call depth before returning ErrMaxDepthExceeded
func WithMaxDepth(n int) Option {
	return func(i *Interpreter) { i.maxDepth = n }
}

// NewInterpreter creates a new Interpreter instance. prog must already have passed the checker.
func NewInterpreter(prog *ast.Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		funcs: make(map[string]*ast.FunctionDef, len(prog.Functions)),
		stack: make([]*Frame, 0, 8),
	}
	for _, fn := range prog.Functions {
		it.funcs[fn.Name] = fn
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}
	if it.in == nil {
		it.in = NewLineScanner(os.Stdin)
	}

	return it
}

// Run invokes main and returns its result
func (i *Interpreter) Run() (Value, error) {
	return i.Call("main")
}

// Call invokes a user function by name with already evaluated arguments
func (i *Interpreter) Call(name string, args ...Value) (Value, error) {
	i.steps = 0
	i.stack = i.stack[:0]
	return i.call(name, args)
}

// Depth returns the number of active calls
func (i *Interpreter) Depth() int {
	return len(i.stack)
}

// call runs fn in a brand new scope that only holds its parameters
func (i *Interpreter) call(name string, args []Value) (Value, error) {
	if scope.IsBuiltin(name) {
		return i.callBuiltin(name, args)
	}

	fn, ok := i.funcs[name]
	if !ok {
		return Value{}, diag.Errorf(diag.UndeclaredFunction, "function %q is not defined", name)
	}
	if len(args) != len(fn.Params) {
		return Value{}, fmt.Errorf("%w: %s called with %d arguments, wants %d",
			ErrMalformedProgram, name, len(args), len(fn.Params))
	}
	if i.maxDepth > 0 && len(i.stack) >= i.maxDepth {
		return Value{}, i.trace(fmt.Errorf("%w (%d) calling %s", ErrMaxDepthExceeded, i.maxDepth, name))
	}

	env := scope.New[Value]()
	env.Push()
	for k, p := range fn.Params {
		if err := env.Declare(p.Name, args[k]); err != nil {
			return Value{}, err
		}
	}

	i.stack = append(i.stack, &Frame{FuncName: name})
	defer func() { i.stack = i.stack[:len(i.stack)-1] }()

	sig, err := i.execStmts(env, fn.Body)
	if err != nil {
		return Value{}, i.trace(err)
	}
	if sig.Returned() {
		return sig.Value(), nil
	}
	return ZeroValue(fn.Return), nil
}

// tick counts one executed statement
func (i *Interpreter) tick() error {
	i.steps++
	if i.maxSteps > 0 && i.steps > i.maxSteps {
		return fmt.Errorf("%w (%d)", ErrMaxStepsExceeded, i.maxSteps)
	}
	return nil
}

// TraceError wraps a runtime failure with the call stack at the point it happened.
type TraceError struct {
	Err   error
	Trace []string // function names, outermost first
}

const maxTraceFrames = 8

func (e *TraceError) Error() string {
	frames := e.Trace
	if len(frames) > maxTraceFrames {
		frames = append([]string{"..."}, frames[len(frames)-maxTraceFrames:]...)
	}
	return fmt.Sprintf("%v (call stack: %s)", e.Err, strings.Join(frames, " > "))
}

func (e *TraceError) Unwrap() error {
	return e.Err
}

// trace attaches the current call stack once, at the innermost failing call
func (i *Interpreter) trace(err error) error {
	var te *TraceError
	if errors.As(err, &te) {
		return err
	}
	names := make([]string, len(i.stack))
	for k, f := range i.stack {
		names[k] = f.FuncName
	}
	return &TraceError{Err: err, Trace: names}
}

// LineScanner is a LineReader over any io.Reader.
type LineScanner struct {
	sc *bufio.Scanner
}

// NewLineScanner creates a LineScanner reading from r
func NewLineScanner(r io.Reader) *LineScanner {
	return &LineScanner{sc: bufio.NewScanner(r)}
}

func (s *LineScanner) ReadLine() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

var (
	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
	ErrMaxDepthExceeded = errors.New("maximum call depth exceeded")
	ErrMalformedProgram = errors.New("program was not type-checked")
)
