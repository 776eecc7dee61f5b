package jvm

import (
	"math"
	"strconv"

	"minic/pkg/ast"
)

type Opcode string

// List of emitted JVM instructions
const (
	OpIconstM1 Opcode = "iconst_m1"
	OpIconst0  Opcode = "iconst_0"
	OpIconst1  Opcode = "iconst_1"
	OpIconst2  Opcode = "iconst_2"
	OpIconst3  Opcode = "iconst_3"
	OpIconst4  Opcode = "iconst_4"
	OpIconst5  Opcode = "iconst_5"
	OpBipush   Opcode = "bipush"
	OpSipush   Opcode = "sipush"
	OpLdc      Opcode = "ldc"
	OpLdc2W    Opcode = "ldc2_w"
	OpDconst0  Opcode = "dconst_0"
	OpDconst1  Opcode = "dconst_1"

	OpIload  Opcode = "iload"
	OpDload  Opcode = "dload"
	OpIstore Opcode = "istore"
	OpDstore Opcode = "dstore"
	OpIinc   Opcode = "iinc"

	OpIadd Opcode = "iadd"
	OpIsub Opcode = "isub"
	OpImul Opcode = "imul"
	OpIdiv Opcode = "idiv"
	OpDadd Opcode = "dadd"
	OpDsub Opcode = "dsub"
	OpDmul Opcode = "dmul"
	OpDdiv Opcode = "ddiv"

	OpDcmpg Opcode = "dcmpg"
	OpDcmpl Opcode = "dcmpl"

	OpIfeq     Opcode = "ifeq"
	OpIfne     Opcode = "ifne"
	OpIflt     Opcode = "iflt"
	OpIfgt     Opcode = "ifgt"
	OpIfle     Opcode = "ifle"
	OpIfge     Opcode = "ifge"
	OpIfIcmpeq Opcode = "if_icmpeq"
	OpIfIcmpne Opcode = "if_icmpne"
	OpIfIcmplt Opcode = "if_icmplt"
	OpIfIcmpgt Opcode = "if_icmpgt"
	OpIfIcmple Opcode = "if_icmple"
	OpIfIcmpge Opcode = "if_icmpge"
	OpGoto     Opcode = "goto"

	OpPop  Opcode = "pop"
	OpPop2 Opcode = "pop2"
	OpDup  Opcode = "dup"
	OpDup2 Opcode = "dup2"

	OpInvokestatic Opcode = "invokestatic"
	OpIreturn      Opcode = "ireturn"
	OpDreturn      Opcode = "dreturn"
	OpReturn       Opcode = "return"
)

// stackEffect is the change in operand stack words caused by each opcode.
// invokestatic is missing: its effect depends on the descriptor.
var stackEffect = map[Opcode]int{
	OpIconstM1: 1, OpIconst0: 1, OpIconst1: 1, OpIconst2: 1, OpIconst3: 1, OpIconst4: 1, OpIconst5: 1,
	OpBipush: 1, OpSipush: 1, OpLdc: 1,
	OpLdc2W: 2, OpDconst0: 2, OpDconst1: 2,

	OpIload: 1, OpDload: 2, OpIstore: -1, OpDstore: -2, OpIinc: 0,

	OpIadd: -1, OpIsub: -1, OpImul: -1, OpIdiv: -1,
	OpDadd: -2, OpDsub: -2, OpDmul: -2, OpDdiv: -2,
	OpDcmpg: -3, OpDcmpl: -3,

	OpIfeq: -1, OpIfne: -1, OpIflt: -1, OpIfgt: -1, OpIfle: -1, OpIfge: -1,
	OpIfIcmpeq: -2, OpIfIcmpne: -2, OpIfIcmplt: -2, OpIfIcmpgt: -2, OpIfIcmple: -2, OpIfIcmpge: -2,
	OpGoto: 0,

	OpPop: -1, OpPop2: -2, OpDup: 1, OpDup2: 2,

	OpIreturn: -1, OpDreturn: -2, OpReturn: 0,
}

// Instruction is one line of a method body.
type Instruction struct {
	Op   Opcode
	Args []string
}

// String returns the Jasmin text of the instruction
func (i Instruction) String() string {
	s := string(i.Op)
	for _, a := range i.Args {
		s += " " + a
	}
	return s
}

// size is the number of stack words and local slots a value of type t occupies
func size(t ast.Type) int {
	switch t {
	case ast.Double:
		return 2
	case ast.Void:
		return 0
	default:
		return 1
	}
}

// descriptor is the JVM type descriptor of t
func descriptor(t ast.Type) string {
	switch t {
	case ast.Int:
		return "I"
	case ast.Double:
		return "D"
	case ast.Bool:
		return "Z"
	default:
		return "V"
	}
}

// methodDescriptor renders (ID)Z style descriptors
func methodDescriptor(params []ast.Type, ret ast.Type) string {
	s := "("
	for _, p := range params {
		s += descriptor(p)
	}
	return s + ")" + descriptor(ret)
}

// arithmeticOps maps an operator to its int and double opcode
var arithmeticOps = map[ast.BinaryOp][2]Opcode{
	ast.Add: {OpIadd, OpDadd},
	ast.Sub: {OpIsub, OpDsub},
	ast.Mul: {OpImul, OpDmul},
	ast.Div: {OpIdiv, OpDdiv},
}

// intCompareOps branch when the comparison of two ints holds
var intCompareOps = map[ast.BinaryOp]Opcode{
	ast.Lt: OpIfIcmplt,
	ast.Gt: OpIfIcmpgt,
	ast.Le: OpIfIcmple,
	ast.Ge: OpIfIcmpge,
	ast.Eq: OpIfIcmpeq,
	ast.Ne: OpIfIcmpne,
}

// zeroCompareOps branch on the int left by dcmpg/dcmpl
var zeroCompareOps = map[ast.BinaryOp]Opcode{
	ast.Lt: OpIflt,
	ast.Gt: OpIfgt,
	ast.Le: OpIfle,
	ast.Ge: OpIfge,
	ast.Eq: OpIfeq,
	ast.Ne: OpIfne,
}

// doubleCompare picks the dcmp variant that makes NaN compare false for < <= > >= and ==
func doubleCompare(op ast.BinaryOp) Opcode {
	if op == ast.Lt || op == ast.Le {
		return OpDcmpg
	}
	return OpDcmpl
}

var smallInts = [...]Opcode{OpIconst0, OpIconst1, OpIconst2, OpIconst3, OpIconst4, OpIconst5}

// intConst picks the shortest instruction pushing v
func intConst(v int32) Instruction {
	switch {
	case v == -1:
		return Instruction{Op: OpIconstM1}
	case v >= 0 && v <= 5:
		return Instruction{Op: smallInts[v]}
	case v >= -128 && v <= 127:
		return Instruction{Op: OpBipush, Args: []string{strconv.Itoa(int(v))}}
	case v >= -32768 && v <= 32767:
		return Instruction{Op: OpSipush, Args: []string{strconv.Itoa(int(v))}}
	default:
		return Instruction{Op: OpLdc, Args: []string{strconv.Itoa(int(v))}}
	}
}

// doubleConst pushes v; +0.0 and 1.0 have dedicated opcodes
func doubleConst(v float64) Instruction {
	switch {
	case v == 0 && !math.Signbit(v):
		return Instruction{Op: OpDconst0}
	case v == 1:
		return Instruction{Op: OpDconst1}
	default:
		return Instruction{Op: OpLdc2W, Args: []string{doubleLiteral(v)}}
	}
}
