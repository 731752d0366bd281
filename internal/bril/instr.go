package bril

import "encoding/json"

// Kind enumerates the instruction families the tool distinguishes.
type Kind uint8

const (
	// KindOther is any op without dedicated handling.
	KindOther Kind = iota
	// KindLabel is a label marker, not an operation.
	KindLabel
	// KindConst loads a literal.
	KindConst
	// KindArith is add, sub, mul or div.
	KindArith
	// KindPrint prints its arguments.
	KindPrint
	// KindRet returns from the function.
	KindRet
	// KindJmp jumps unconditionally.
	KindJmp
	// KindBr branches on a condition.
	KindBr
)

// Op names of the terminators.
const (
	OpJmp = "jmp"
	OpBr  = "br"
	OpRet = "ret"
)

func (k Kind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindConst:
		return "const"
	case KindArith:
		return "arith"
	case KindPrint:
		return "print"
	case KindRet:
		return "ret"
	case KindJmp:
		return "jmp"
	case KindBr:
		return "br"
	default:
		return "other"
	}
}

// Instr is one record of a function body: a label marker or an operation.
// Kind selects which fields are meaningful.
type Instr struct {
	Kind Kind

	// Label is set for KindLabel only.
	Label string

	Op     string
	Dest   string
	Type   Type
	Args   []string
	Labels []string
	Funcs  []string
	// Value is the raw JSON literal of a const.
	Value json.RawMessage
}

// ClassifyOp maps an op name to its Kind.
func ClassifyOp(op string) Kind {
	switch op {
	case "const":
		return KindConst
	case "add", "sub", "mul", "div":
		return KindArith
	case "print":
		return KindPrint
	case OpRet:
		return KindRet
	case OpJmp:
		return KindJmp
	case OpBr:
		return KindBr
	default:
		return KindOther
	}
}

// IsLabel reports whether the record is a label marker.
func (in *Instr) IsLabel() bool {
	return in != nil && in.Kind == KindLabel
}

// IsTerminator reports whether the instruction ends a basic block.
func (in *Instr) IsTerminator() bool {
	if in == nil {
		return false
	}
	switch in.Kind {
	case KindJmp, KindBr, KindRet:
		return true
	default:
		return false
	}
}

// Jump builds an unconditional jump to target.
func Jump(target string) Instr {
	return Instr{Kind: KindJmp, Op: OpJmp, Labels: []string{target}}
}

// Return builds a return with no operands.
func Return() Instr {
	return Instr{Kind: KindRet, Op: OpRet, Args: []string{}}
}

// Label builds a label marker.
func Label(name string) Instr {
	return Instr{Kind: KindLabel, Label: name}
}

// Op builds an operation record, deriving Kind from op.
func Op(op string) Instr {
	return Instr{Kind: ClassifyOp(op), Op: op}
}
