package bril

import "strings"

// Format renders one instruction as a single line of text.
func Format(in Instr) string {
	switch in.Kind {
	case KindLabel:
		return "." + in.Label + ":"
	case KindConst:
		return in.Dest + " = const " + string(in.Value)
	case KindArith:
		return in.Dest + " = " + in.Op + " " + strings.Join(in.Args, " ")
	case KindPrint:
		return "print " + strings.Join(in.Args, " ")
	case KindRet:
		if len(in.Args) == 0 {
			return "ret"
		}
		return "ret " + strings.Join(in.Args, " ")
	case KindJmp:
		if len(in.Labels) == 0 {
			return in.Op
		}
		return "jmp " + in.Labels[0]
	case KindBr:
		if len(in.Args) == 0 || len(in.Labels) < 2 {
			return in.Op
		}
		return "br " + in.Args[0] + " " + in.Labels[0] + " " + in.Labels[1]
	case KindOther:
		return in.Op
	default:
		return in.Op
	}
}

// String implements fmt.Stringer.
func (in Instr) String() string {
	return Format(in)
}
