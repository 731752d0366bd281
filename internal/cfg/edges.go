package cfg

import (
	"slices"

	"brilcfg/internal/bril"
)

// BuildEdges sets every block's successors from its last instruction.
// All blocks must already be terminated. Successors are recomputed from
// scratch, so running it again yields the same sets.
func BuildEdges(g *Graph, opts Options) error {
	if g == nil {
		return nil
	}
	succs := make([][]string, len(g.Blocks))
	for i, bb := range g.Blocks {
		s, err := successorsOf(g, bb, opts.AllowDangling)
		if err != nil {
			return err
		}
		succs[i] = s
	}
	for i, bb := range g.Blocks {
		bb.succs = succs[i]
	}
	return nil
}

func successorsOf(g *Graph, bb *Block, allowDangling bool) ([]string, error) {
	last := bb.Terminator()
	if last == nil {
		return nil, &MalformedInstructionError{Block: bb.Name, Index: -1, Reason: "block has no instructions"}
	}
	idx := len(bb.Instrs) - 1

	switch last.Kind {
	case bril.KindJmp, bril.KindBr:
		if len(last.Labels) == 0 {
			return nil, &MalformedInstructionError{Block: bb.Name, Index: idx, Op: last.Op, Reason: "missing labels"}
		}
		out := make([]string, 0, len(last.Labels))
		for _, l := range last.Labels {
			if !allowDangling && !g.Has(l) {
				return nil, &DanglingLabelError{Block: bb.Name, Label: l}
			}
			out = append(out, l)
		}
		slices.Sort(out)
		return slices.Compact(out), nil
	case bril.KindRet:
		return []string{Exit}, nil
	default:
		return nil, &MalformedInstructionError{Block: bb.Name, Index: idx, Op: last.Op, Reason: "block does not end in a terminator"}
	}
}
