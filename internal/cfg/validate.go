package cfg

import (
	"errors"
	"fmt"
	"slices"

	"brilcfg/internal/bril"
)

// Validate checks a finished graph. It returns every violation joined
// into one error, or nil.
func Validate(g *Graph, opts Options) error {
	if g == nil {
		return nil
	}
	var errs []error

	if g.Has(Exit) {
		errs = append(errs, &MalformedInstructionError{Block: Exit, Index: -1, Reason: "label name is reserved for the exit sentinel"})
	}

	for _, bb := range g.Blocks {
		if len(bb.Instrs) == 0 {
			errs = append(errs, &MalformedInstructionError{Block: bb.Name, Index: -1, Reason: "block has no instructions"})
			continue
		}
		for i := range bb.Instrs {
			in := &bb.Instrs[i]
			if in.IsLabel() {
				errs = append(errs, &MalformedInstructionError{Block: bb.Name, Index: i, Op: "label", Reason: fmt.Sprintf("label %q inside a block", in.Label)})
			}
			if i < len(bb.Instrs)-1 && in.IsTerminator() {
				errs = append(errs, &MalformedInstructionError{Block: bb.Name, Index: i, Op: in.Op, Reason: "terminator in the middle of a block"})
			}
		}
		if !bb.Terminated() {
			last := bb.Terminator()
			errs = append(errs, &MalformedInstructionError{Block: bb.Name, Index: len(bb.Instrs) - 1, Op: last.Op, Reason: "block does not end in a terminator"})
			continue
		}
		if err := validateSuccessors(g, bb, opts); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateSuccessors(g *Graph, bb *Block, opts Options) error {
	var errs []error
	want, err := successorsOf(g, bb, true)
	if err != nil {
		return err
	}
	if !slices.Equal(want, bb.succs) {
		errs = append(errs, fmt.Errorf("block %q: successors %v do not match terminator %q", bb.Name, bb.succs, bril.Format(bb.Instrs[len(bb.Instrs)-1])))
	}
	if opts.AllowDangling {
		return errors.Join(errs...)
	}
	for _, s := range bb.succs {
		if s != Exit && !g.Has(s) {
			errs = append(errs, &DanglingLabelError{Block: bb.Name, Label: s})
		}
	}
	return errors.Join(errs...)
}
