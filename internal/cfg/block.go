package cfg

import (
	"slices"

	"brilcfg/internal/bril"
)

// Exit is the virtual successor of every block that returns.
// It never names a real block.
const Exit = "exit"

// Block is a maximal straight-line run of instructions.
type Block struct {
	Name   string
	Instrs []bril.Instr

	// succs is written by BuildEdges only.
	succs []string
}

// Successors returns the block's successor names in sorted order.
func (b *Block) Successors() []string {
	if b == nil {
		return nil
	}
	return slices.Clone(b.succs)
}

// HasSuccessor reports whether name is a successor of b.
func (b *Block) HasSuccessor(name string) bool {
	if b == nil {
		return false
	}
	_, ok := slices.BinarySearch(b.succs, name)
	return ok
}

// Terminator returns the last instruction, or nil for an empty block.
func (b *Block) Terminator() *bril.Instr {
	if b == nil || len(b.Instrs) == 0 {
		return nil
	}
	return &b.Instrs[len(b.Instrs)-1]
}

// Terminated reports whether the block ends with jmp, br or ret.
func (b *Block) Terminated() bool {
	return b.Terminator().IsTerminator()
}
