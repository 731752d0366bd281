package cfg

import "brilcfg/internal/bril"

// CompleteTerminators makes every block end in jmp, br or ret. An open
// block falls through to the next block in creation order; the last block
// returns. It reports how many instructions were inserted.
func CompleteTerminators(g *Graph) int {
	if g == nil {
		return 0
	}
	inserted := 0
	last := len(g.Blocks) - 1
	for i, bb := range g.Blocks {
		if bb.Terminated() {
			continue
		}
		if i == last {
			bb.Instrs = append(bb.Instrs, bril.Return())
		} else {
			bb.Instrs = append(bb.Instrs, bril.Jump(g.Blocks[i+1].Name))
		}
		inserted++
	}
	return inserted
}
