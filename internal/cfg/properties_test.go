package cfg_test

import (
	"context"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brilcfg/internal/bril"
	"brilcfg/internal/cfg"
)

// randomFunction produces a well-formed instruction list: every jump target
// is one of the declared labels.
func randomFunction(r *rand.Rand) []bril.Instr {
	nlabels := r.IntN(5)
	labels := make([]string, nlabels)
	for i := range labels {
		labels[i] = "L" + strconv.Itoa(i)
	}
	target := func() string { return labels[r.IntN(len(labels))] }

	var out []bril.Instr
	next := 0
	n := r.IntN(30)
	for range n {
		switch k := r.IntN(10); {
		case k < 2 && next < nlabels:
			out = append(out, bril.Label(labels[next]))
			next++
		case k == 2 && nlabels > 0:
			out = append(out, bril.Jump(target()))
		case k == 3 && nlabels > 0:
			out = append(out, br("c", target(), target()))
		case k == 4:
			out = append(out, bril.Return())
		default:
			out = append(out, printInstr("v"+strconv.Itoa(k)))
		}
	}
	for next < nlabels {
		out = append(out, bril.Label(labels[next]))
		next++
	}
	return out
}

func TestProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := range 500 {
		instrs := randomFunction(r)
		g, err := cfg.NewBuilder("f", cfg.Options{}).Build(context.Background(), instrs)
		require.NoError(t, err, "case %d", i)

		synth := 0
		covered := 0
		for _, bb := range g.Blocks {
			require.NotEmpty(t, bb.Instrs, "block %s", bb.Name)
			require.True(t, bb.Terminated(), "block %s", bb.Name)
			require.False(t, g.Has(cfg.Exit))

			for _, s := range bb.Successors() {
				assert.True(t, s == cfg.Exit || g.Has(s), "block %s: successor %s", bb.Name, s)
			}

			if bb.Name[0] == 'b' {
				synth++
				assert.Equal(t, "b"+strconv.Itoa(synth), bb.Name)
			}
			covered += len(bb.Instrs)
		}

		labels := 0
		for _, in := range instrs {
			if in.IsLabel() {
				labels++
			}
		}
		assert.GreaterOrEqual(t, covered, len(instrs)-labels, "case %d", i)

		require.NoError(t, cfg.Validate(g, cfg.Options{}), "case %d", i)
	}
}

func TestBuildEdges_Idempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 100 {
		g, err := cfg.NewBuilder("f", cfg.Options{}).Build(context.Background(), randomFunction(r))
		require.NoError(t, err)

		before := make(map[string][]string, g.Len())
		for _, bb := range g.Blocks {
			before[bb.Name] = bb.Successors()
		}
		edges := g.Edges()

		require.NoError(t, cfg.BuildEdges(g, cfg.Options{}))
		for _, bb := range g.Blocks {
			assert.Equal(t, before[bb.Name], bb.Successors())
		}
		assert.Equal(t, edges, g.Edges())
	}
}

func TestCompleteTerminators_Idempotent(t *testing.T) {
	g := build(t, printInstr("a"), bril.Label("L"), printInstr("b"))
	snapshot := make([]int, g.Len())
	for i, bb := range g.Blocks {
		snapshot[i] = len(bb.Instrs)
	}
	assert.Equal(t, 0, cfg.CompleteTerminators(g))
	for i, bb := range g.Blocks {
		assert.Len(t, bb.Instrs, snapshot[i])
	}
}
