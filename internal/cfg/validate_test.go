package cfg

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brilcfg/internal/bril"
	"brilcfg/internal/trace"
)

func graphOf(t *testing.T, blocks ...*Block) *Graph {
	t.Helper()
	g := newGraph("test")
	for _, b := range blocks {
		require.NoError(t, g.add(b))
	}
	return g
}

func TestValidate_Unterminated(t *testing.T) {
	g := graphOf(t,
		&Block{Name: "b1", Instrs: []bril.Instr{bril.Op("nop")}},
		&Block{Name: "b2"},
	)

	err := Validate(g, Options{})
	require.Error(t, err)

	var malformed *MalformedInstructionError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), `block "b1": instruction 0 (nop): block does not end in a terminator`)
	assert.Contains(t, err.Error(), `block "b2": block has no instructions`)
}

func TestValidate_StaleSuccessors(t *testing.T) {
	g := graphOf(t,
		&Block{Name: "b1", Instrs: []bril.Instr{bril.Jump("L")}},
		&Block{Name: "L", Instrs: []bril.Instr{bril.Return()}},
	)
	require.NoError(t, BuildEdges(g, Options{}))
	require.NoError(t, Validate(g, Options{}))

	g.Blocks[0].succs = []string{"elsewhere"}
	err := Validate(g, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match terminator")

	var dangling *DanglingLabelError
	assert.True(t, errors.As(err, &dangling))
}

func TestValidate_TerminatorInMiddle(t *testing.T) {
	g := graphOf(t, &Block{Name: "b1", Instrs: []bril.Instr{bril.Return(), bril.Return()}})
	require.NoError(t, BuildEdges(g, Options{}))
	err := Validate(g, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminator in the middle of a block")
}

func TestValidate_LabelInsideBlock(t *testing.T) {
	g := graphOf(t, &Block{Name: "b1", Instrs: []bril.Instr{bril.Label("x"), bril.Return()}})
	require.NoError(t, BuildEdges(g, Options{}))
	err := Validate(g, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `label "x" inside a block`)
}

func TestBuildEdges_RejectsUnterminated(t *testing.T) {
	g := graphOf(t, &Block{Name: "b1", Instrs: []bril.Instr{bril.Op("nop")}})
	err := BuildEdges(g, Options{})
	var malformed *MalformedInstructionError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "nop", malformed.Op)
	assert.Nil(t, g.Blocks[0].succs)
}

func TestBuild_EmitsPassSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	_, err := NewBuilder("main", Options{Validate: true}).Build(ctx, []bril.Instr{bril.Op("nop")})
	require.NoError(t, err)

	out := buf.String()
	for _, name := range []string{"form-blocks", "complete-terminators", "build-edges", "validate"} {
		assert.Contains(t, out, "→ "+name)
		assert.Contains(t, out, "← "+name)
	}
	assert.Contains(t, out, "inserted=1")
	assert.Contains(t, out, "block (b1)")
}
