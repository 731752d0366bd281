package cfg

import (
	"context"
	"strconv"

	"brilcfg/internal/bril"
	"brilcfg/internal/trace"
)

// Options tunes a build.
type Options struct {
	// AllowDangling records jump targets that name no block instead of
	// failing with DanglingLabelError.
	AllowDangling bool
	// Validate runs the consistency check after edges are built.
	Validate bool
}

// Builder turns the instruction list of one function into a Graph.
// A Builder is good for exactly one build.
type Builder struct {
	opts    Options
	fn      string
	graph   *Graph
	counter int
	used    bool
}

// NewBuilder returns a Builder for the function called fn.
func NewBuilder(fn string, opts Options) *Builder {
	return &Builder{opts: opts, fn: fn}
}

// Build partitions fn into blocks, terminates every block and computes edges.
func Build(ctx context.Context, fn *bril.Function, opts Options) (*Graph, error) {
	if fn == nil {
		return newGraph(""), nil
	}
	return NewBuilder(fn.Name, opts).Build(ctx, fn.Instrs)
}

// Build runs the pipeline over instrs.
func (b *Builder) Build(ctx context.Context, instrs []bril.Instr) (*Graph, error) {
	if b.used {
		return nil, ErrBuilderReused
	}
	b.used = true
	b.graph = newGraph(b.fn)

	t := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	span := trace.Begin(t, trace.ScopePass, "form-blocks", parent)
	if err := b.formBlocks(instrs); err != nil {
		span.End(err.Error())
		return nil, err
	}
	span.WithExtra("instrs", strconv.Itoa(len(instrs))).
		WithExtra("blocks", strconv.Itoa(b.graph.Len())).
		End("")

	span = trace.Begin(t, trace.ScopePass, "complete-terminators", parent)
	inserted := CompleteTerminators(b.graph)
	span.WithExtra("inserted", strconv.Itoa(inserted)).End("")

	span = trace.Begin(t, trace.ScopePass, "build-edges", parent)
	if err := BuildEdges(b.graph, b.opts); err != nil {
		span.End(err.Error())
		return nil, err
	}
	span.WithExtra("edges", strconv.Itoa(len(b.graph.Edges()))).End("")

	if b.opts.Validate {
		span = trace.Begin(t, trace.ScopePass, "validate", parent)
		if err := Validate(b.graph, b.opts); err != nil {
			span.End(err.Error())
			return nil, err
		}
		span.End("")
	}

	for _, bb := range b.graph.Blocks {
		trace.Point(t, trace.ScopeItem, "block", bb.Name, parent)
	}
	return b.graph, nil
}

// formBlocks splits instrs at labels and after terminators.
func (b *Builder) formBlocks(instrs []bril.Instr) error {
	var cur []bril.Instr
	for i := range instrs {
		in := instrs[i]
		if in.IsLabel() {
			if len(cur) > 0 {
				if err := b.flush(cur); err != nil {
					return err
				}
			}
			cur = []bril.Instr{in}
			continue
		}
		cur = append(cur, in)
		if in.IsTerminator() {
			if err := b.flush(cur); err != nil {
				return err
			}
			cur = nil
		}
	}
	if len(cur) > 0 {
		return b.flush(cur)
	}
	return nil
}

// flush turns one accumulation into a block. A leading label names the
// block and is dropped; otherwise the next bN is drawn.
func (b *Builder) flush(cur []bril.Instr) error {
	var name string
	body := cur
	if cur[0].IsLabel() {
		name = cur[0].Label
		body = cur[1:]
		if name == Exit {
			return &MalformedInstructionError{
				Block:  name,
				Index:  -1,
				Reason: "label name is reserved for the exit sentinel",
			}
		}
	} else {
		name = b.nextName()
	}
	return b.graph.add(&Block{Name: name, Instrs: append([]bril.Instr(nil), body...)})
}

func (b *Builder) nextName() string {
	b.counter++
	return "b" + strconv.Itoa(b.counter)
}
