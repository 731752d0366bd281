package cfg

import (
	"slices"
	"strings"
)

// Graph is the block mapping of one function. Blocks keep creation order,
// which is program order.
type Graph struct {
	Func   string
	Blocks []*Block

	index map[string]int
}

func newGraph(fn string) *Graph {
	return &Graph{Func: fn, index: make(map[string]int)}
}

func (g *Graph) add(b *Block) error {
	if _, dup := g.index[b.Name]; dup {
		return &DuplicateBlockError{Name: b.Name}
	}
	g.index[b.Name] = len(g.Blocks)
	g.Blocks = append(g.Blocks, b)
	return nil
}

// Len returns the number of blocks.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Blocks)
}

// Lookup returns the block called name.
func (g *Graph) Lookup(name string) (*Block, bool) {
	if g == nil {
		return nil, false
	}
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.Blocks[i], true
}

// Has reports whether name is a block of g.
func (g *Graph) Has(name string) bool {
	_, ok := g.Lookup(name)
	return ok
}

// Names returns block names in creation order.
func (g *Graph) Names() []string {
	if g == nil {
		return nil
	}
	names := make([]string, len(g.Blocks))
	for i, b := range g.Blocks {
		names[i] = b.Name
	}
	return names
}

// Edge is a directed control-flow edge. To may be Exit.
type Edge struct {
	From string
	To   string
}

func (e Edge) String() string {
	return e.From + " -> " + e.To
}

// Edges returns every edge of g sorted by its "From -> To" text.
func (g *Graph) Edges() []Edge {
	if g == nil {
		return nil
	}
	var edges []Edge
	for _, b := range g.Blocks {
		for _, s := range b.succs {
			edges = append(edges, Edge{From: b.Name, To: s})
		}
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		return strings.Compare(a.String(), b.String())
	})
	return edges
}
