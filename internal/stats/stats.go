// Package stats tabulates how often each op appears in Bril programs.
package stats

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"brilcfg/internal/bril"
)

// Counts maps an op name to its number of occurrences.
type Counts map[string]int

// Count tallies the ops of every function in p. Labels are not ops.
func Count(p *bril.Program) Counts {
	c := make(Counts)
	if p == nil {
		return c
	}
	for i := range p.Functions {
		for j := range p.Functions[i].Instrs {
			in := &p.Functions[i].Instrs[j]
			if in.IsLabel() || in.Op == "" {
				continue
			}
			c[in.Op]++
		}
	}
	return c
}

// Merge adds o into c.
func (c Counts) Merge(o Counts) {
	for op, n := range o {
		c[op] += n
	}
}

// Total returns the number of ops counted.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Entry is one row of the distribution.
type Entry struct {
	Op      string
	Count   int
	Percent float64
}

// Entries returns the distribution ordered by count descending, then op name.
func (c Counts) Entries() []Entry {
	total := c.Total()
	out := make([]Entry, 0, len(c))
	for op, n := range c {
		e := Entry{Op: op, Count: n}
		if total > 0 {
			e.Percent = float64(n) / float64(total) * 100
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Op, b.Op)
	})
	return out
}

const (
	opColumn  = 12
	ruleWidth = 40
)

// WriteReport prints the distribution table.
func WriteReport(w io.Writer, c Counts) error {
	var sb strings.Builder
	sb.WriteString("Instruction Distribution Analysis\n")
	sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	fmt.Fprintf(&sb, "Total instructions: %d\n", c.Total())
	sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	for _, e := range c.Entries() {
		fmt.Fprintf(&sb, "%s | %4d | %6.2f%%\n", runewidth.FillRight(e.Op, opColumn), e.Count, e.Percent)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
