package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"brilcfg/internal/bril"
	"brilcfg/internal/cfg"
)

const ruleWidth = 40

// printer renders a graph as the block listing followed by the edge list.
type printer struct {
	w       io.Writer
	heading lipgloss.Style
	block   *color.Color
	exit    *color.Color
}

func newPrinter(w io.Writer, useColor bool) *printer {
	r := lipgloss.NewRenderer(w)
	if useColor {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &printer{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		block:   color.New(color.FgCyan, color.Bold),
		exit:    color.New(color.FgMagenta),
	}
}

func (p *printer) section(sb *strings.Builder, title string) {
	sb.WriteString(p.heading.Render(title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

func (p *printer) name(n string) string {
	if n == cfg.Exit {
		return p.exit.Sprint(n)
	}
	return p.block.Sprint(n)
}

// Graph writes every block with its instructions, then the sorted edges.
func (p *printer) Graph(g *cfg.Graph) error {
	var sb strings.Builder

	p.section(&sb, "Basic Blocks:")
	sb.WriteString("\n")
	for _, b := range g.Blocks {
		fmt.Fprintf(&sb, "Block '%s':\n", p.name(b.Name))
		for i := range b.Instrs {
			sb.WriteString("  ")
			sb.WriteString(bril.Format(b.Instrs[i]))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	p.section(&sb, fmt.Sprintf("Control Flow Graph (%s):", g.Func))
	for _, e := range g.Edges() {
		fmt.Fprintf(&sb, "%s -> %s\n", p.name(e.From), p.name(e.To))
	}

	_, err := io.WriteString(p.w, sb.String())
	return err
}
