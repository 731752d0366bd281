package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"brilcfg/internal/bril"
	"brilcfg/internal/cfg"
	"brilcfg/internal/trace"
)

type cfgOptions struct {
	funcName      string
	allowDangling bool
	validate      bool
}

func newCFGCmd(a *app) *cobra.Command {
	var opts cfgOptions
	cmd := &cobra.Command{
		Use:   "cfg [flags] program.json",
		Short: "Print the basic blocks and control-flow edges of a function",
		Long: `cfg loads a Bril program in JSON form, builds the control-flow graph of its
first function (or the one named by --func) and prints every block followed by
the sorted list of edges. Returning blocks point at the virtual "exit" block.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("allow-dangling") {
				opts.allowDangling = a.cfg.CFG.AllowDangling
			}
			if !cmd.Flags().Changed("validate") {
				opts.validate = a.cfg.CFG.Validate
			}
			return a.runCFG(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.funcName, "func", "", "function to analyze (default: the first one)")
	cmd.Flags().BoolVar(&opts.allowDangling, "allow-dangling", false, "record jumps to undeclared labels instead of failing")
	cmd.Flags().BoolVar(&opts.validate, "validate", true, "check graph consistency after building")
	return cmd
}

func (a *app) runCFG(cmd *cobra.Command, path string, opts cfgOptions) error {
	defer a.printTimings()

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "cfg", 0)
	defer span.End(path)
	ctx = trace.WithSpan(ctx, span)

	done := a.timer.Track("load")
	prog, err := bril.Load(path)
	if err != nil {
		done("failed")
		return err
	}
	done(strconv.Itoa(len(prog.Functions)) + " functions")

	fn, err := prog.Func(opts.funcName)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	done = a.timer.Track("build")
	g, err := cfg.Build(ctx, fn, cfg.Options{
		AllowDangling: opts.allowDangling,
		Validate:      opts.validate,
	})
	if err != nil {
		done("failed")
		return fmt.Errorf("function %s: %w", fn.Name, err)
	}
	done(strconv.Itoa(g.Len()) + " blocks")
	span.WithExtra("blocks", strconv.Itoa(g.Len()))

	done = a.timer.Track("render")
	defer done("")
	return newPrinter(a.stdout, a.color).Graph(g)
}
