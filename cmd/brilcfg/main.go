package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"brilcfg/internal/config"
	"brilcfg/internal/observ"
	"brilcfg/internal/trace"
	"brilcfg/internal/version"
)

// app carries per-invocation state shared by the subcommands.
type app struct {
	cfg    *config.Config
	tracer trace.Tracer
	timer  *observ.Timer
	color  bool

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "brilcfg",
		Short:         "Build control-flow graphs of Bril functions",
		Long:          `brilcfg partitions a Bril function into basic blocks and prints its control-flow edges`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("config", "", "path to brilcfg.toml (default: search upwards from the working directory)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")

	root.AddCommand(newCFGCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, tracer: trace.Nop, timer: observ.NewTimer()}
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.Execute()
	if cerr := a.tracer.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		reportError(stderr, err)
		return exitCode(err)
	}
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func reportError(w io.Writer, err error) {
	prefix := color.New(color.FgRed, color.Bold).Sprint("error:")
	_, _ = io.WriteString(w, prefix+" "+err.Error()+"\n")
}
