package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"brilcfg/internal/config"
	"brilcfg/internal/trace"
)

// setup loads the project config, applies global flags over it and
// attaches the tracer to the command context.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if cfgPath != "" {
		a.cfg, err = config.Load(cfgPath)
	} else {
		a.cfg, err = config.Discover(".")
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if flags.Changed("color") {
		c, _ := flags.GetString("color")
		a.cfg.Output.Color = strings.ToLower(strings.TrimSpace(c))
	}
	if flags.Changed("timings") {
		a.cfg.Output.Timings, _ = flags.GetBool("timings")
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	switch a.cfg.Output.Color {
	case "on":
		a.color = true
	case "off":
		a.color = false
	default:
		a.color = isTerminal(a.stdout)
	}
	color.NoColor = !a.color

	return a.setupTracing(cmd)
}

// setupTracing inspects trace-related flags and initializes the tracer.
func (a *app) setupTracing(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	output, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	// an output without an explicit level means phase tracing
	if output != "" && !flags.Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	cfg := trace.Config{Level: level, OutputPath: output}
	if output == "" || output == "-" {
		// hide Close so the tracer never closes stderr
		cfg.Output = struct{ io.Writer }{a.stderr}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	a.tracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return nil
}

// printTimings writes the timer summary to stderr when --timings is on.
func (a *app) printTimings() {
	if a.cfg == nil || !a.cfg.Output.Timings {
		return
	}
	fmt.Fprint(a.stderr, a.timer.Summary())
}
