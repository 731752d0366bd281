package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"brilcfg/internal/stats"
	"brilcfg/internal/trace"
)

type statsOptions struct {
	jobs       int
	noCache    bool
	clearCache bool
}

func newStatsCmd(a *app) *cobra.Command {
	var opts statsOptions
	cmd := &cobra.Command{
		Use:   "stats [flags] program.json...",
		Short: "Report how often each instruction appears",
		Long: `stats counts the ops of every function in the given Bril programs and prints
their distribution, most frequent first. Several files are analyzed in parallel
and summed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStats(cmd, args, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "files analyzed concurrently (default from config, 0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the stats cache")
	cmd.Flags().BoolVar(&opts.clearCache, "clear-cache", false, "drop cached results before analyzing")
	return cmd
}

func (a *app) runStats(cmd *cobra.Command, paths []string, opts statsOptions) error {
	defer a.printTimings()

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "stats", 0)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	if opts.jobs < 0 {
		return fmt.Errorf("invalid --jobs %d (must be >= 0)", opts.jobs)
	}
	jobs := a.cfg.Jobs()
	if opts.jobs > 0 {
		jobs = opts.jobs
	}

	var cache *stats.DiskCache
	if a.cfg.Stats.Cache && !opts.noCache {
		dir, err := a.cfg.CacheDir()
		if err != nil {
			return fmt.Errorf("failed to resolve cache directory: %w", err)
		}
		cache, err = stats.OpenDiskCache(dir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if opts.clearCache {
			if err := cache.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
	}

	done := a.timer.Track("analyze")
	results, err := stats.Analyze(ctx, paths, stats.Options{Jobs: jobs, Cache: cache})
	if err != nil {
		done("failed")
		return err
	}
	cached := 0
	for _, r := range results {
		if r.Cached {
			cached++
		}
	}
	done(strconv.Itoa(len(results)) + " files, " + strconv.Itoa(cached) + " cached")

	return stats.WriteReport(a.stdout, stats.Merge(results))
}
