package stats

import (
	"context"
	"io"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"

	"brilcfg/internal/bril"
	"brilcfg/internal/trace"
)

// Options tunes Analyze.
type Options struct {
	// Jobs bounds concurrent files; values below 1 mean one at a time.
	Jobs int
	// Cache is optional.
	Cache *DiskCache
}

// FileResult holds the counts of one file.
type FileResult struct {
	Path   string
	Counts Counts
	Cached bool
}

// Analyze counts ops in every file concurrently. Results keep the order of
// paths. The first failure cancels the remaining files.
func Analyze(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	t := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			span := trace.Begin(t, trace.ScopeItem, "stats:"+path, parent)
			res, err := analyzeFile(path, opts.Cache)
			if err != nil {
				span.End(err.Error())
				return err
			}
			span.WithExtra("ops", strconv.Itoa(res.Counts.Total())).
				WithExtra("cached", strconv.FormatBool(res.Cached)).
				End("")
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Merge sums the counts of all results.
func Merge(results []FileResult) Counts {
	total := make(Counts)
	for _, r := range results {
		total.Merge(r.Counts)
	}
	return total
}

func analyzeFile(path string, cache *DiskCache) (FileResult, error) {
	data, err := readFile(path)
	if err != nil {
		return FileResult{}, &bril.LoadError{Path: path, Stage: bril.StageRead, Err: err}
	}

	key := DigestOf(data)
	if counts, ok, err := cache.Get(key); err == nil && ok {
		return FileResult{Path: path, Counts: counts, Cached: true}, nil
	}

	prog, err := bril.Parse(data)
	if err != nil {
		return FileResult{}, &bril.LoadError{Path: path, Stage: bril.StageDecode, Err: err}
	}
	counts := Count(prog)
	// Cache writes are best-effort.
	_ = cache.Put(key, counts)
	return FileResult{Path: path, Counts: counts}, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
