package stats_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brilcfg/internal/bril"
	"brilcfg/internal/stats"
)

const addProgram = `{"functions":[{"name":"main","instrs":[
  {"op":"const","dest":"a","type":"int","value":1},
  {"op":"const","dest":"b","type":"int","value":2},
  {"op":"add","dest":"c","type":"int","args":["a","b"]},
  {"label":"done"},
  {"op":"print","args":["c"]}
]}]}`

const twoFuncProgram = `{"functions":[
  {"name":"main","instrs":[{"op":"print","args":["x"]},{"op":"ret"}]},
  {"name":"g","instrs":[{"op":"print","args":["y"]}]}
]}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestCount(t *testing.T) {
	prog, err := bril.Parse([]byte(addProgram))
	require.NoError(t, err)

	c := stats.Count(prog)
	assert.Equal(t, stats.Counts{"const": 2, "add": 1, "print": 1}, c)
	assert.Equal(t, 4, c.Total())

	assert.Empty(t, stats.Count(nil))
}

func TestEntriesOrdering(t *testing.T) {
	c := stats.Counts{"print": 1, "const": 2, "add": 1, "br": 4}
	entries := c.Entries()

	var ops []string
	for _, e := range entries {
		ops = append(ops, e.Op)
	}
	assert.Equal(t, []string{"br", "const", "add", "print"}, ops)
	assert.InDelta(t, 50.0, entries[0].Percent, 1e-9)
	assert.InDelta(t, 12.5, entries[3].Percent, 1e-9)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, stats.WriteReport(&buf, stats.Counts{"const": 2, "add": 1, "print": 1}))

	want := "Instruction Distribution Analysis\n" +
		"========================================\n" +
		"Total instructions: 4\n" +
		"----------------------------------------\n" +
		"const        |    2 |  50.00%\n" +
		"add          |    1 |  25.00%\n" +
		"print        |    1 |  25.00%\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, stats.WriteReport(&buf, stats.Counts{}))
	assert.Contains(t, buf.String(), "Total instructions: 0\n")
}

func TestAnalyzeMergesFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "add.json", addProgram),
		writeFile(t, dir, "two.json", twoFuncProgram),
	}

	results, err := stats.Analyze(context.Background(), paths, stats.Options{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, paths[0], results[0].Path)
	assert.Equal(t, paths[1], results[1].Path)

	total := stats.Merge(results)
	assert.Equal(t, stats.Counts{"const": 2, "add": 1, "print": 3, "ret": 1}, total)
}

func TestAnalyzeErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", addProgram)
	bad := writeFile(t, dir, "bad.json", "{")

	_, err := stats.Analyze(context.Background(), []string{good, bad}, stats.Options{Jobs: 4})
	var le *bril.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, bril.StageDecode, le.Stage)

	_, err = stats.Analyze(context.Background(), []string{filepath.Join(dir, "missing.json")}, stats.Options{})
	require.ErrorAs(t, err, &le)
	assert.True(t, le.NotFound())
}

func TestAnalyzeUsesCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := stats.OpenDiskCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	path := writeFile(t, dir, "add.json", addProgram)

	first, err := stats.Analyze(context.Background(), []string{path}, stats.Options{Cache: cache})
	require.NoError(t, err)
	assert.False(t, first[0].Cached)

	second, err := stats.Analyze(context.Background(), []string{path}, stats.Options{Cache: cache})
	require.NoError(t, err)
	assert.True(t, second[0].Cached)
	assert.Equal(t, first[0].Counts, second[0].Counts)

	require.NoError(t, cache.Clear())
	third, err := stats.Analyze(context.Background(), []string{path}, stats.Options{Cache: cache})
	require.NoError(t, err)
	assert.False(t, third[0].Cached)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := stats.OpenDiskCache(t.TempDir())
	require.NoError(t, err)

	key := stats.DigestOf([]byte("program"))
	_, ok, err := cache.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(key, stats.Counts{"jmp": 7, "br": 1}))
	got, ok, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, stats.Counts{"jmp": 7, "br": 1}, got)

	var nilCache *stats.DiskCache
	_, ok, err = nilCache.Get(key)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, nilCache.Put(key, got))
}
