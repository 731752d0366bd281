package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.CFG.AllowDangling)
	assert.True(t, cfg.CFG.Validate)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.False(t, cfg.Output.Timings)
	assert.True(t, cfg.Stats.Cache)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Jobs())
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[cfg]
allow_dangling = true

[output]
color = "off"
timings = true

[stats]
jobs = 3
cache = false
cache_dir = "/tmp/x"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.True(t, cfg.CFG.AllowDangling)
	assert.True(t, cfg.CFG.Validate, "unset keys keep their defaults")
	assert.Equal(t, "off", cfg.Output.Color)
	assert.True(t, cfg.Output.Timings)
	assert.Equal(t, 3, cfg.Jobs())
	assert.False(t, cfg.Stats.Cache)

	dir2, err := cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", dir2)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brilcfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cfg:\n  validate: false\noutput:\n  color: on\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.CFG.Validate)
	assert.Equal(t, "on", cfg.Output.Color)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		file        string
		body        string
		errContains string
	}{
		{name: "syntax", file: "a.toml", body: "[cfg\n", errContains: "failed to parse TOML"},
		{name: "unknown_key", file: "b.toml", body: "[cfg]\nfoo = 1\n", errContains: `unknown key "cfg.foo"`},
		{name: "bad_color", file: "c.toml", body: "[output]\ncolor = \"purple\"\n", errContains: "invalid [output].color"},
		{name: "bad_jobs", file: "d.toml", body: "[stats]\njobs = -1\n", errContains: "invalid [stats].jobs"},
		{name: "yaml_syntax", file: "e.yaml", body: "cfg: [\n", errContains: "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, ok, err := Find(nested)
	require.NoError(t, err)
	if ok {
		t.Skip("a brilcfg.toml exists above the temp dir")
	}

	path := filepath.Join(root, FileName)
	require.NoError(t, os.WriteFile(path, []byte("[output]\ntimings = true\n"), 0o600))

	found, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, path, found)

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.True(t, cfg.Output.Timings)
}

func TestCacheDirFromXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/var/cache/test")
	dir, err := Default().CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/cache/test", "brilcfg"), dir)
}
