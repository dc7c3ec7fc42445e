package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults when file absent", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Output.Format, "format defaults by terminal at render time")
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("reads file", func(t *testing.T) {
		path := writeFile(t, `
output:
  format: json
logging:
  level: debug
refdata:
  pack: /etc/cbamcalc/pack-2026.yaml
allocation:
  treat_residue_as_waste: true
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Output.Format)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/etc/cbamcalc/pack-2026.yaml", cfg.Refdata.Pack)
		assert.True(t, cfg.Allocation.TreatResidueAsWaste)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := writeFile(t, "output: [unterminated")
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestProjectOverlayPath(t *testing.T) {
	t.Run("finds overlay in dir", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, OverlayFileName)
		require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\n"), 0o644))
		assert.Equal(t, path, ProjectOverlayPath(dir))
	})

	t.Run("empty when absent", func(t *testing.T) {
		assert.Empty(t, ProjectOverlayPath(t.TempDir()))
	})
}

func TestShallowMergeYAML(t *testing.T) {
	t.Run("overlay replaces whole sections", func(t *testing.T) {
		cfg := New()
		cfg.Output.Format = "table"
		cfg.Logging.Level = "debug"
		cfg.Logging.File = "/var/log/cbamcalc.log"

		path := writeFile(t, "logging:\n  level: warn\n")
		require.NoError(t, ShallowMergeYAML(cfg, path))

		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Empty(t, cfg.Logging.File, "section replacement, not field merge")
		assert.Equal(t, "table", cfg.Output.Format, "untouched section survives")
	})

	t.Run("unknown keys ignored", func(t *testing.T) {
		cfg := New()
		path := writeFile(t, "plugins:\n  foo: bar\n")
		require.NoError(t, ShallowMergeYAML(cfg, path))
		assert.Equal(t, *New(), *cfg)
	})

	t.Run("empty overlay is a no-op", func(t *testing.T) {
		cfg := New()
		path := writeFile(t, "# nothing here\n")
		require.NoError(t, ShallowMergeYAML(cfg, path))
		assert.Equal(t, *New(), *cfg)
	})

	t.Run("nil target rejected", func(t *testing.T) {
		path := writeFile(t, "output:\n  format: json\n")
		require.Error(t, ShallowMergeYAML(nil, path))
	})
}
