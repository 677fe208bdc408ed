package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{
		LogLevel: "loud",
		Annotate: Annotate{ViewSize: 5000},
		Apply:    []Job{{CleanedDir: "c"}},
	}
	require.NoError(t, cfg.Validate())
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, maxViewSize, cfg.Annotate.ViewSize)
	require.Equal(t, DefaultIndexFormula, cfg.Annotate.IndexFormula)
	require.Equal(t, DefaultMaskFormula, cfg.Apply[0].MaskFormula)

	cfg.Annotate.ViewSize = 10
	require.NoError(t, cfg.Validate())
	require.Equal(t, minViewSize, cfg.Annotate.ViewSize)
}

func sample() *Config {
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.LogLevel = "debug"
	cfg.DarkMode = true
	cfg.Annotate.BrightfieldDir = "/data/bf"
	cfg.Annotate.MovieDir = "/data/movies"
	cfg.Annotate.OutputDir = "/data/masks"
	cfg.Apply = []Job{
		{CleanedDir: "/data/c1", MaskDir: "/data/masks", SequenceRoot: "/data/utrack", MaskFormula: "x*2"},
		{CleanedDir: "/data/c2", MaskDir: "/data/masks", SequenceRoot: "/data/utrack", MaskFormula: "x + 1", MaskedDir: "/tmp/m"},
	}
	return cfg
}

func TestSaveLoad_AllFormats(t *testing.T) {
	for _, name := range []string{"cfg.json", "cfg.toml", "cfg.yaml", "cfg.yml"} {
		path := filepath.Join(t.TempDir(), "nested", name)
		want := sample()
		require.NoError(t, want.Save(path), name)
		got, err := Load(path)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}
}

func TestLoad_TOMLByHand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roimask.toml")
	data := `
debug = true

[annotate]
brightfield_dir = "bf"
index_formula = "identity"

[[apply]]
cleaned_dir = "cleaned"
mask_dir = "masks"
sequence_root = "utrack"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Debug)
	require.Equal(t, "identity", cfg.Annotate.IndexFormula)
	require.Equal(t, DefaultViewSize, cfg.Annotate.ViewSize)
	require.Len(t, cfg.Apply, 1)
	require.Equal(t, DefaultMaskFormula, cfg.Apply[0].MaskFormula)
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	cfg, err := Load(path)
	require.Error(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, "WARN", l.String())
	_, err = ParseLevel("chatty")
	require.Error(t, err)
}
