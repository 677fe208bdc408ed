package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the default config path.
const EnvPath = "ROIMASK_CONFIG"

const (
	DefaultIndexFormula = "index - 1"
	DefaultMaskFormula  = "x*2"
	DefaultViewSize     = 480
	minViewSize         = 200
	maxViewSize         = 1200
)

// Config holds runtime configuration for the annotation tool and the batch
// mask application. Fields may be loaded from a JSON, TOML or YAML file and
// overridden by command-line flags.
type Config struct {
	Debug    bool   `json:"debug" toml:"debug" yaml:"debug"`
	LogLevel string `json:"log_level" toml:"log_level" yaml:"log_level"`
	DarkMode bool   `json:"dark_mode" toml:"dark_mode" yaml:"dark_mode"`

	Annotate Annotate `json:"annotate" toml:"annotate" yaml:"annotate"`
	Apply    []Job    `json:"apply" toml:"apply" yaml:"apply"`
}

// Annotate configures one annotation run.
type Annotate struct {
	BrightfieldDir string `json:"brightfield_dir" toml:"brightfield_dir" yaml:"brightfield_dir"`
	MovieDir       string `json:"movie_dir" toml:"movie_dir" yaml:"movie_dir"`
	OutputDir      string `json:"output_dir" toml:"output_dir" yaml:"output_dir"`
	IndexFormula   string `json:"index_formula" toml:"index_formula" yaml:"index_formula"`
	// ViewSize is the edge length of each image pane in screen pixels.
	ViewSize int `json:"view_size" toml:"view_size" yaml:"view_size"`
}

// Job configures one mask application pass.
type Job struct {
	CleanedDir   string `json:"cleaned_dir" toml:"cleaned_dir" yaml:"cleaned_dir"`
	MaskDir      string `json:"mask_dir" toml:"mask_dir" yaml:"mask_dir"`
	SequenceRoot string `json:"sequence_root" toml:"sequence_root" yaml:"sequence_root"`
	MaskedDir    string `json:"masked_dir,omitempty" toml:"masked_dir,omitempty" yaml:"masked_dir,omitempty"`
	MaskFormula  string `json:"mask_formula" toml:"mask_formula" yaml:"mask_formula"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:    false,
		LogLevel: "info",
		Annotate: Annotate{
			IndexFormula: DefaultIndexFormula,
			ViewSize:     DefaultViewSize,
		},
	}
}

// Validate clamps/normalizes values to safe ranges. Directory fields are
// left alone; commands check the ones they need.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		c.LogLevel = "info"
	}
	if strings.TrimSpace(c.Annotate.IndexFormula) == "" {
		c.Annotate.IndexFormula = DefaultIndexFormula
	}
	if c.Annotate.ViewSize <= 0 {
		c.Annotate.ViewSize = DefaultViewSize
	}
	c.Annotate.ViewSize = min(max(c.Annotate.ViewSize, minViewSize), maxViewSize)
	for i := range c.Apply {
		if strings.TrimSpace(c.Apply[i].MaskFormula) == "" {
			c.Apply[i].MaskFormula = DefaultMaskFormula
		}
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(strings.TrimSpace(s)))
	return l, err
}

type format int

const (
	formatJSON format = iota
	formatTOML
	formatYAML
)

func formatOf(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// Load attempts to read configuration from the given file path; the format
// follows the extension (.toml, .yaml/.yml, otherwise JSON). If the file does
// not exist it returns DefaultConfig(). On a decode error it returns defaults
// with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := decode(data, formatOf(path), cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// decode unmarshals data onto cfg.
func decode(data []byte, f format, cfg *Config) error {
	switch f {
	case formatTOML:
		return toml.Unmarshal(data, cfg)
	case formatYAML:
		return yaml.Unmarshal(data, cfg)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		return dec.Decode(cfg)
	}
}

// Save writes the configuration to the given path; the format follows the
// extension as in Load.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	var (
		data []byte
		err  error
	)
	switch formatOf(path) {
	case formatTOML:
		data, err = toml.Marshal(c)
	case formatYAML:
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
