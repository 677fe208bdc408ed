package pairing

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/soocke/roimask/domain/roi"
	"github.com/soocke/roimask/domain/stack"
)

// Status classifies a brightfield candidate.
type Status int

const (
	StatusOK Status = iota
	StatusWrongSize
	StatusUnreadable
	StatusFormulaError
	StatusMovieMissing
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWrongSize:
		return "wrong size"
	case StatusUnreadable:
		return "unreadable"
	case StatusFormulaError:
		return "formula error"
	case StatusMovieMissing:
		return "movie missing"
	default:
		return "unknown"
	}
}

// Pair links a brightfield image to its cleaned movie.
type Pair struct {
	Brightfield     string // filename only
	BrightfieldPath string
	Movie           string
	MoviePath       string
	Status          Status
	Err             error
}

// Ready reports whether the pair can be annotated.
func (p Pair) Ready() bool { return p.Status == StatusOK }

// Finder resolves brightfield images to movies on disk.
type Finder struct {
	BrightfieldDir string
	MovieDir       string
	Formula        Formula
	Logger         *slog.Logger
}

// NewFinder returns a Finder. A nil logger discards output.
func NewFinder(bfDir, movieDir string, f Formula, logger *slog.Logger) *Finder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Finder{BrightfieldDir: bfDir, MovieDir: movieDir, Formula: f, Logger: logger}
}

// Scan classifies every .tif in the brightfield folder, in name order.
// Failing items are logged and returned with a non-OK status; only a missing
// or unreadable brightfield folder is an error.
func (f *Finder) Scan() ([]Pair, error) {
	entries, err := os.ReadDir(f.BrightfieldDir)
	if err != nil {
		return nil, err
	}
	var out []Pair
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), TiffExt) {
			continue
		}
		out = append(out, f.resolve(e.Name()))
	}
	return out, nil
}

// Ready scans and keeps only the pairs that can be annotated.
func (f *Finder) Ready() ([]Pair, error) {
	all, err := f.Scan()
	if err != nil {
		return nil, err
	}
	ready := all[:0]
	for _, p := range all {
		if p.Ready() {
			ready = append(ready, p)
		}
	}
	return ready, nil
}

func (f *Finder) resolve(name string) Pair {
	p := Pair{Brightfield: name, BrightfieldPath: filepath.Join(f.BrightfieldDir, name)}
	cfg, err := stack.Probe(p.BrightfieldPath)
	if err != nil {
		p.Status, p.Err = StatusUnreadable, err
		f.Logger.Warn("brightfield unreadable", "brightfield", name, "error", err)
		return p
	}
	if cfg.Width != roi.FrameSize || cfg.Height != roi.FrameSize {
		p.Status = StatusWrongSize
		f.Logger.Debug("brightfield ignored", "brightfield", name, "width", cfg.Width, "height", cfg.Height)
		return p
	}
	movie, err := MovieName(name, f.Formula)
	if err != nil {
		p.Status, p.Err = StatusFormulaError, err
		f.Logger.Warn("index formula failed", "brightfield", name, "formula", f.Formula.Name, "error", err)
		return p
	}
	p.Movie = movie
	p.MoviePath = filepath.Join(f.MovieDir, movie)
	if _, err := os.Stat(p.MoviePath); err != nil {
		p.Status = StatusMovieMissing
		if !errors.Is(err, fs.ErrNotExist) {
			p.Err = err
		}
		f.Logger.Warn("movie not found", "brightfield", name, "movie", movie)
		return p
	}
	p.Status = StatusOK
	return p
}
