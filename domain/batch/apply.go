// Package batch applies saved ROI masks to cleaned movie stacks and exports
// each masked movie as a numbered image sequence for the tracking tool.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/soocke/roimask/debug"
	"github.com/soocke/roimask/domain/pairing"
	"github.com/soocke/roimask/domain/stack"
)

const (
	// MaskedDirName is created next to the cleaned-movie folder.
	MaskedDirName = "masked_movies"
	// MaskedSuffix is appended to the movie stem of masked stacks.
	MaskedSuffix = "_masked.tif"
	lockName     = ".roimask.lock"
)

var (
	// ErrMaskNotFound halts a job: a movie opened but its mask did not.
	ErrMaskNotFound = errors.New("mask not found")
	// ErrLocked means another run holds the sequence root.
	ErrLocked = errors.New("sequence root is locked by another run")
)

// Job describes one cleaned-movie folder to process.
type Job struct {
	CleanedDir   string
	MaskDir      string
	SequenceRoot string
	// MaskedDir defaults to <parent of CleanedDir>/masked_movies.
	MaskedDir   string
	MaskFormula pairing.Formula
}

func (j Job) maskedDir() string {
	if j.MaskedDir != "" {
		return j.MaskedDir
	}
	return filepath.Join(filepath.Dir(filepath.Clean(j.CleanedDir)), MaskedDirName)
}

// Outcome classifies what happened to one movie.
type Outcome int

const (
	Processed Outcome = iota
	Skipped
	Halted
)

func (o Outcome) String() string {
	switch o {
	case Processed:
		return "processed"
	case Skipped:
		return "skipped"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// Result records one movie of a job.
type Result struct {
	Movie       string
	Mask        string
	MaskedPath  string
	SequenceDir string
	Frames      int
	Zeroed      int
	Outcome     Outcome
	Err         error
	Elapsed     time.Duration
}

// Report collects the results of one job run.
type Report struct {
	RunID   string
	Job     Job
	Results []Result
}

// Count returns how many results have outcome o.
func (r *Report) Count(o Outcome) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Observer follows job progress. Implementations must be cheap; they run on
// the processing goroutine.
type Observer interface {
	Start(total int)
	Done(Result)
}

// Runner executes jobs sequentially, one movie at a time.
type Runner struct {
	logger   *slog.Logger
	observer Observer
	debug    bool
}

// NewRunner returns a Runner. observer may be nil. With debugStats set, a
// memory snapshot is logged after every movie.
func NewRunner(logger *slog.Logger, observer Observer, debugStats bool) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{logger: logger, observer: observer, debug: debugStats}
}

// ListMovies returns the cleaned movies of dir in name order.
func ListMovies(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), pairing.CleanedSuffix) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Run processes every cleaned movie of job. Movies that cannot be opened are
// skipped. A movie whose mask cannot be resolved or opened halts the job
// with ErrMaskNotFound; the returned report still lists everything done so
// far. Cancellation is checked between movies.
func (r *Runner) Run(ctx context.Context, job Job) (*Report, error) {
	rep := &Report{RunID: uuid.NewString(), Job: job}
	log := r.logger.With("run_id", rep.RunID, "cleaned_dir", job.CleanedDir)

	movies, err := ListMovies(job.CleanedDir)
	if err != nil {
		return rep, fmt.Errorf("list cleaned movies: %w", err)
	}
	if err := os.MkdirAll(job.SequenceRoot, 0o755); err != nil {
		return rep, err
	}
	maskedDir := job.maskedDir()
	if err := os.MkdirAll(maskedDir, 0o755); err != nil {
		return rep, err
	}

	lock := flock.New(filepath.Join(job.SequenceRoot, lockName))
	locked, err := lock.TryLock()
	if err != nil {
		return rep, fmt.Errorf("lock %s: %w", job.SequenceRoot, err)
	}
	if !locked {
		return rep, fmt.Errorf("%w: %s", ErrLocked, job.SequenceRoot)
	}
	defer func() { _ = lock.Unlock() }()

	if r.observer != nil {
		r.observer.Start(len(movies))
	}
	log.Info("batch started", "movies", len(movies), "mask_formula", job.MaskFormula.Name)

	for _, name := range movies {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		res, err := r.process(job, maskedDir, name, log)
		rep.Results = append(rep.Results, res)
		if r.observer != nil {
			r.observer.Done(res)
		}
		if r.debug {
			debug.LogMemStats(log, "movie", name)
		}
		if err != nil {
			log.Error("batch halted", "movie", name, "error", err)
			return rep, err
		}
	}
	log.Info("processing complete", "processed", rep.Count(Processed), "skipped", rep.Count(Skipped))
	return rep, nil
}

func (r *Runner) process(job Job, maskedDir, name string, log *slog.Logger) (Result, error) {
	start := time.Now()
	res := Result{Movie: name}
	done := func(o Outcome, err error) (Result, error) {
		res.Outcome, res.Err, res.Elapsed = o, err, time.Since(start)
		if o == Skipped {
			return res, nil
		}
		return res, err
	}

	moviePath := filepath.Join(job.CleanedDir, name)
	movie, err := stack.ReadStack(moviePath)
	if err != nil {
		log.Warn("could not open movie", "movie", name, "error", err)
		return done(Skipped, err)
	}
	log.Info("processing cleaned file", "path", moviePath, "frames", movie.Len())

	maskName, err := pairing.MaskName(name, job.MaskFormula)
	if err != nil {
		return done(Halted, fmt.Errorf("%w: %s: %v", ErrMaskNotFound, name, err))
	}
	res.Mask = maskName
	maskPath := filepath.Join(job.MaskDir, maskName)
	mask, err := stack.ReadStack(maskPath)
	if err != nil {
		return done(Halted, fmt.Errorf("%w: %s: %v", ErrMaskNotFound, maskPath, err))
	}

	zeroed, err := stack.ApplyMask(movie, mask)
	if err != nil {
		return done(Halted, fmt.Errorf("apply %s to %s: %w", maskName, name, err))
	}
	res.Zeroed = zeroed

	stem := pairing.MovieStem(name)
	res.MaskedPath = filepath.Join(maskedDir, stem+MaskedSuffix)
	if err := stack.WriteStack(res.MaskedPath, movie); err != nil {
		return done(Halted, err)
	}
	log.Info("saved masked movie", "path", res.MaskedPath)
	movie, mask = nil, nil

	// export from the file on disk so the sequence matches what was saved
	saved, err := stack.ReadStack(res.MaskedPath)
	if err != nil {
		return done(Halted, fmt.Errorf("reload %s: %w", res.MaskedPath, err))
	}
	res.Frames = saved.Len()
	res.SequenceDir = filepath.Join(job.SequenceRoot, stem)
	if _, err := stack.ExportSequence(res.SequenceDir, saved); err != nil {
		return done(Halted, err)
	}
	log.Info("processed", "movie", name, "sequence_dir", res.SequenceDir, "mask", maskName, "frames", res.Frames)
	return done(Processed, nil)
}
