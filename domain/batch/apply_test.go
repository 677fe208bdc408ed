package batch

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/require"

	"github.com/soocke/roimask/domain/pairing"
	"github.com/soocke/roimask/domain/stack"
)

type fixture struct {
	cleaned, masks, seq string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		cleaned: filepath.Join(root, "cleaned"),
		masks:   filepath.Join(root, "masks"),
		seq:     filepath.Join(root, "utrack"),
	}
	require.NoError(t, os.MkdirAll(f.cleaned, 0o755))
	require.NoError(t, os.MkdirAll(f.masks, 0o755))
	return f
}

func (f fixture) movie(t *testing.T, name string, frames int) {
	t.Helper()
	var fr []image.Image
	for i := 0; i < frames; i++ {
		img := image.NewGray16(image.Rect(0, 0, 6, 6))
		for p := range img.Pix {
			img.Pix[p] = 0x10
		}
		fr = append(fr, img)
	}
	require.NoError(t, stack.WriteStack(filepath.Join(f.cleaned, name), stack.New(fr...)))
}

// mask keeps only the right half of each frame.
func (f fixture) mask(t *testing.T, name string) {
	t.Helper()
	m := image.NewGray(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 3; x < 6; x++ {
			m.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	require.NoError(t, stack.WriteFrame(filepath.Join(f.masks, name), m))
}

func (f fixture) job(t *testing.T) Job {
	t.Helper()
	formula, err := pairing.Parse("x*2")
	require.NoError(t, err)
	return Job{
		CleanedDir:   f.cleaned,
		MaskDir:      f.masks,
		SequenceRoot: f.seq,
		MaskFormula:  formula,
	}
}

type recorder struct {
	total int
	done  []Result
}

func (r *recorder) Start(total int) { r.total = total }
func (r *recorder) Done(res Result) { r.done = append(r.done, res) }

func TestRun_ProcessesAndExports(t *testing.T) {
	f := newFixture(t)
	f.movie(t, "cell_001_cleaned.tif", 3)
	f.movie(t, "cell_002_cleaned.tif", 2)
	f.mask(t, "cell_002.tif")
	f.mask(t, "cell_004.tif")

	rec := &recorder{}
	rep, err := NewRunner(nil, rec, false).Run(context.Background(), f.job(t))
	require.NoError(t, err)
	require.NotEmpty(t, rep.RunID)
	require.Equal(t, 2, rep.Count(Processed))
	require.Equal(t, 2, rec.total)
	require.Len(t, rec.done, 2)

	first := rep.Results[0]
	require.Equal(t, "cell_002.tif", first.Mask)
	require.Equal(t, 3, first.Frames)
	require.Equal(t, 3*18, first.Zeroed)

	masked := filepath.Join(filepath.Dir(f.cleaned), MaskedDirName, "cell_001"+MaskedSuffix)
	require.Equal(t, masked, first.MaskedPath)
	require.FileExists(t, masked)

	seqDir := filepath.Join(f.seq, "cell_001")
	for _, n := range []string{"image0001.tif", "image0002.tif", "image0003.tif"} {
		require.FileExists(t, filepath.Join(seqDir, n))
	}
	fr, err := stack.ReadFrame(filepath.Join(seqDir, "image0002.tif"))
	require.NoError(t, err)
	require.Zero(t, color.Gray16Model.Convert(fr.At(0, 0)).(color.Gray16).Y)
	require.NotZero(t, color.Gray16Model.Convert(fr.At(5, 5)).(color.Gray16).Y)

	require.DirExists(t, filepath.Join(f.seq, "cell_002"))
}

func TestRun_MissingMaskHalts(t *testing.T) {
	f := newFixture(t)
	f.movie(t, "cell_001_cleaned.tif", 1)
	f.movie(t, "cell_002_cleaned.tif", 1)
	f.movie(t, "cell_003_cleaned.tif", 1)
	f.mask(t, "cell_002.tif")

	rep, err := NewRunner(nil, nil, false).Run(context.Background(), f.job(t))
	require.ErrorIs(t, err, ErrMaskNotFound)
	require.Len(t, rep.Results, 2)
	require.Equal(t, Processed, rep.Results[0].Outcome)
	require.Equal(t, Halted, rep.Results[1].Outcome)
	require.NoDirExists(t, filepath.Join(f.seq, "cell_003"))
}

func TestRun_UnreadableMovieSkipped(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.cleaned, "cell_000_cleaned.tif"), []byte("junk"), 0o644))
	f.movie(t, "cell_001_cleaned.tif", 1)
	f.mask(t, "cell_002.tif")

	rep, err := NewRunner(nil, nil, false).Run(context.Background(), f.job(t))
	require.NoError(t, err)
	require.Equal(t, 1, rep.Count(Skipped))
	require.Equal(t, 1, rep.Count(Processed))
	require.Error(t, rep.Results[0].Err)
}

func TestRun_CustomMaskedDir(t *testing.T) {
	f := newFixture(t)
	f.movie(t, "cell_001_cleaned.tif", 1)
	f.mask(t, "cell_002.tif")
	job := f.job(t)
	job.MaskedDir = filepath.Join(t.TempDir(), "out")

	rep, err := NewRunner(nil, nil, false).Run(context.Background(), job)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(job.MaskedDir, "cell_001"+MaskedSuffix))
	require.Equal(t, 1, rep.Count(Processed))
}

func TestRun_Cancelled(t *testing.T) {
	f := newFixture(t)
	f.movie(t, "cell_001_cleaned.tif", 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := NewRunner(nil, nil, false).Run(ctx, f.job(t))
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, rep.Results)
}

func TestRun_LockedRoot(t *testing.T) {
	f := newFixture(t)
	f.movie(t, "cell_001_cleaned.tif", 1)
	require.NoError(t, os.MkdirAll(f.seq, 0o755))
	held := flock.New(filepath.Join(f.seq, lockName))
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer held.Unlock()

	_, err = NewRunner(nil, nil, false).Run(context.Background(), f.job(t))
	require.ErrorIs(t, err, ErrLocked)
}

func TestRun_MissingCleanedDir(t *testing.T) {
	f := newFixture(t)
	job := f.job(t)
	job.CleanedDir = filepath.Join(t.TempDir(), "absent")
	_, err := NewRunner(nil, nil, false).Run(context.Background(), job)
	require.Error(t, err)
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "halted", Halted.String())
	require.Equal(t, "unknown", Outcome(9).String())
}
