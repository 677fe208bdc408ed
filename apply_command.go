package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/soocke/roimask/config"
	"github.com/soocke/roimask/domain/batch"
	"github.com/soocke/roimask/domain/pairing"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var job config.Job
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply saved masks to cleaned movies and export image sequences",
		Long: "Runs every [[apply]] job of the config file, or a single job given by flags.\n" +
			"A missing mask halts its job; later jobs still run and the command exits non-zero.",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs := ctx.config.Apply
			if cmd.Flags().Changed("cleaned") {
				if job.MaskFormula == "" {
					job.MaskFormula = config.DefaultMaskFormula
				}
				jobs = []config.Job{job}
			}
			if len(jobs) == 0 {
				return errors.New("no apply jobs configured (use --cleaned or the config file)")
			}
			reports, err := runJobs(cmd.Context(), ctx, jobs, cmd.ErrOrStderr())
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(reports))
			return err
		},
	}
	cmd.Flags().StringVar(&job.CleanedDir, "cleaned", "", "Folder of *_cleaned.tif movies")
	cmd.Flags().StringVar(&job.MaskDir, "masks", "", "Folder of mask TIFFs")
	cmd.Flags().StringVar(&job.SequenceRoot, "sequence-root", "", "Destination root for per-movie image sequences")
	cmd.Flags().StringVar(&job.MaskedDir, "masked-dir", "", "Folder for masked stacks (default: masked_movies next to --cleaned)")
	cmd.Flags().StringVar(&job.MaskFormula, "mask-formula", "", "Movie to mask index formula, e.g. \"x*2\"")
	return cmd
}

func runJobs(ctx context.Context, cc *commandContext, jobs []config.Job, progressOut io.Writer) ([]*batch.Report, error) {
	var (
		reports []*batch.Report
		errs    []error
	)
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		name := "job " + strconv.Itoa(i+1)
		formula, err := pairing.Parse(j.MaskFormula)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if j.CleanedDir == "" || j.MaskDir == "" || j.SequenceRoot == "" {
			errs = append(errs, fmt.Errorf("%s: cleaned, mask and sequence folders are required", name))
			continue
		}
		var obs batch.Observer
		if isTerminal(progressOut) {
			obs = newProgressObserver(progressOut, name)
		}
		runner := batch.NewRunner(cc.logger.With("job", i+1), obs, cc.config.Debug)
		rep, err := runner.Run(ctx, batch.Job{
			CleanedDir:   j.CleanedDir,
			MaskDir:      j.MaskDir,
			SequenceRoot: j.SequenceRoot,
			MaskedDir:    j.MaskedDir,
			MaskFormula:  formula,
		})
		reports = append(reports, rep)
		if err != nil {
			cc.logger.Error("apply job failed", "job", i+1, "cleaned_dir", j.CleanedDir, "error", err)
			errs = append(errs, fmt.Errorf("%s (%s): %w", name, j.CleanedDir, err))
			if errors.Is(err, context.Canceled) {
				break
			}
		}
	}
	return reports, errors.Join(errs...)
}

func renderSummary(reports []*batch.Report) string {
	var rows [][]string
	processed, skipped, halted := 0, 0, 0
	for i, rep := range reports {
		for _, res := range rep.Results {
			note := res.SequenceDir
			if res.Err != nil {
				note = res.Err.Error()
			}
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				res.Movie,
				res.Mask,
				strconv.Itoa(res.Frames),
				strconv.Itoa(res.Zeroed),
				res.Outcome.String(),
				note,
			})
		}
		processed += rep.Count(batch.Processed)
		skipped += rep.Count(batch.Skipped)
		halted += rep.Count(batch.Halted)
	}
	footer := []string{"", fmt.Sprintf("%d processed", processed), fmt.Sprintf("%d skipped", skipped), "", "", fmt.Sprintf("%d halted", halted)}
	return renderTable(
		[]string{"Job", "Movie", "Mask", "Frames", "Zeroed", "Outcome", "Output / error"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
		footer,
	)
}

// progressObserver drives a terminal progress bar from batch events.
type progressObserver struct {
	out  io.Writer
	desc string
	bar  *progressbar.ProgressBar
}

func newProgressObserver(out io.Writer, desc string) *progressObserver {
	return &progressObserver{out: out, desc: desc}
}

func (o *progressObserver) Start(total int) {
	o.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(o.out),
		progressbar.OptionSetDescription(o.desc),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (o *progressObserver) Done(res batch.Result) {
	if o.bar == nil {
		return
	}
	o.bar.Describe(o.desc + " " + res.Movie)
	_ = o.bar.Add(1)
}

var _ batch.Observer = (*progressObserver)(nil)
