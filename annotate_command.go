package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soocke/roimask/app"
	"github.com/soocke/roimask/config"
	"github.com/soocke/roimask/domain/pairing"
)

// annotateFlags override the [annotate] section of the config file.
type annotateFlags struct {
	brightfield string
	movies      string
	output      string
	formula     string
	viewSize    int
}

func (f *annotateFlags) register(cmd *cobra.Command, withOutput bool) {
	cmd.Flags().StringVar(&f.brightfield, "brightfield", "", "Folder of 370x370 brightfield TIFFs")
	cmd.Flags().StringVar(&f.movies, "movies", "", "Folder of cleaned movie TIFFs")
	cmd.Flags().StringVar(&f.formula, "formula", "", "Brightfield to movie index formula, e.g. \"index - 1\"")
	if withOutput {
		cmd.Flags().StringVar(&f.output, "output", "", "Folder the masks are written to")
		cmd.Flags().IntVar(&f.viewSize, "view-size", 0, "Edge of each image pane in screen pixels")
	}
}

func (f *annotateFlags) apply(cmd *cobra.Command, a *config.Annotate) {
	if cmd.Flags().Changed("brightfield") {
		a.BrightfieldDir = f.brightfield
	}
	if cmd.Flags().Changed("movies") {
		a.MovieDir = f.movies
	}
	if cmd.Flags().Changed("formula") {
		a.IndexFormula = f.formula
	}
	if cmd.Flags().Changed("output") {
		a.OutputDir = f.output
	}
	if cmd.Flags().Changed("view-size") {
		a.ViewSize = f.viewSize
	}
}

func (c *commandContext) finder(a config.Annotate) (*pairing.Finder, error) {
	if a.BrightfieldDir == "" || a.MovieDir == "" {
		return nil, errors.New("brightfield and movie folders are required (flags or config)")
	}
	formula, err := pairing.Parse(a.IndexFormula)
	if err != nil {
		return nil, err
	}
	return pairing.NewFinder(a.BrightfieldDir, a.MovieDir, formula, c.logger), nil
}

func newAnnotateCommand(ctx *commandContext) *cobra.Command {
	flags := &annotateFlags{}
	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Draw ROI polygons on each brightfield/movie pair and save masks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			flags.apply(cmd, &cfg.Annotate)
			_ = cfg.Validate()
			if cfg.Annotate.OutputDir == "" {
				return errors.New("output folder is required (flags or config)")
			}
			finder, err := ctx.finder(cfg.Annotate)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Annotate.OutputDir, 0o755); err != nil {
				return fmt.Errorf("create output folder: %w", err)
			}
			pairs, err := finder.Ready()
			if err != nil {
				return fmt.Errorf("scan brightfield folder: %w", err)
			}
			if len(pairs) == 0 {
				ctx.logger.Warn("no pairs to annotate", "brightfield_dir", cfg.Annotate.BrightfieldDir)
				return nil
			}
			ctx.logger.Info("annotation started", "pairs", len(pairs), "output_dir", cfg.Annotate.OutputDir)
			app.NewApp("roimask", cfg, pairs, ctx.logger).Start()
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}
