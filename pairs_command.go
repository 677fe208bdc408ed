package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soocke/roimask/domain/pairing"
)

func newPairsCommand(ctx *commandContext) *cobra.Command {
	flags := &annotateFlags{}
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "List brightfield images with their movie and pairing status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := ctx.config.Annotate
			flags.apply(cmd, &a)
			finder, err := ctx.finder(a)
			if err != nil {
				return err
			}
			all, err := finder.Scan()
			if err != nil {
				return fmt.Errorf("scan brightfield folder: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Brightfield", "Movie", "Status", "Note"},
				pairRows(all),
				nil,
				[]string{fmt.Sprintf("%d ready", countReady(all)), "", fmt.Sprintf("%d total", len(all))},
			))
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}

func pairRows(pairs []pairing.Pair) [][]string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		note := ""
		if p.Err != nil {
			note = p.Err.Error()
		}
		rows = append(rows, []string{p.Brightfield, p.Movie, p.Status.String(), note})
	}
	return rows
}

func countReady(pairs []pairing.Pair) int {
	n := 0
	for _, p := range pairs {
		if p.Ready() {
			n++
		}
	}
	return n
}
