package view

import (
	"github.com/soocke/roimask/config"
	"github.com/soocke/roimask/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// InfoPanel lists the folders and formula of the running session.
type InfoPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int) // returns next free row
}

type infoPanel struct {
	cfg    config.Annotate
	values map[string]*TLabelWidget
}

// NewInfoPanel creates the panel for cfg.
func NewInfoPanel(cfg config.Annotate) InfoPanel {
	return &infoPanel{cfg: cfg, values: make(map[string]*TLabelWidget)}
}

func (v *infoPanel) Build(parent *FrameWidget, startRow int) (row int) {
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := parent.Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		val := parent.TLabel(Txt(value), Anchor("w"), Style(theme.StyleAccentLabel))
		Grid(val, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		v.values[id] = val
		row++
	}
	makeRow("brightfield", "Brightfield folder", v.cfg.BrightfieldDir)
	makeRow("movies", "Movie folder", v.cfg.MovieDir)
	makeRow("output", "Mask folder", v.cfg.OutputDir)
	makeRow("formula", "Index formula", v.cfg.IndexFormula)
	return row
}
