package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableLayout describes a rounded table. Rows shorter than Headers are padded.
type tableLayout struct {
	Headers []string
	Rows    [][]string
	Aligns  []columnAlignment
	// Footer, when set, is rendered below the rows.
	Footer []string
}

func toRow(cells []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range width {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

func renderTable(layout tableLayout) string {
	width := len(layout.Headers)
	if width == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(layout.Headers, width))
	for _, cells := range layout.Rows {
		tw.AppendRow(toRow(cells, width))
	}
	if len(layout.Footer) > 0 {
		tw.AppendFooter(toRow(layout.Footer, width))
	}

	configs := make([]table.ColumnConfig, 0, width)
	for i := range width {
		align := text.AlignLeft
		if i < len(layout.Aligns) && layout.Aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:           i + 1,
			Align:            align,
			AlignHeader:      text.AlignLeft,
			AlignFooter:      align,
			WidthMax:         60,
			WidthMaxEnforcer: text.WrapSoft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
