package formatter

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// missingCell is printed in place of empty values in terminal previews.
const missingCell = "—"

// WritePreview prints header and rows as a rounded terminal table.
func WritePreview(w io.Writer, header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	head := make(table.Row, len(header))
	for i, h := range header {
		head[i] = h
	}

	t.AppendHeader(head)

	for _, row := range rows {
		r := make(table.Row, len(row))

		for i, cell := range row {
			if cell == "" {
				r[i] = missingCell
			} else {
				r[i] = cell
			}
		}

		t.AppendRow(r)
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
