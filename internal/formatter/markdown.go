// Package formatter renders tabular data as markdown reports and terminal tables.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderTable renders a header and rows as an aligned markdown table.
// Column widths are measured in display cells so wide characters line up.
func RenderTable(header []string, rows [][]string) string {
	table := make([][]string, 0, len(rows)+2)
	table = append(table, header)
	table = append(table, nil) // separator

	table = append(table, rows...)

	return strings.Join(alignTable(table, 1), "\n")
}

// alignTable pads every cell to its column width. Row separatorIdx, if any, is
// rewritten as dashes.
func alignTable(table [][]string, separatorIdx int) []string {
	if len(table) == 0 {
		return nil
	}

	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorIdx {
			continue
		}

		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	// Separator needs at least "---"
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(table))

	for rIdx, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if rIdx == separatorIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
			} else {
				content := ""
				if j < len(row) {
					content = row[j]
				}

				sb.WriteString(runewidth.FillRight(content, colWidths[j]))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
