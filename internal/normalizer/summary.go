package normalizer

import (
	"fmt"
	"strconv"
	"strings"

	"carprice/internal/formatter"
	"carprice/internal/models"
)

// ColumnSummary counts filled and missing values of one normalized column.
type ColumnSummary struct {
	Column  string
	Filled  int
	Missing int
}

// Summary describes a normalized dataset.
type Summary struct {
	Rows    int
	Columns []ColumnSummary
}

// Summarize counts missing values per column, in NormalizedColumns order.
func Summarize(records []models.CarRecord) Summary {
	s := Summary{
		Rows:    len(records),
		Columns: make([]ColumnSummary, len(models.NormalizedColumns)),
	}

	for i, col := range models.NormalizedColumns {
		s.Columns[i].Column = col
	}

	for i := range records {
		for j, col := range models.NormalizedColumns {
			if records[i].Value(col) == nil {
				s.Columns[j].Missing++
			} else {
				s.Columns[j].Filled++
			}
		}
	}

	return s
}

// Missing returns the total number of missing cells.
func (s Summary) Missing() int {
	total := 0
	for _, c := range s.Columns {
		total += c.Missing
	}

	return total
}

// Markdown renders the summary as a markdown report.
func (s Summary) Markdown(source, destination string) string {
	rows := make([][]string, 0, len(s.Columns))

	for _, c := range s.Columns {
		rows = append(rows, []string{
			c.Column,
			models.ColumnKinds[c.Column].String(),
			strconv.Itoa(c.Filled),
			strconv.Itoa(c.Missing),
		})
	}

	var sb strings.Builder

	sb.WriteString("# Dataset normalization report\n\n")
	fmt.Fprintf(&sb, "- Source: `%s`\n", source)
	fmt.Fprintf(&sb, "- Output: `%s`\n", destination)
	fmt.Fprintf(&sb, "- Rows: %d\n", s.Rows)
	fmt.Fprintf(&sb, "- Missing cells: %d\n\n", s.Missing())
	sb.WriteString(formatter.RenderTable([]string{"Column", "Type", "Filled", "Missing"}, rows))
	sb.WriteString("\n")

	return sb.String()
}
