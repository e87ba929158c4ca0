package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// table renders rows of text in aligned columns.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) String() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// Width includes padding.
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	writeRow(&sb, headerStyle, widths, t.headers)
	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(strings.Repeat("-", total))
	sb.WriteString("\n")
	for _, row := range t.rows {
		writeRow(&sb, cellStyle, widths, row)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeRow(sb *strings.Builder, style lipgloss.Style, widths []int, cells []string) {
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		sb.WriteString(style.Width(widths[i]).Render(cell))
	}
	sb.WriteString("\n")
}
