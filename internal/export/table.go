package export

import (
	"io"

	"fixtures-app/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteTable renders matches as a text table.
func WriteTable(w io.Writer, matches []models.Match) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{}
	for _, h := range models.Header {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, m := range matches {
		row := table.Row{}
		for _, v := range m.Row() {
			row = append(row, v)
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"", "", "", "Total", len(matches)})
	t.Render()
}
