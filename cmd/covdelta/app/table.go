package app

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

func renderTable(w io.Writer, header []string, rows [][]string, footer []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	if footer != nil {
		table.SetFooter(footer)
	}
	table.Render()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
