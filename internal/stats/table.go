package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// SummaryHeaders are the columns of the per-view-point summary table.
var SummaryHeaders = []string{"Point", "Rows", "Mean DGP", "Max DGP", "Mean Ev [lx]", ">0.35", ">0.40", ">0.45"}

// SummaryRows renders the report aggregates as table cells.
func SummaryRows(r Report) [][]string {
	rows := make([][]string, 0, len(r.Points))
	for _, p := range r.Points {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Point),
			fmt.Sprintf("%d", p.Rows),
			fmt.Sprintf("%.3f", p.MeanDGP),
			fmt.Sprintf("%.3f", p.MaxDGP),
			fmt.Sprintf("%.0f", p.MeanIlluminance),
			fmt.Sprintf("%.4f", p.Exceedance.Above35),
			fmt.Sprintf("%.4f", p.Exceedance.Above40),
			fmt.Sprintf("%.4f", p.Exceedance.Above45),
		})
	}
	return rows
}

// PlainReport writes the run header and the summary table as text.
func PlainReport(w io.Writer, r Report) error {
	header := fmt.Sprintf("run %d  finished %s  cores %d  ab %d  ad %d",
		r.Run.ID, r.Run.FinishedAt.Format("2006-01-02 15:04"), r.Run.Cores, r.Run.Bounces, r.Run.Divisions)
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(SummaryHeaders, SummaryRows(r), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
