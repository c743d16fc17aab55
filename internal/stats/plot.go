package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultPlotHeight   = 8
	minPlotWidth        = 10
	axisSeparator       = " │ "
	terminalWidthBackup = 80
)

// PlotDGP renders a braille time-series plot of a DGP series with a
// dashed reference line at threshold. Zero width picks the terminal
// width.
func PlotDGP(w io.Writer, title string, values []float64, threshold float64, width, height int) error {
	if len(values) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = plotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	scaled := resample(values, width)
	minVal, maxVal := seriesMinMax(scaled)
	if threshold < minVal {
		minVal = threshold
	}
	if threshold > maxVal {
		maxVal = threshold
	}
	if maxVal-minVal < 1e-9 {
		minVal -= 0.01
		maxVal += 0.01
	}

	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	rows := height * 4
	toRow := func(v float64) int {
		r := int(math.Round((maxVal - v) / (maxVal - minVal) * float64(rows-1)))
		if r < 0 {
			r = 0
		}
		if r >= rows {
			r = rows - 1
		}
		return r
	}

	// Dashed threshold line underneath the series.
	thRow := toRow(threshold)
	for x := 0; x < width*2; x += 4 {
		setBrailleDot(cells, x, thRow)
	}

	prevX, prevY := -1, -1
	for x, v := range scaled {
		px, py := x*2, toRow(v)
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				setBrailleDot(cells, dx, dy)
			})
		} else {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	labels := axisLabels(minVal, maxVal, height)
	labelWidth := 0
	for _, l := range labels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", labelWidth, labels[y], axisSeparator)
		for x := 0; x < width; x++ {
			row.WriteRune(brailleFromMask(cells[y][x]))
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%*s  threshold %.2f, %d samples\n", labelWidth, "", threshold, len(values))
	return err
}

func axisLabels(minVal, maxVal float64, height int) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = fmt.Sprintf("%.2f", maxVal)
	if height > 2 {
		labels[height/2] = fmt.Sprintf("%.2f", (minVal+maxVal)/2)
	}
	if height > 1 {
		labels[height-1] = fmt.Sprintf("%.2f", minVal)
	}
	return labels
}

func seriesMinMax(values []float64) (float64, float64) {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

func resample(values []float64, width int) []float64 {
	if len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		lo := i * len(values) / width
		hi := (i + 1) * len(values) / width
		if hi <= lo {
			hi = lo + 1
		}
		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

// setBrailleDot sets the dot at plot coordinates (x in half-cells, y in
// quarter-cells).
func setBrailleDot(cells [][]uint8, x, y int) {
	cy, ry := y/4, y%4
	cx, rx := x/2, x%2
	if cy < 0 || cy >= len(cells) || cx < 0 || cx >= len(cells[cy]) {
		return
	}
	var masks = [4][2]uint8{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	cells[cy][cx] |= masks[ry][rx]
}

func brailleFromMask(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func plotWidthFor(totalWidth int) int {
	// Leave room for the value axis and separator.
	plotWidth := totalWidth - 4 - runewidth.StringWidth(axisSeparator)
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
