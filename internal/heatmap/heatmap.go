// Package heatmap renders day-by-hour DGP heat maps for a view point.
package heatmap

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lumenlab/glaretrace/internal/model"
)

// scaleMax caps the color scale just past the intolerable-glare band so
// saturated instants stay distinguishable from ordinary daylight.
const scaleMax = 0.6

const hoursPerDay = 24

type dayKey struct {
	month int
	day   int
}

// dgpGrid lays sampled days out as columns and hours of the day as
// rows.
type dgpGrid struct {
	days []dayKey
	z    [][]float64 // [day][hour]
}

func (g *dgpGrid) Dims() (c, r int) {
	return len(g.days), hoursPerDay
}

func (g *dgpGrid) Z(c, r int) float64 {
	return g.z[c][r]
}

func (g *dgpGrid) X(c int) float64 {
	return float64(c)
}

func (g *dgpGrid) Y(r int) float64 {
	return float64(r)
}

// Min returns a small positive floor so night hours, which carry no
// result at all, render in the underflow color.
func (g *dgpGrid) Min() float64 {
	return 0.01
}

func (g *dgpGrid) Max() float64 {
	return scaleMax
}

// dayTicker labels day columns as month/day.
type dayTicker struct {
	days []dayKey
}

func (t dayTicker) Ticks(min, max float64) []plot.Tick {
	step := 1
	if len(t.days) > 12 {
		step = len(t.days) / 12
	}
	var ticks []plot.Tick
	for i, d := range t.days {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		tick := plot.Tick{Value: v}
		if i%step == 0 {
			tick.Label = fmt.Sprintf("%d/%d", d.month, d.day)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

// New builds a heat map of the DGP results for one view point.
func New(point int, results []model.Result) (*plot.Plot, error) {
	grid := buildGrid(point, results)
	if len(grid.days) == 0 {
		return nil, fmt.Errorf("no results for view point %d", point)
	}

	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("DGP, view point %d", point)
	plt.X.Label.Text = "day"
	plt.Y.Label.Text = "hour"
	plt.X.Tick.Marker = dayTicker{grid.days}

	hm := plotter.NewHeatMap(grid, palette.Heat(256, 1))
	hm.Underflow = color.Black
	hm.Rasterized = true
	plt.Add(hm)

	return plt, nil
}

// WritePNG renders the heat map for one view point to a PNG file.
func WritePNG(path string, point int, results []model.Result) error {
	plt, err := New(point, results)
	if err != nil {
		return err
	}
	if err := plt.Save(20*vg.Centimeter, 15*vg.Centimeter, path); err != nil {
		return fmt.Errorf("failed to save heat map: %w", err)
	}
	return nil
}

func buildGrid(point int, results []model.Result) *dgpGrid {
	grid := &dgpGrid{}
	cols := make(map[dayKey]int)
	for _, res := range results {
		if res.Point != point {
			continue
		}
		key := dayKey{res.Month, res.Day}
		col, ok := cols[key]
		if !ok {
			col = len(grid.days)
			cols[key] = col
			grid.days = append(grid.days, key)
			grid.z = append(grid.z, make([]float64, hoursPerDay))
		}
		hour := int(res.Hour)
		if hour < 0 || hour >= hoursPerDay {
			continue
		}
		grid.z[col][hour] = res.DGP
	}
	return grid
}
