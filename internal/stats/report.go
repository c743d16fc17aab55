// Package stats builds glare reports from the result archive.
package stats

import (
	"context"
	"fmt"

	"github.com/lumenlab/glaretrace/internal/annual"
	"github.com/lumenlab/glaretrace/internal/model"
	"github.com/lumenlab/glaretrace/internal/store"
)

// PointSummary aggregates one view point of a run.
type PointSummary struct {
	Point           int
	Rows            int
	MeanDGP         float64
	MaxDGP          float64
	MeanIlluminance float64
	Exceedance      model.Summary
}

// Report contains precomputed data for report rendering.
type Report struct {
	Run     model.RunInfo
	Points  []PointSummary
	Results []model.Result
}

// BuildReport loads and prepares archive data for rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.ReportConfig) (Report, error) {
	var run model.RunInfo
	var err error
	if cfg.RunID > 0 {
		run, err = st.GetRun(ctx, cfg.RunID)
	} else {
		run, err = st.LatestRun(ctx)
	}
	if err != nil {
		return Report{}, err
	}

	results, err := st.ListResults(ctx, run.ID, cfg.Point)
	if err != nil {
		return Report{}, err
	}
	if len(results) == 0 {
		return Report{}, fmt.Errorf("run %d has no results", run.ID)
	}

	return Report{
		Run:     run,
		Points:  summarizePoints(results),
		Results: results,
	}, nil
}

// PointSeries returns the DGP series of one view point in instant order.
func (r Report) PointSeries(point int) []float64 {
	var series []float64
	for _, res := range r.Results {
		if res.Point == point {
			series = append(series, res.DGP)
		}
	}
	return series
}

func summarizePoints(results []model.Result) []PointSummary {
	var summaries []PointSummary
	var cur *PointSummary
	var dgpSeries []float64
	flush := func() {
		if cur == nil {
			return
		}
		cur.MeanDGP /= float64(cur.Rows)
		cur.MeanIlluminance /= float64(cur.Rows)
		cur.Exceedance = annual.EvalSeries(cur.Point, dgpSeries)
		summaries = append(summaries, *cur)
	}
	for _, res := range results {
		if cur == nil || res.Point != cur.Point {
			flush()
			cur = &PointSummary{Point: res.Point}
			dgpSeries = dgpSeries[:0]
		}
		cur.Rows++
		cur.MeanDGP += res.DGP
		cur.MeanIlluminance += res.Illuminance
		if res.DGP > cur.MaxDGP {
			cur.MaxDGP = res.DGP
		}
		dgpSeries = append(dgpSeries, res.DGP)
	}
	flush()
	return summaries
}
