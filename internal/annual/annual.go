// Package annual aggregates a DGP time series into annual
// glare-exceedance fractions.
package annual

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lumenlab/glaretrace/internal/model"
)

// Each exceeding sampled hour represents hoursPerSample hours of the
// occupiedHours annual daylight budget.
const (
	hoursPerSample = 5.43
	occupiedHours  = 1304
)

// dgpColumn is the zero-based column of the DGP value in a result row
// (month day hour dgp illuminance).
const dgpColumn = 3

// Thresholds are the DGP levels reported in the summary, ascending.
var Thresholds = [3]float64{0.35, 0.40, 0.45}

// EvalSeries computes the exceedance fractions for a DGP series.
func EvalSeries(point int, series []float64) model.Summary {
	s := model.Summary{Point: point}
	counts := [3]int{}
	for _, dgp := range series {
		for i, th := range Thresholds {
			if dgp > th {
				counts[i]++
			}
		}
	}
	weight := hoursPerSample / occupiedHours
	s.Above35 = float64(counts[0]) * weight
	s.Above40 = float64(counts[1]) * weight
	s.Above45 = float64(counts[2]) * weight
	return s
}

// EvalFile reads a per-view-point result file back from disk and
// computes its summary.
func EvalFile(path string, point int) (model.Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to open result file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only result file.
			_ = cerr
		}
	}()

	var series []float64
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) <= dgpColumn {
			return model.Summary{}, fmt.Errorf("result line %d: want at least %d columns, got %d", lineNo, dgpColumn+1, len(fields))
		}
		dgp, err := strconv.ParseFloat(fields[dgpColumn], 64)
		if err != nil {
			return model.Summary{}, fmt.Errorf("result line %d: %w", lineNo, err)
		}
		series = append(series, dgp)
	}
	if err := scanner.Err(); err != nil {
		return model.Summary{}, err
	}
	return EvalSeries(point, series), nil
}

// WriteSummary writes the three exceedance fractions to path.
func WriteSummary(path string, s model.Summary) error {
	line := fmt.Sprintf("%.4f %.4f %.4f\n", s.Above35, s.Above40, s.Above45)
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
