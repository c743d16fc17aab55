package annual

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEvalSeriesCountsAndWeight(t *testing.T) {
	series := []float64{0.30, 0.36, 0.41, 0.46, 0.46}
	s := EvalSeries(0, series)
	weight := 5.43 / 1304.0
	if math.Abs(s.Above35-4*weight) > 1e-12 {
		t.Fatalf("Above35: got %g, want %g", s.Above35, 4*weight)
	}
	if math.Abs(s.Above40-3*weight) > 1e-12 {
		t.Fatalf("Above40: got %g, want %g", s.Above40, 3*weight)
	}
	if math.Abs(s.Above45-2*weight) > 1e-12 {
		t.Fatalf("Above45: got %g, want %g", s.Above45, 2*weight)
	}
}

func TestEvalSeriesMonotonicThresholds(t *testing.T) {
	series := []float64{0.1, 0.37, 0.42, 0.48, 0.39, 0.52, 0.44}
	s := EvalSeries(1, series)
	if s.Above35 < s.Above40 || s.Above40 < s.Above45 {
		t.Fatalf("fractions must be non-increasing across thresholds: %+v", s)
	}
}

func TestEvalSeriesThresholdBoundary(t *testing.T) {
	// Exactly at the threshold does not exceed it.
	s := EvalSeries(0, []float64{0.35, 0.40, 0.45})
	if s.Above35 != 2*5.43/1304.0 {
		t.Fatalf("0.35 must not count as exceeding 0.35: %+v", s)
	}
	if s.Above45 != 0 {
		t.Fatalf("0.45 must not count as exceeding 0.45: %+v", s)
	}
}

func TestEvalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dgp_0.out")
	content := "1 1 12 0.38 4200.0\n1 8 12 0.47 6100.0\n\n12 22 13 0.20 900.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write result file: %v", err)
	}
	s, err := EvalFile(path, 0)
	if err != nil {
		t.Fatalf("EvalFile failed: %v", err)
	}
	weight := 5.43 / 1304.0
	if math.Abs(s.Above35-2*weight) > 1e-12 || math.Abs(s.Above45-weight) > 1e-12 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestEvalFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dgp_0.out")
	if err := os.WriteFile(path, []byte("1 1 12\n"), 0o644); err != nil {
		t.Fatalf("failed to write result file: %v", err)
	}
	if _, err := EvalFile(path, 0); err == nil {
		t.Fatal("expected error for short row")
	}
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fDGPe_0.out")
	s := EvalSeries(0, []float64{0.5})
	if err := WriteSummary(path, s); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("summary file missing: %v", err)
	}
	if string(data) != "0.0042 0.0042 0.0042\n" {
		t.Fatalf("unexpected summary content: %q", data)
	}
}
