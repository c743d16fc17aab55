package stats

import (
	"strings"
	"testing"
)

func TestPlotDGPBasic(t *testing.T) {
	var b strings.Builder
	values := []float64{0.1, 0.2, 0.3, 0.45, 0.5, 0.42, 0.3, 0.2}
	if err := PlotDGP(&b, "point 0", values, 0.40, 20, 6); err != nil {
		t.Fatalf("PlotDGP failed: %v", err)
	}
	out := b.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Title + height rows + footer.
	if len(lines) != 1+6+1 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "point 0" {
		t.Fatalf("unexpected title line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "0.50") {
		t.Fatalf("missing max axis label: %q", lines[1])
	}
	if !strings.Contains(lines[6], "0.10") {
		t.Fatalf("missing min axis label: %q", lines[6])
	}
	if !strings.Contains(lines[7], "threshold 0.40") {
		t.Fatalf("missing footer: %q", lines[7])
	}
	if !strings.ContainsRune(out, '│') {
		t.Fatalf("missing axis separator: %q", out)
	}
}

func TestPlotDGPEmpty(t *testing.T) {
	var b strings.Builder
	if err := PlotDGP(&b, "empty", nil, 0.40, 20, 6); err != nil {
		t.Fatalf("PlotDGP failed: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", b.String())
	}
}

func TestPlotDGPFlatSeries(t *testing.T) {
	var b strings.Builder
	if err := PlotDGP(&b, "", []float64{0.40, 0.40, 0.40}, 0.40, 15, 4); err != nil {
		t.Fatalf("PlotDGP failed: %v", err)
	}
	if b.Len() == 0 {
		t.Fatal("expected output for a flat series")
	}
}

func TestResample(t *testing.T) {
	out := resample([]float64{1, 1, 3, 3}, 2)
	if len(out) != 2 || out[0] != 1 || out[1] != 3 {
		t.Fatalf("unexpected resample: %v", out)
	}
	passthrough := resample([]float64{1, 2}, 10)
	if len(passthrough) != 2 {
		t.Fatalf("short series must pass through: %v", passthrough)
	}
}
