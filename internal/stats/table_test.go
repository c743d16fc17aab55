package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/lumenlab/glaretrace/internal/annual"
	"github.com/lumenlab/glaretrace/internal/model"
)

func TestFormatTableAlignment(t *testing.T) {
	lines := formatTable(
		[]string{"Point", "Max DGP"},
		[][]string{{"0", "0.512"}, {"12", "0.4"}},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Point  Max DGP" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "0        0.512" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "12         0.4" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}

func TestPlainReport(t *testing.T) {
	r := Report{
		Run: model.RunInfo{
			ID:         3,
			FinishedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
			Cores:      4,
			Bounces:    3,
			Divisions:  500,
		},
		Points: []PointSummary{
			{
				Point:           0,
				Rows:            2,
				MeanDGP:         0.40,
				MaxDGP:          0.50,
				MeanIlluminance: 4000,
				Exceedance:      annual.EvalSeries(0, []float64{0.30, 0.50}),
			},
		},
	}
	var b strings.Builder
	if err := PlainReport(&b, r); err != nil {
		t.Fatalf("PlainReport failed: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "run 3") || !strings.Contains(out, "cores 4") {
		t.Fatalf("missing run header: %q", out)
	}
	if !strings.Contains(out, "Mean Ev [lx]") {
		t.Fatalf("missing table header: %q", out)
	}
	if !strings.Contains(out, "0.500") {
		t.Fatalf("missing max DGP cell: %q", out)
	}
}
