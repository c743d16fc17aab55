package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumenlab/glaretrace/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "glaretrace.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return st
}

func testRun(finished time.Time) model.RunInfo {
	return model.RunInfo{
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
		Cores:      4,
		Bounces:    3,
		Divisions:  500,
		ElapsedMs:  60000,
	}
}

func TestInsertAndListResults(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	results := []model.Result{
		{Point: 1, Month: 1, Day: 8, Hour: 13, DGP: 0.41, Illuminance: 5100},
		{Point: 0, Month: 1, Day: 1, Hour: 12, DGP: 0.38, Illuminance: 4200},
	}
	id, err := st.InsertRun(ctx, testRun(time.Now()), results)
	if err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	got, err := st.ListResults(ctx, id, -1)
	if err != nil {
		t.Fatalf("ListResults failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Point != 0 || got[1].Point != 1 {
		t.Fatalf("results not ordered by point: %+v", got)
	}

	only, err := st.ListResults(ctx, id, 1)
	if err != nil {
		t.Fatalf("ListResults for point failed: %v", err)
	}
	if len(only) != 1 || only[0].DGP != 0.41 {
		t.Fatalf("unexpected filtered results: %+v", only)
	}

	points, err := st.Points(ctx, id)
	if err != nil {
		t.Fatalf("Points failed: %v", err)
	}
	if len(points) != 2 || points[0] != 0 || points[1] != 1 {
		t.Fatalf("unexpected points: %v", points)
	}
}

func TestLatestRun(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	if _, err := st.InsertRun(ctx, testRun(base), nil); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}
	newer := testRun(base.Add(time.Hour))
	newer.Cores = 8
	id, err := st.InsertRun(ctx, newer, nil)
	if err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	latest, err := st.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun failed: %v", err)
	}
	if latest.ID != id || latest.Cores != 8 {
		t.Fatalf("unexpected latest run: %+v", latest)
	}

	byID, err := st.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if byID.FinishedAt.UTC() != newer.FinishedAt.UTC() {
		t.Fatalf("unexpected run timestamps: %+v", byID)
	}
}

func TestLatestRunEmpty(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.LatestRun(context.Background()); err == nil {
		t.Fatal("expected error with no runs")
	}
}
