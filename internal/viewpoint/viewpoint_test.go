package viewpoint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePoints(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewpoints.pts")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write view points: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writePoints(t, "1.5 2 0.8 0 1 0\n\n3 4 0.8 -1 0 0\n")
	points, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Px != 1.5 || points[0].Dy != 1 {
		t.Fatalf("unexpected first point: %+v", points[0])
	}
	if points[1].Dx != -1 {
		t.Fatalf("unexpected second point: %+v", points[1])
	}
}

func TestLoadMalformedRow(t *testing.T) {
	path := writePoints(t, "1 2 3 4 5\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for short row")
	}
}

func TestLoadNonNumeric(t *testing.T) {
	path := writePoints(t, "1 2 3 4 5 x\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestLoadEmpty(t *testing.T) {
	path := writePoints(t, "\n\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	path := writePoints(t, "1.5 2 0.8 0 1 0\n")
	points, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := WriteFiles(dir, points); err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}

	view, err := os.ReadFile(filepath.Join(dir, ViewFileName(0)))
	if err != nil {
		t.Fatalf("view file missing: %v", err)
	}
	want := "rview -vta -vp 1.500 2.000 0.800 -vd 0.000 1.000 0.000 -vv 180 -vh 180 -vs 0 -vl 0 -vu 0 0 1\n"
	if string(view) != want {
		t.Fatalf("unexpected view file:\n got %q\nwant %q", view, want)
	}

	sensor, err := os.ReadFile(filepath.Join(dir, SensorFileName(0)))
	if err != nil {
		t.Fatalf("sensor file missing: %v", err)
	}
	if !strings.HasPrefix(string(sensor), "1.500 2.000 0.800 ") {
		t.Fatalf("unexpected sensor file: %q", sensor)
	}
}
