// Package viewpoint loads sensor view points and emits the Radiance
// view and sensor files derived from them.
package viewpoint

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lumenlab/glaretrace/internal/model"
)

// Load reads one view point per line from the provided file path. Each
// line holds six whitespace-delimited floats: position xyz, direction
// xyz. Blank lines are skipped.
func Load(path string) ([]model.ViewPoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only view point file.
			_ = cerr
		}
	}()

	var points []model.ViewPoint
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 6 {
			return nil, fmt.Errorf("view point line %d: want 6 values, got %d", lineNo, len(fields))
		}
		values := make([]float64, 6)
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("view point line %d: %w", lineNo, err)
			}
			values[i] = v
		}
		points = append(points, model.ViewPoint{
			Px: values[0], Py: values[1], Pz: values[2],
			Dx: values[3], Dy: values[4], Dz: values[5],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("view point file is empty")
	}
	return points, nil
}

// ViewFileName returns the view definition file name for point i.
func ViewFileName(i int) string { return fmt.Sprintf("view_%d.vf", i) }

// SensorFileName returns the sensor point file name for point i.
func SensorFileName(i int) string { return fmt.Sprintf("sensor_%d.pts", i) }

// WriteFiles emits a 180-degree angular fisheye view definition and a
// one-row sensor file per view point into dir.
func WriteFiles(dir string, points []model.ViewPoint) error {
	for i, p := range points {
		view := fmt.Sprintf(
			"rview -vta -vp %1.3f %1.3f %1.3f -vd %1.3f %1.3f %1.3f -vv 180 -vh 180 -vs 0 -vl 0 -vu 0 0 1\n",
			p.Px, p.Py, p.Pz, p.Dx, p.Dy, p.Dz)
		if err := os.WriteFile(filepath.Join(dir, ViewFileName(i)), []byte(view), 0o644); err != nil {
			return fmt.Errorf("failed to write view file %d: %w", i, err)
		}
		sensor := fmt.Sprintf("%1.3f %1.3f %1.3f %1.3f %1.3f %1.3f\n",
			p.Px, p.Py, p.Pz, p.Dx, p.Dy, p.Dz)
		if err := os.WriteFile(filepath.Join(dir, SensorFileName(i)), []byte(sensor), 0o644); err != nil {
			return fmt.Errorf("failed to write sensor file %d: %w", i, err)
		}
	}
	return nil
}
