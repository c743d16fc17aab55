// Package config loads and validates the simulation configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// skyglowScene is the fixed sky/ground glow fragment added to every
// scene so the sky dome and ground plane emit the gensky distribution.
const skyglowScene = "skyfunc glow groundglow 0 0 4 1 1 1 0 \n" +
	"groundglow source ground 0 0 4 0 0 -1 180 \n" +
	"skyfunc glow skyglow 0 0 4 1 1 1 0 \n" +
	"skyglow source skydome 0 0 4 0 0 1 180"

// MaterialsPath returns the materials file path under in_dir.
func (c Config) MaterialsPath() string { return filepath.Join(c.Paths.InDir, c.Paths.Materials) }

// RoomPath returns the room geometry file path under in_dir.
func (c Config) RoomPath() string { return filepath.Join(c.Paths.InDir, c.Paths.Room) }

// GlazingPath returns the glazing file path under in_dir.
func (c Config) GlazingPath() string { return filepath.Join(c.Paths.InDir, c.Paths.Glazing) }

// ShadingPath returns the shading file path under in_dir.
func (c Config) ShadingPath() string { return filepath.Join(c.Paths.InDir, c.Paths.Shading) }

// ObstaclesPath returns the obstacles file path under in_dir.
func (c Config) ObstaclesPath() string { return filepath.Join(c.Paths.InDir, c.Paths.Obstacles) }

// ViewPointsPath returns the view-point file path under in_dir.
func (c Config) ViewPointsPath() string { return filepath.Join(c.Paths.InDir, c.Paths.ViewPoints) }

func (c Config) inputPaths() map[string]string {
	return map[string]string{
		"materials":   c.MaterialsPath(),
		"room":        c.RoomPath(),
		"glazing":     c.GlazingPath(),
		"shading":     c.ShadingPath(),
		"obstacles":   c.ObstaclesPath(),
		"view_points": c.ViewPointsPath(),
	}
}

// WorkPath returns a path inside the working directory.
func (c Config) WorkPath(name string) string { return filepath.Join(c.Paths.WorkDir, name) }

// OutPath returns a path inside the output directory.
func (c Config) OutPath(name string) string { return filepath.Join(c.Paths.OutDir, name) }

// SkyglowPath returns the seeded sky glow fragment path.
func (c Config) SkyglowPath() string { return c.WorkPath("skyglow.rad") }

// DBPath returns the SQLite result archive path.
func (c Config) DBPath() string { return c.OutPath("glaretrace.db") }

// EnsureDirs creates the working and output directories and seeds the
// sky glow fragment when it does not exist yet.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.OutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	path := c.SkyglowPath()
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat sky glow file: %w", err)
	}
	if err := os.WriteFile(path, []byte(skyglowScene), 0o644); err != nil {
		return fmt.Errorf("failed to write sky glow file: %w", err)
	}
	return nil
}
