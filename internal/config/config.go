// Package config loads and validates the simulation configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lumenlab/glaretrace/internal/model"
)

// Config represents the TOML configuration file. Immutable after load.
type Config struct {
	Site  SiteConfig  `toml:"site"`
	Paths PathsConfig `toml:"paths"`
}

// SiteConfig maps the geographic site section.
type SiteConfig struct {
	Lat *float64 `toml:"lat"`
	Lon *float64 `toml:"lon"`
	Mer *float64 `toml:"mer"`
}

// PathsConfig maps the directory and input-file section.
type PathsConfig struct {
	InDir      string `toml:"in_dir"`
	WorkDir    string `toml:"work_dir"`
	OutDir     string `toml:"out_dir"`
	Materials  string `toml:"materials"`
	Room       string `toml:"room"`
	Glazing    string `toml:"glazing"`
	Shading    string `toml:"shading"`
	Obstacles  string `toml:"obstacles"`
	ViewPoints string `toml:"view_points"`
}

// Load reads and validates a TOML config from the given path.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SiteModel converts the site section into the shared model type.
func (c Config) SiteModel() model.Site {
	return model.Site{Lat: *c.Site.Lat, Lon: *c.Site.Lon, Mer: *c.Site.Mer}
}

func (c Config) validate() error {
	if c.Site.Lat == nil || c.Site.Lon == nil || c.Site.Mer == nil {
		return fmt.Errorf("site section must set lat, lon, and mer")
	}
	if *c.Site.Lat < -90 || *c.Site.Lat > 90 {
		return fmt.Errorf("lat must be between -90 and 90, got %g", *c.Site.Lat)
	}
	if *c.Site.Lon < -360 || *c.Site.Lon > 360 {
		return fmt.Errorf("lon must be between -360 and 360, got %g", *c.Site.Lon)
	}
	if *c.Site.Mer < -360 || *c.Site.Mer > 360 {
		return fmt.Errorf("mer must be between -360 and 360, got %g", *c.Site.Mer)
	}
	dirs := map[string]string{
		"in_dir":   c.Paths.InDir,
		"work_dir": c.Paths.WorkDir,
		"out_dir":  c.Paths.OutDir,
	}
	for key, dir := range dirs {
		if dir == "" {
			return fmt.Errorf("paths section must set %s", key)
		}
	}
	inputs := map[string]string{
		"materials":   c.Paths.Materials,
		"room":        c.Paths.Room,
		"glazing":     c.Paths.Glazing,
		"shading":     c.Paths.Shading,
		"obstacles":   c.Paths.Obstacles,
		"view_points": c.Paths.ViewPoints,
	}
	for key, name := range inputs {
		if name == "" {
			return fmt.Errorf("paths section must set %s", key)
		}
	}
	for key, path := range c.inputPaths() {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("input file %s (%s): %w", key, path, err)
		}
	}
	return nil
}
