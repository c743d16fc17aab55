// Package model defines shared data structures.
package model

import "time"

// Site holds the geographic location of the room model.
type Site struct {
	Lat float64 // latitude in degrees, north positive
	Lon float64 // longitude in degrees, west positive (gensky convention)
	Mer float64 // time-zone meridian in degrees west
}

// RunOptions carries the CLI tuning for a simulation run.
type RunOptions struct {
	Cores       int
	Image       bool
	Dates       []string // mmddhh instants; empty means annual schedule
	Bounces     int      // rtrace -ab
	Divisions   int      // rtrace -ad
	ForceDirect bool     // evaluate glare even without a visible solar disk
}

// Instant is a simulated point in time.
type Instant struct {
	Month int
	Day   int
	Hour  float64
}

// ViewPoint is a sensor position and viewing direction.
type ViewPoint struct {
	Px, Py, Pz float64
	Dx, Dy, Dz float64
}

// Result is one qualifying instant for one view point.
type Result struct {
	Point       int
	Month       int
	Day         int
	Hour        float64
	DGP         float64
	Illuminance float64
}

// Summary holds the annual glare-exceedance fractions for a view point.
type Summary struct {
	Point   int
	Above35 float64
	Above40 float64
	Above45 float64
}

// RunInfo describes a completed run stored in the archive.
type RunInfo struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Cores      int
	Bounces    int
	Divisions  int
	Image      bool
	Direct     bool
	ElapsedMs  int64
}

// ReportConfig defines filters for report output.
type ReportConfig struct {
	RunID int64 // 0 selects the most recent run
	Point int   // -1 selects all view points
}
