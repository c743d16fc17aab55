// Package radiance builds and runs the Radiance tool-chain commands
// and extracts scalar results from their text output.
package radiance

// Params holds the rendering parameters passed to rtrace and vwrays.
// The fixed values follow the original study setup; bounces and
// divisions are CLI-tunable.
type Params struct {
	AmbientAccuracy float64 // -aa
	AmbientSamples  int     // -as
	LimitWeight     float64 // -lw
	SpecularThresh  float64 // -st
	Bounces         int     // -ab
	Divisions       int     // -ad
	XRes            int
	YRes            int
}

// DefaultParams returns the standard parameter set with the given
// ambient bounces and divisions.
func DefaultParams(bounces, divisions int) Params {
	return Params{
		AmbientAccuracy: 0.1,
		AmbientSamples:  1000,
		LimitWeight:     0.002,
		SpecularThresh:  0.15,
		Bounces:         bounces,
		Divisions:       divisions,
		XRes:            900,
		YRes:            900,
	}
}
