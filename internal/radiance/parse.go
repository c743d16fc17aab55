package radiance

import (
	"fmt"
	"strconv"
	"strings"
)

// luminousEfficacy converts rtrace irradiance (W/m²) to illuminance
// (lux) with the standard Radiance white-light factor.
const luminousEfficacy = 179

// genskyAltitudeToken is the whitespace-token index of the solar
// altitude in gensky output. The header echoes the invocation, so this
// holds only for the fixed argument shape produced by Gensky.
const genskyAltitudeToken = 22

// ParseSunAltitude extracts the solar altitude in degrees from gensky
// output.
func ParseSunAltitude(output string) (float64, error) {
	fields := strings.Fields(output)
	if len(fields) <= genskyAltitudeToken {
		return 0, fmt.Errorf("gensky output too short: %d tokens", len(fields))
	}
	alt, err := strconv.ParseFloat(fields[genskyAltitudeToken], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse solar altitude: %w", err)
	}
	return alt, nil
}

// ParseIlluminance converts the first rtrace irradiance component to
// illuminance in lux.
func ParseIlluminance(output string) (float64, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty rtrace output")
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rtrace irradiance: %w", err)
	}
	return v * luminousEfficacy, nil
}

// ParseDGP extracts the Daylight Glare Probability from evalglare
// output (second whitespace token).
func ParseDGP(output string) (float64, error) {
	fields := strings.Fields(output)
	if len(fields) < 2 {
		return 0, fmt.Errorf("evalglare output too short: %q", output)
	}
	dgp, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse DGP: %w", err)
	}
	return dgp, nil
}
