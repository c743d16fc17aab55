// Package sun estimates the local solar position. The estimate is
// informational: gensky remains the authority for the daylight gate.
package sun

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/lumenlab/glaretrace/internal/model"
)

// referenceYear anchors the year-less (month, day, hour) instants.
const referenceYear = 2021

// Altitude returns the estimated solar altitude in degrees for the
// instant at the site, from -90 (nadir) to 90 (zenith).
func Altitude(site model.Site, in model.Instant) float64 {
	// suncalc returns angles in radians and takes longitude east
	// positive; the site carries the gensky west-positive convention.
	pos := suncalc.GetPosition(instantUTC(site, in), site.Lat, -site.Lon)
	const rad2deg = 180 / math.Pi
	return pos.Altitude * rad2deg
}

// instantUTC converts a local standard-time instant on the site
// meridian to UTC. The meridian is in degrees west; 15 degrees per hour.
func instantUTC(site model.Site, in model.Instant) time.Time {
	base := time.Date(referenceYear, time.Month(in.Month), in.Day, 0, 0, 0, 0, time.UTC)
	localHours := in.Hour + site.Mer/15
	return base.Add(time.Duration(localHours * float64(time.Hour)))
}
