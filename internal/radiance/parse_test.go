package radiance

import (
	"math"
	"testing"
)

const genskyOutput = `# gensky 3 21 12 +s -a 40.4 -o 3.7 -m 15
# Local solar time: 11.24
# Solar altitude and azimuth: 49.8 -12.3
# Ground ambient level: 19.9

void light solar
0
0
3 6.17e+06 6.17e+06 6.17e+06

solar source sun
0
0
4 0.021495 -0.885408 0.464302 0.533
`

func TestParseSunAltitude(t *testing.T) {
	alt, err := ParseSunAltitude(genskyOutput)
	if err != nil {
		t.Fatalf("ParseSunAltitude failed: %v", err)
	}
	if alt != 49.8 {
		t.Fatalf("expected altitude 49.8, got %g", alt)
	}
}

func TestParseSunAltitudeShort(t *testing.T) {
	if _, err := ParseSunAltitude("# gensky 3 21 12"); err == nil {
		t.Fatal("expected error for truncated gensky output")
	}
}

func TestParseIlluminance(t *testing.T) {
	lux, err := ParseIlluminance("5.024581e+01	5.024581e+01	5.024581e+01\n")
	if err != nil {
		t.Fatalf("ParseIlluminance failed: %v", err)
	}
	if math.Abs(lux-50.24581*179) > 1e-6 {
		t.Fatalf("unexpected illuminance: %g", lux)
	}
}

func TestParseIlluminanceEmpty(t *testing.T) {
	if _, err := ParseIlluminance("  \n"); err == nil {
		t.Fatal("expected error for empty rtrace output")
	}
}

func TestParseDGP(t *testing.T) {
	dgp, err := ParseDGP("dgp: 0.384 dgi: 21.2 ugr: 19.1\n")
	if err != nil {
		t.Fatalf("ParseDGP failed: %v", err)
	}
	if dgp != 0.384 {
		t.Fatalf("expected DGP 0.384, got %g", dgp)
	}
}

func TestParseDGPShort(t *testing.T) {
	if _, err := ParseDGP("dgp:"); err == nil {
		t.Fatal("expected error for truncated evalglare output")
	}
}
