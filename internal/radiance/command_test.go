package radiance

import (
	"strings"
	"testing"

	"github.com/lumenlab/glaretrace/internal/model"
)

func TestGenskyCommand(t *testing.T) {
	site := model.Site{Lat: 40.4, Lon: 3.7, Mer: 15}
	cmd := Gensky(site, model.Instant{Month: 11, Day: 5, Hour: 10.5})
	want := "gensky 11 5 10.5 +s -a 40.4 -o 3.7 -m 15"
	if got := cmd.String(); got != want {
		t.Fatalf("unexpected gensky command:\n got %q\nwant %q", got, want)
	}
}

func TestOconvRedirect(t *testing.T) {
	cmd := Oconv([]string{"sky.rad", "mat.rad"}, "scene.oct")
	if got := cmd.String(); got != "oconv sky.rad mat.rad > scene.oct" {
		t.Fatalf("unexpected oconv command: %q", got)
	}
}

func TestRtraceIrradianceCommand(t *testing.T) {
	p := DefaultParams(3, 500)
	cmd := RtraceIrradiance("scene.oct", "sensor_0.pts", 4, 0, p)
	got := cmd.String()
	want := "rtrace -h -I -ab 0 -ad 500 -aa 0.1 -as 1000 -lw 0.002 -n 4 -ov scene.oct < sensor_0.pts"
	if got != want {
		t.Fatalf("unexpected rtrace command:\n got %q\nwant %q", got, want)
	}
}

func TestRtraceImageSplicesDims(t *testing.T) {
	p := DefaultParams(3, 500)
	cmd := RtraceImage("scene.oct", 2, p, []string{"-x", "900", "-y", "900", "-ld-"}, "out.hdr")
	got := cmd.String()
	if !strings.Contains(got, "-st 0.15 -ld -ov -ffc -x 900 -y 900 -ld- -h+ scene.oct") {
		t.Fatalf("dims not spliced into rtrace image command: %q", got)
	}
	if !strings.HasSuffix(got, "> out.hdr") {
		t.Fatalf("missing hdr redirect: %q", got)
	}
}

func TestEvalglareStdinMode(t *testing.T) {
	if got := Evalglare("").String(); got != "evalglare -vta -vh 180 -vv 180 -vu 0 0 1" {
		t.Fatalf("unexpected evalglare command: %q", got)
	}
	if got := Evalglare("a.hdr").String(); !strings.HasSuffix(got, " a.hdr") {
		t.Fatalf("expected hdr path argument: %q", got)
	}
}

func TestVwraysCommands(t *testing.T) {
	p := DefaultParams(3, 500)
	if got := VwraysView("view_0.vf", p).String(); got != "vwrays -ff -x 900 -y 900 -vf view_0.vf" {
		t.Fatalf("unexpected vwrays command: %q", got)
	}
	if got := VwraysDims("view_0.vf", p).String(); got != "vwrays -d -x 900 -y 900 -vf view_0.vf" {
		t.Fatalf("unexpected vwrays -d command: %q", got)
	}
}
