package radiance

import (
	"strconv"
	"strings"

	"github.com/lumenlab/glaretrace/internal/model"
)

// Cmd is one external tool invocation. StdinPath and StdoutPath stand
// in for the shell redirections of the original tool chain.
type Cmd struct {
	Name       string
	Args       []string
	StdinPath  string
	StdoutPath string
}

// String renders the invocation the way it would be typed in a shell.
func (c Cmd) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, arg := range c.Args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	if c.StdinPath != "" {
		b.WriteString(" < ")
		b.WriteString(c.StdinPath)
	}
	if c.StdoutPath != "" {
		b.WriteString(" > ")
		b.WriteString(c.StdoutPath)
	}
	return b.String()
}

// FormatHour renders a decimal hour without trailing zeros ("10",
// "10.5"), the way gensky and the output file names expect it.
func FormatHour(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Gensky builds the clear-sky description command for an instant.
func Gensky(site model.Site, in model.Instant) Cmd {
	return Cmd{
		Name: "gensky",
		Args: []string{
			strconv.Itoa(in.Month), strconv.Itoa(in.Day), FormatHour(in.Hour),
			"+s",
			"-a", formatFloat(site.Lat),
			"-o", formatFloat(site.Lon),
			"-m", formatFloat(site.Mer),
		},
	}
}

// Oconv assembles the scene octree from the given scene files.
func Oconv(scenePaths []string, octPath string) Cmd {
	return Cmd{Name: "oconv", Args: scenePaths, StdoutPath: octPath}
}

// RtraceIrradiance computes irradiance at the sensor points with the
// given number of ambient bounces (0 isolates the direct component).
func RtraceIrradiance(octPath, sensorPath string, cores, bounces int, p Params) Cmd {
	return Cmd{
		Name: "rtrace",
		Args: []string{
			"-h", "-I",
			"-ab", strconv.Itoa(bounces),
			"-ad", strconv.Itoa(p.Divisions),
			"-aa", formatFloat(p.AmbientAccuracy),
			"-as", strconv.Itoa(p.AmbientSamples),
			"-lw", formatFloat(p.LimitWeight),
			"-n", strconv.Itoa(cores),
			"-ov", octPath,
		},
		StdinPath: sensorPath,
	}
}

// VwraysView emits the ray samples for the fisheye view.
func VwraysView(viewPath string, p Params) Cmd {
	return Cmd{
		Name: "vwrays",
		Args: []string{
			"-ff",
			"-x", strconv.Itoa(p.XRes),
			"-y", strconv.Itoa(p.YRes),
			"-vf", viewPath,
		},
	}
}

// VwraysDims reports the picture dimension arguments for the view; its
// output is spliced into the image rtrace invocation.
func VwraysDims(viewPath string, p Params) Cmd {
	return Cmd{
		Name: "vwrays",
		Args: []string{
			"-d",
			"-x", strconv.Itoa(p.XRes),
			"-y", strconv.Itoa(p.YRes),
			"-vf", viewPath,
		},
	}
}

// RtraceImage renders the luminance map for rays piped from vwrays.
// dims are the tokens reported by VwraysDims.
func RtraceImage(octPath string, cores int, p Params, dims []string, hdrPath string) Cmd {
	args := []string{
		"-n", strconv.Itoa(cores),
		"-ab", strconv.Itoa(p.Bounces),
		"-ad", strconv.Itoa(p.Divisions),
		"-aa", formatFloat(p.AmbientAccuracy),
		"-as", strconv.Itoa(p.AmbientSamples),
		"-lw", formatFloat(p.LimitWeight),
		"-st", formatFloat(p.SpecularThresh),
		"-ld", "-ov", "-ffc",
	}
	args = append(args, dims...)
	args = append(args, "-h+", octPath)
	return Cmd{Name: "rtrace", Args: args, StdoutPath: hdrPath}
}

// Evalglare computes the glare indices for a 180-degree fisheye
// luminance map. With hdrPath empty the image is read from stdin.
func Evalglare(hdrPath string) Cmd {
	args := []string{"-vta", "-vh", "180", "-vv", "180", "-vu", "0", "0", "1"}
	if hdrPath != "" {
		args = append(args, hdrPath)
	}
	return Cmd{Name: "evalglare", Args: args}
}

// Falsecolor renders a false-color luminance overlay of the HDR image.
func Falsecolor(hdrPath string) Cmd {
	return Cmd{
		Name: "falsecolor",
		Args: []string{"-ip", hdrPath, "-l", "cd/m2", "-lw", "75", "-s", "5000", "-n", "5"},
	}
}

// RaTiff converts the piped Radiance picture to a compressed TIFF.
func RaTiff(tifPath string) Cmd {
	return Cmd{Name: "ra_tiff", Args: []string{"-z", "-", tifPath}}
}
