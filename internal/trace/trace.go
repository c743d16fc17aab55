// Package trace drives the Radiance tool chain over the simulation
// schedule and writes the per-view-point results.
package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lumenlab/glaretrace/internal/annual"
	"github.com/lumenlab/glaretrace/internal/config"
	"github.com/lumenlab/glaretrace/internal/model"
	"github.com/lumenlab/glaretrace/internal/radiance"
	"github.com/lumenlab/glaretrace/internal/schedule"
	"github.com/lumenlab/glaretrace/internal/sun"
	"github.com/lumenlab/glaretrace/internal/viewpoint"
)

// directThreshold is the zero-bounce illuminance (lux) above which the
// solar disk counts as visible in the field of view.
const directThreshold = 0.1

// Archiver persists a finished run. *store.Store satisfies it; a nil
// archiver disables persistence.
type Archiver interface {
	InsertRun(ctx context.Context, run model.RunInfo, results []model.Result) (int64, error)
}

// Tracer runs the simulation for one configuration.
type Tracer struct {
	cfg     config.Config
	site    model.Site
	opts    model.RunOptions
	params  radiance.Params
	runner  radiance.Runner
	archive Archiver
	log     io.Writer
}

// New assembles a Tracer. logW receives progress lines; nil means
// os.Stderr.
func New(cfg config.Config, opts model.RunOptions, runner radiance.Runner, archive Archiver, logW io.Writer) *Tracer {
	if logW == nil {
		logW = os.Stderr
	}
	return &Tracer{
		cfg:     cfg,
		site:    cfg.SiteModel(),
		opts:    opts,
		params:  radiance.DefaultParams(opts.Bounces, opts.Divisions),
		runner:  runner,
		archive: archive,
		log:     logW,
	}
}

// Run executes the whole simulation: every view point over every
// scheduled instant, strictly sequential. The first external failure
// aborts the run.
func (t *Tracer) Run(ctx context.Context) error {
	started := time.Now()

	points, err := viewpoint.Load(t.cfg.ViewPointsPath())
	if err != nil {
		return fmt.Errorf("failed to load view points: %w", err)
	}
	if err := viewpoint.WriteFiles(t.cfg.Paths.WorkDir, points); err != nil {
		return err
	}

	explicit := len(t.opts.Dates) > 0
	var instants []model.Instant
	if explicit {
		if instants, err = schedule.ParseDates(t.opts.Dates); err != nil {
			return err
		}
	} else {
		instants = schedule.Annual()
	}
	// Explicit dates always evaluate glare, visible solar disk or not.
	force := t.opts.ForceDirect || explicit

	var archived []model.Result
	for i := range points {
		results, err := t.runPoint(ctx, i, instants, force)
		if err != nil {
			return err
		}
		archived = append(archived, results...)
		if !explicit {
			if err := t.summarize(i); err != nil {
				return err
			}
		}
	}

	elapsed := time.Since(started)
	if err := t.writeTiming(elapsed); err != nil {
		return err
	}
	t.logf("done: %d view points, %d results, %.1f s\n", len(points), len(archived), elapsed.Seconds())

	if t.archive != nil {
		run := model.RunInfo{
			StartedAt:  started,
			FinishedAt: started.Add(elapsed),
			Cores:      t.opts.Cores,
			Bounces:    t.opts.Bounces,
			Divisions:  t.opts.Divisions,
			Image:      t.opts.Image,
			Direct:     force,
			ElapsedMs:  elapsed.Milliseconds(),
		}
		if _, err := t.archive.InsertRun(ctx, run, archived); err != nil {
			return fmt.Errorf("failed to archive run: %w", err)
		}
	}
	return nil
}

// runPoint evaluates all instants for one view point and appends the
// qualifying rows to its result file.
func (t *Tracer) runPoint(ctx context.Context, pts int, instants []model.Instant, force bool) ([]model.Result, error) {
	out, err := os.Create(t.resultPath(pts))
	if err != nil {
		return nil, fmt.Errorf("failed to create result file: %w", err)
	}

	var results []model.Result
	for _, in := range instants {
		res, ok, err := t.step(ctx, pts, in, force)
		if err != nil {
			if cerr := out.Close(); cerr != nil {
				// Best-effort close on the error path.
				_ = cerr
			}
			return nil, err
		}
		if !ok {
			continue
		}
		row := fmt.Sprintf("%d %d %s %.4f %.2f\n",
			res.Month, res.Day, radiance.FormatHour(res.Hour), res.DGP, res.Illuminance)
		if _, err := out.WriteString(row); err != nil {
			if cerr := out.Close(); cerr != nil {
				_ = cerr
			}
			return nil, fmt.Errorf("failed to write result row: %w", err)
		}
		results = append(results, res)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close result file: %w", err)
	}
	return results, nil
}

// step runs the tool chain for one (view point, instant) pair. ok is
// false when the instant does not qualify (night, or no visible solar
// disk without force).
func (t *Tracer) step(ctx context.Context, pts int, in model.Instant, force bool) (model.Result, bool, error) {
	t.logf("point %d: %d %d %s (sun est %.1f deg)\n",
		pts, in.Month, in.Day, radiance.FormatHour(in.Hour), sun.Altitude(t.site, in))

	skyOut, err := t.runner.Output(ctx, radiance.Gensky(t.site, in))
	if err != nil {
		return model.Result{}, false, err
	}
	alt, err := radiance.ParseSunAltitude(skyOut)
	if err != nil {
		return model.Result{}, false, err
	}
	if alt <= 0 {
		return model.Result{}, false, nil
	}

	skyPath := t.cfg.WorkPath("sky.rad")
	if err := os.WriteFile(skyPath, []byte(skyOut), 0o644); err != nil {
		return model.Result{}, false, fmt.Errorf("failed to write sky description: %w", err)
	}

	octPath := t.cfg.WorkPath("scene.oct")
	scene := []string{
		skyPath,
		t.cfg.MaterialsPath(),
		t.cfg.RoomPath(),
		t.cfg.ObstaclesPath(),
		t.cfg.ShadingPath(),
		t.cfg.GlazingPath(),
		t.cfg.SkyglowPath(),
	}
	if err := t.runner.Run(ctx, radiance.Oconv(scene, octPath)); err != nil {
		return model.Result{}, false, err
	}

	sensorPath := t.cfg.WorkPath(viewpoint.SensorFileName(pts))
	directOut, err := t.runner.Output(ctx,
		radiance.RtraceIrradiance(octPath, sensorPath, t.opts.Cores, 0, t.params))
	if err != nil {
		return model.Result{}, false, err
	}
	direct, err := radiance.ParseIlluminance(directOut)
	if err != nil {
		return model.Result{}, false, err
	}
	if direct <= directThreshold && !force {
		return model.Result{}, false, nil
	}

	fullOut, err := t.runner.Output(ctx,
		radiance.RtraceIrradiance(octPath, sensorPath, t.opts.Cores, t.params.Bounces, t.params))
	if err != nil {
		return model.Result{}, false, err
	}
	illuminance, err := radiance.ParseIlluminance(fullOut)
	if err != nil {
		return model.Result{}, false, err
	}

	dgp, err := t.evalGlare(ctx, pts, in, octPath)
	if err != nil {
		return model.Result{}, false, err
	}

	return model.Result{
		Point:       pts,
		Month:       in.Month,
		Day:         in.Day,
		Hour:        in.Hour,
		DGP:         dgp,
		Illuminance: illuminance,
	}, true, nil
}

// evalGlare renders the field of view and evaluates DGP, keeping the
// HDR and false-color images when image output is requested.
func (t *Tracer) evalGlare(ctx context.Context, pts int, in model.Instant, octPath string) (float64, error) {
	viewPath := t.cfg.WorkPath(viewpoint.ViewFileName(pts))
	dimsOut, err := t.runner.Output(ctx, radiance.VwraysDims(viewPath, t.params))
	if err != nil {
		return 0, err
	}
	dims := strings.Fields(dimsOut)

	if !t.opts.Image {
		out, err := t.runner.Pipeline(ctx,
			radiance.VwraysView(viewPath, t.params),
			radiance.RtraceImage(octPath, t.opts.Cores, t.params, dims, ""),
			radiance.Evalglare(""),
		)
		if err != nil {
			return 0, err
		}
		return radiance.ParseDGP(out)
	}

	tag := t.instantTag(pts, in)
	hdrPath := t.cfg.OutPath(tag + ".hdr")
	if _, err := t.runner.Pipeline(ctx,
		radiance.VwraysView(viewPath, t.params),
		radiance.RtraceImage(octPath, t.opts.Cores, t.params, dims, hdrPath),
	); err != nil {
		return 0, err
	}
	if _, err := t.runner.Pipeline(ctx,
		radiance.Falsecolor(hdrPath),
		radiance.RaTiff(t.cfg.OutPath(tag+".tif")),
	); err != nil {
		return 0, err
	}
	out, err := t.runner.Output(ctx, radiance.Evalglare(hdrPath))
	if err != nil {
		return 0, err
	}
	return radiance.ParseDGP(out)
}

// summarize computes and writes the annual exceedance fractions for a
// view point by reading its result file back.
func (t *Tracer) summarize(pts int) error {
	summary, err := annual.EvalFile(t.resultPath(pts), pts)
	if err != nil {
		return err
	}
	return annual.WriteSummary(t.cfg.OutPath(fmt.Sprintf("fDGPe_%d.out", pts)), summary)
}

func (t *Tracer) writeTiming(elapsed time.Duration) error {
	line := fmt.Sprintf("%d %.3f\n", t.opts.Cores, elapsed.Seconds())
	if err := os.WriteFile(t.cfg.OutPath("time.out"), []byte(line), 0o644); err != nil {
		return fmt.Errorf("failed to write timing file: %w", err)
	}
	return nil
}

func (t *Tracer) resultPath(pts int) string {
	return t.cfg.OutPath(fmt.Sprintf("dgp_%d.out", pts))
}

func (t *Tracer) instantTag(pts int, in model.Instant) string {
	return fmt.Sprintf("%d%d%s_%d", in.Month, in.Day, radiance.FormatHour(in.Hour), pts)
}

func (t *Tracer) logf(format string, args ...any) {
	if _, err := fmt.Fprintf(t.log, format, args...); err != nil {
		// Best-effort progress logging.
		_ = err
	}
}
