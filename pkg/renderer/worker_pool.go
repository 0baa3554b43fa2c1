package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/integrator"
)

// ErrWorkerPanic marks a scanline unit that panicked while rendering
var ErrWorkerPanic = errors.New("scanline worker panicked")

// UnitError reports the scanline unit that failed
type UnitError struct {
	Unit ScanlineUnit
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("scanline unit %d (rows %d-%d): %v", e.Unit.Index, e.Unit.StartRow, e.Unit.EndRow()-1, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}

// SamplingConfig contains per-pixel rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	Gamma           float64 // Display gamma applied at write-out
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        20,
		Gamma:           1.2,
	}
}

// SchedulerConfig controls how scanlines are split and run
type SchedulerConfig struct {
	NumTasks    int   // Requested number of row bands (0 = runtime.NumCPU())
	Parallelism int   // Units running at once (0 = runtime.GOMAXPROCS(0))
	Seed        int64 // Unit i draws from a generator seeded with Seed+i

	// Progress, when set, is called after every completed scanline with the
	// number of scanlines still to render. It is called from worker goroutines
	// and must be safe for concurrent use.
	Progress func(remaining int)
}

// Scheduler renders an image by splitting its scanlines into independent
// units, one random stream per unit, and joining them before returning.
type Scheduler struct {
	camera     RaySource
	world      core.Shape
	integrator integrator.Integrator
	sampling   SamplingConfig
	config     SchedulerConfig
}

// NewScheduler creates a scheduler. The world must not be modified while
// Render is running.
func NewScheduler(camera RaySource, world core.Shape, integratorInst integrator.Integrator, sampling SamplingConfig, config SchedulerConfig) *Scheduler {
	if config.NumTasks <= 0 {
		config.NumTasks = runtime.NumCPU()
	}
	if config.Parallelism <= 0 {
		config.Parallelism = runtime.GOMAXPROCS(0)
	}
	return &Scheduler{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		sampling:   sampling,
		config:     config,
	}
}

// Units returns the scanline partition Render will dispatch
func (s *Scheduler) Units() ([]ScanlineUnit, error) {
	return PartitionScanlines(s.camera.Height(), s.config.NumTasks)
}

// Render traces every pixel and returns the finished buffer.
//
// Each unit writes only the rows it owns, so the buffer is shared without
// locks. If any unit fails (including by panicking) or ctx is cancelled, the
// remaining units stop at their next scanline and Render returns the first
// error once all units have returned; no partial image is returned.
func (s *Scheduler) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	if s.sampling.SamplesPerPixel <= 0 {
		return nil, RenderStats{}, fmt.Errorf("render: samples per pixel must be positive, got %d", s.sampling.SamplesPerPixel)
	}
	if s.sampling.Gamma <= 0 {
		return nil, RenderStats{}, fmt.Errorf("render: gamma must be positive, got %g", s.sampling.Gamma)
	}

	units, err := s.Units()
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	width, height := s.camera.Width(), s.camera.Height()
	buffer := NewPixelBuffer(width, height)
	results := make([]unitStats, len(units))

	var remaining atomic.Int64
	remaining.Store(int64(height))

	core.Log().Info("render started",
		"width", width, "height", height,
		"samplesPerPixel", s.sampling.SamplesPerPixel, "maxDepth", s.sampling.MaxDepth,
		"tasks", s.config.NumTasks, "units", len(units), "parallelism", s.config.Parallelism)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)

	for _, unit := range units {
		unit := unit
		g.Go(func() error {
			stats, err := s.renderUnit(gctx, unit, buffer, &remaining)
			results[unit.Index] = stats
			return err
		})
	}

	if err := g.Wait(); err != nil {
		core.Log().Error("render aborted", "error", err)
		return nil, RenderStats{}, fmt.Errorf("render: %w", err)
	}

	stats := mergeUnitStats(results, s.sampling.SamplesPerPixel, time.Since(start))
	core.Log().Info("render finished",
		"elapsed", stats.Elapsed, "pixels", stats.TotalPixels, "samples", stats.TotalSamples)

	return buffer, stats, nil
}

// renderUnit renders all scanlines of one unit with the unit's own sampler.
// A panic is recovered and reported as a UnitError.
func (s *Scheduler) renderUnit(ctx context.Context, unit ScanlineUnit, buffer *PixelBuffer, remaining *atomic.Int64) (stats unitStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &UnitError{Unit: unit, Err: fmt.Errorf("%w: %v", ErrWorkerPanic, r)}
		}
	}()

	sampler := core.NewSeededSampler(s.config.Seed + int64(unit.Index))

	for y := unit.StartRow; y < unit.EndRow(); y++ {
		if err := ctx.Err(); err != nil {
			return stats, &UnitError{Unit: unit, Err: err}
		}

		s.renderScanline(y, sampler, buffer)
		stats.pixels += s.camera.Width()
		stats.samples += s.camera.Width() * s.sampling.SamplesPerPixel

		left := int(remaining.Add(-1))
		core.Log().Debug("scanline done", "row", y, "unit", unit.Index, "remaining", left)
		if s.config.Progress != nil {
			s.config.Progress(left)
		}
	}

	return stats, nil
}

// renderScanline accumulates jittered samples for every pixel of scanline y
// (counted bottom-up) and writes them to the flipped, top-down image row.
func (s *Scheduler) renderScanline(y int, sampler core.Sampler, buffer *PixelBuffer) {
	width, height := s.camera.Width(), s.camera.Height()
	spp := s.sampling.SamplesPerPixel

	for x := 0; x < width; x++ {
		colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}

		for sample := 0; sample < spp; sample++ {
			u := (float64(x) + sampler.Get1D()) / float64(width)
			v := (float64(y) + sampler.Get1D()) / float64(height)

			ray := s.camera.GetRay(sampler, u, v)
			colorAccum = colorAccum.Add(s.integrator.RayColor(ray, s.world, sampler, s.sampling.MaxDepth))
		}

		buffer.SetPixel(x, height-1-y, ToneMap(colorAccum, spp, s.sampling.Gamma))
	}
}
