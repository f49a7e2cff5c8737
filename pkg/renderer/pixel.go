package renderer

import (
	"github.com/gravlens/go-blackhole-raytracer/pkg/background"
	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
	"github.com/gravlens/go-blackhole-raytracer/pkg/geodesic"
)

// PixelRenderer runs the full per-pixel pipeline for one frame: primary ray
// generation, geodesic integration, background lookup and compositing.
// It holds only per-frame snapshots, so one instance is safe for concurrent
// use across tiles.
type PixelRenderer struct {
	camera     *Camera
	integrator *geodesic.Integrator
	background background.Source
	compositor *Compositor
	time       float64
	samples    int // supersamples per axis, >= 1
}

// NewPixelRenderer assembles the pipeline for one frame
func NewPixelRenderer(camera *Camera, integrator *geodesic.Integrator, bg background.Source,
	compositor *Compositor, time float64, samplesPerAxis int) *PixelRenderer {
	if samplesPerAxis < 1 {
		samplesPerAxis = 1
	}
	return &PixelRenderer{
		camera:     camera,
		integrator: integrator,
		background: bg,
		compositor: compositor,
		time:       time,
		samples:    samplesPerAxis,
	}
}

// RenderPixel returns the display-ready color of one pixel and tallies the
// ray outcomes into stats. Supersampling uses a fixed subpixel grid, so the
// result is a pure function of the pixel coordinates.
func (pr *PixelRenderer) RenderPixel(px, py int, stats *RenderStats) core.Vec3 {
	n := pr.samples
	inv := 1.0 / float64(n)

	var accum core.Vec3
	for sy := 0; sy < n; sy++ {
		for sx := 0; sx < n; sx++ {
			// Offsets in [-0.5, 0.5) centered on the subpixel grid
			ox := (float64(sx)+0.5)*inv - 0.5
			oy := (float64(sy)+0.5)*inv - 0.5
			accum = accum.Add(pr.renderSample(float64(px)+ox, float64(py)+oy, stats))
		}
	}

	stats.TotalPixels++
	return accum.Multiply(inv * inv)
}

// renderSample traces and composites a single primary ray
func (pr *PixelRenderer) renderSample(px, py float64, stats *RenderStats) core.Vec3 {
	ray := pr.camera.RayThrough(px, py)
	res := pr.integrator.Trace(ray, pr.time)

	var bg core.Vec3
	if res.Status.EscapedForShading() {
		bg = pr.background.Sample(res.Direction, pr.time)
	}

	stats.TotalRays++
	stats.TotalSteps += res.Steps
	switch res.Status {
	case geodesic.StatusAbsorbed:
		stats.AbsorbedRays++
	case geodesic.StatusEscaped:
		stats.EscapedRays++
	case geodesic.StatusBudgetExhausted:
		stats.ExhaustedRays++
	}
	if res.Transmittance < 1 {
		stats.DiskRays++
	}
	if stats.ClosestApproach == 0 || res.MinRadius < stats.ClosestApproach {
		stats.ClosestApproach = res.MinRadius
	}

	return pr.compositor.Composite(res, bg, pr.camera.ScreenRadius(px, py))
}
