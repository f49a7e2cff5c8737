package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/gravlens/go-blackhole-raytracer/pkg/background"
	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
	"github.com/gravlens/go-blackhole-raytracer/pkg/disk"
	"github.com/gravlens/go-blackhole-raytracer/pkg/geodesic"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// SceneSource supplies the per-frame inputs consumed by the renderer.
// Interface (rather than a concrete scene type) to avoid circular imports.
type SceneSource interface {
	// Parameters returns the current parameter set; the renderer snapshots
	// and validates a copy at frame start
	Parameters() core.ParameterSet
	// CameraAt returns the camera pose for the given scene time
	CameraAt(t float64) CameraConfig
	// Background returns the background source (never nil)
	Background() background.Source
}

// FrameConfig contains configuration for frame rendering
type FrameConfig struct {
	Width          int             // image width in pixels
	Height         int             // image height in pixels
	TileSize       int             // size of each tile (64 recommended)
	NumWorkers     int             // number of parallel workers (0 = use CPU count)
	SamplesPerAxis int             // deterministic supersampling grid per axis (1 = off)
	Trace          geodesic.Config // integration loop settings
}

// DefaultFrameConfig returns sensible default values
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		Width:          640,
		Height:         360,
		TileSize:       64,
		NumWorkers:     0,
		SamplesPerAxis: 1,
		Trace:          geodesic.DefaultConfig(),
	}
}

// Renderer renders frames of the black-hole scene in parallel tiles
type Renderer struct {
	scene  SceneSource
	config FrameConfig
	logger core.Logger
}

// NewRenderer creates a renderer for a scene. A nil logger falls back to stdout.
func NewRenderer(scene SceneSource, config FrameConfig, logger core.Logger) *Renderer {
	if config.Width <= 0 || config.Height <= 0 {
		def := DefaultFrameConfig()
		config.Width, config.Height = def.Width, def.Height
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultFrameConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{scene: scene, config: config, logger: logger}
}

// RenderFrame renders one frame at the given scene time. Parameters are
// snapshotted and validated once at frame start and held immutable for the
// whole frame; cancellation is frame-granular.
func (r *Renderer) RenderFrame(ctx context.Context, t float64) (*image.RGBA, RenderStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	params, warnings := r.scene.Parameters().Validate()
	for _, w := range warnings {
		r.logger.Printf("parameter warning: %s\n", w)
	}

	camera := NewCamera(r.scene.CameraAt(t), r.config.Width, r.config.Height)
	integrator := geodesic.NewIntegrator(params, r.config.Trace, disk.NewVolume(params))
	pixels := NewPixelRenderer(camera, integrator, r.scene.Background(), NewCompositor(params), t, r.config.SamplesPerAxis)

	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))

	// Tiles have non-overlapping bounds, so workers write to the shared
	// image without locking.
	renderTile := func(tile Tile) (RenderStats, error) {
		var stats RenderStats
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				img.SetRGBA(x, y, vec3ToColor(pixels.RenderPixel(x, y, &stats)))
			}
		}
		return stats, nil
	}

	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize)
	pool := NewWorkerPool(r.config.NumWorkers, len(tiles), renderTile)
	pool.Start()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	var frameStats RenderStats
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			pool.Stop()
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			pool.Stop()
			return nil, RenderStats{}, result.Error
		}
		frameStats.Merge(result.Stats)
	}
	pool.Stop()

	return img, frameStats, nil
}

// vec3ToColor converts a display-ready [0,1] color to RGBA. Gamma has
// already been applied by the compositor.
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// FrameResult contains the result of a single animation frame
type FrameResult struct {
	FrameNumber int
	Time        float64
	Image       *image.RGBA
	Stats       RenderStats
	IsLast      bool
}

// AnimationConfig describes a frame sequence over scene time
type AnimationConfig struct {
	Frames    int     // number of frames to render
	StartTime float64 // scene time of the first frame
	TimeStep  float64 // scene-time increment per frame
}

// RenderAnimation renders a frame sequence with channel-based communication.
// The caller reads frames from the returned channel; cancellation via ctx is
// frame-granular (the in-flight frame completes, the next is skipped).
func (r *Renderer) RenderAnimation(ctx context.Context, anim AnimationConfig) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		r.logger.Printf("Rendering %d frames at %dx%d...\n", anim.Frames, r.config.Width, r.config.Height)

		t := anim.StartTime
		for frame := 0; frame < anim.Frames; frame++ {
			select {
			case <-ctx.Done():
				r.logger.Printf("Rendering cancelled before frame %d\n", frame)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()
			img, stats, err := r.RenderFrame(ctx, t)
			if err != nil {
				errChan <- err
				return
			}

			r.logger.Printf("Frame %d completed in %v (%.1f avg steps, %d absorbed, %d escaped)\n",
				frame, time.Since(startTime), stats.AverageSteps(), stats.AbsorbedRays, stats.EscapedRays)

			result := FrameResult{
				FrameNumber: frame,
				Time:        t,
				Image:       img,
				Stats:       stats,
				IsLast:      frame == anim.Frames-1,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			t += anim.TimeStep
		}
	}()

	return frameChan, errChan
}
