package renderer

import (
	"context"
	"image/color"
	"testing"

	"github.com/gravlens/go-blackhole-raytracer/pkg/background"
	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// nopLogger keeps render chatter out of test output
type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

// gradientBackground is a smooth direction-coded background, bright enough
// that lensing-induced direction changes show up in pixel values
type gradientBackground struct{}

func (gradientBackground) Sample(dir core.Vec3, t float64) core.Vec3 {
	return core.NewVec3((dir.X+1)/2, (dir.Y+1)/2, (dir.Z+1)/2)
}

// testSceneSource is a fixed-pose SceneSource for frame tests
type testSceneSource struct {
	params core.ParameterSet
	camera CameraConfig
	bg     background.Source
}

func (s *testSceneSource) Parameters() core.ParameterSet  { return s.params }
func (s *testSceneSource) CameraAt(t float64) CameraConfig { return s.camera }
func (s *testSceneSource) Background() background.Source  { return s.bg }

func newTestScene() *testSceneSource {
	return &testSceneSource{
		params: core.DefaultParameters(),
		camera: CameraConfig{
			Position:   core.NewVec3(0, 0, 15),
			LookAt:     core.NewVec3(0, 0, 0),
			FOVDegrees: 60,
		},
		bg: background.NewEnvironment(nil),
	}
}

func smallFrameConfig(width, height int) FrameConfig {
	config := DefaultFrameConfig()
	config.Width = width
	config.Height = height
	config.TileSize = 16
	return config
}

func TestRenderFrame_CaptureShadowIsBlack(t *testing.T) {
	// Shrink the disk until it sits entirely inside the capture radius:
	// the ray down the optical axis is absorbed before sampling anything,
	// so its pixel must be exactly black
	scene := newTestScene()
	scene.params.Spin = 0
	scene.params.Horizon = core.HorizonSchwarzschild
	scene.params.DiskInnerRadius = 0.5
	scene.params.DiskOuterRadius = 1.0

	rend := NewRenderer(scene, smallFrameConfig(9, 9), nopLogger{})
	img, stats, err := rend.RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	center := img.RGBAAt(4, 4)
	if center != (color.RGBA{R: 0, G: 0, B: 0, A: 255}) {
		t.Errorf("Expected exact black at the shadow center, got %+v", center)
	}
	if stats.AbsorbedRays == 0 {
		t.Errorf("Expected absorbed rays, stats: %+v", stats)
	}
	if stats.DiskRays != 0 {
		t.Errorf("Disk inside the capture radius must never be sampled, got %d disk rays", stats.DiskRays)
	}
}

func TestRenderFrame_DiskVisible(t *testing.T) {
	// Looking across the disk plane, rays pass through disk material
	scene := newTestScene()
	scene.camera.Position = core.NewVec3(0, 2.5, 15)

	rend := NewRenderer(scene, smallFrameConfig(32, 24), nopLogger{})
	_, stats, err := rend.RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	if stats.DiskRays == 0 {
		t.Errorf("Expected disk hits, stats: %+v", stats)
	}
	if stats.TotalRays != 32*24 {
		t.Errorf("Expected %d rays, got %d", 32*24, stats.TotalRays)
	}
	if stats.ClosestApproach <= 0 {
		t.Errorf("Expected a positive closest approach, got %v", stats.ClosestApproach)
	}
}

func TestRenderFrame_DeterministicAcrossWorkerCounts(t *testing.T) {
	scene := newTestScene()
	scene.bg = gradientBackground{}

	serial := smallFrameConfig(32, 24)
	serial.NumWorkers = 1
	parallel := smallFrameConfig(32, 24)
	parallel.NumWorkers = 4

	imgA, _, err := NewRenderer(scene, serial, nopLogger{}).RenderFrame(context.Background(), 0.5)
	if err != nil {
		t.Fatalf("Serial render failed: %v", err)
	}
	imgB, _, err := NewRenderer(scene, parallel, nopLogger{}).RenderFrame(context.Background(), 0.5)
	if err != nil {
		t.Fatalf("Parallel render failed: %v", err)
	}

	if len(imgA.Pix) != len(imgB.Pix) {
		t.Fatalf("Image sizes differ")
	}
	for i := range imgA.Pix {
		if imgA.Pix[i] != imgB.Pix[i] {
			t.Fatalf("Pixel data differs at byte %d: %d vs %d", i, imgA.Pix[i], imgB.Pix[i])
		}
	}
}

func TestRenderFrame_LensingBendsBackground(t *testing.T) {
	// The same scene with lensing off and on must produce different images
	// against a direction-coded background
	bent := newTestScene()
	bent.bg = gradientBackground{}

	straight := newTestScene()
	straight.bg = gradientBackground{}
	straight.params.LensStrength = 0

	config := smallFrameConfig(16, 16)
	imgBent, _, err := NewRenderer(bent, config, nopLogger{}).RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	imgStraight, _, err := NewRenderer(straight, config, nopLogger{}).RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	same := true
	for i := range imgBent.Pix {
		if imgBent.Pix[i] != imgStraight.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("Lensing had no visible effect on the background")
	}
}

func TestRenderFrame_SupersamplingCountsRays(t *testing.T) {
	scene := newTestScene()
	config := smallFrameConfig(8, 8)
	config.SamplesPerAxis = 2

	_, stats, err := NewRenderer(scene, config, nopLogger{}).RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if stats.TotalRays != 8*8*4 {
		t.Errorf("Expected %d rays with 2x2 supersampling, got %d", 8*8*4, stats.TotalRays)
	}
	if stats.TotalPixels != 8*8 {
		t.Errorf("Expected %d pixels, got %d", 8*8, stats.TotalPixels)
	}
}

func TestRenderFrame_InvalidParametersStillRender(t *testing.T) {
	scene := newTestScene()
	scene.params.Spin = -3
	scene.params.LensStrength = 99

	img, _, err := NewRenderer(scene, smallFrameConfig(8, 8), nopLogger{}).RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatalf("Expected clamped render, got error: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("Unexpected image bounds: %v", img.Bounds())
	}
}

func TestRenderFrame_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewRenderer(newTestScene(), smallFrameConfig(8, 8), nopLogger{}).RenderFrame(ctx, 0)
	if err == nil {
		t.Errorf("Expected error from cancelled context")
	}
}

func TestRenderAnimation_StreamsFrames(t *testing.T) {
	scene := newTestScene()
	rend := NewRenderer(scene, smallFrameConfig(8, 8), nopLogger{})

	anim := AnimationConfig{Frames: 3, StartTime: 1.0, TimeStep: 0.5}
	frameChan, errChan := rend.RenderAnimation(context.Background(), anim)

	var frames []FrameResult
	for result := range frameChan {
		frames = append(frames, result)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Animation failed: %v", err)
	}

	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	for i, frame := range frames {
		if frame.FrameNumber != i {
			t.Errorf("Frame %d has number %d", i, frame.FrameNumber)
		}
		expectedTime := 1.0 + 0.5*float64(i)
		if frame.Time != expectedTime {
			t.Errorf("Frame %d at time %v, expected %v", i, frame.Time, expectedTime)
		}
		if frame.Image == nil {
			t.Errorf("Frame %d has no image", i)
		}
		if frame.IsLast != (i == 2) {
			t.Errorf("Frame %d IsLast = %v", i, frame.IsLast)
		}
	}
}

func TestRenderAnimation_Cancellation(t *testing.T) {
	scene := newTestScene()
	rend := NewRenderer(scene, smallFrameConfig(16, 16), nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	frameChan, errChan := rend.RenderAnimation(ctx, AnimationConfig{Frames: 1000, TimeStep: 0.1})

	// Take one frame, then cancel
	<-frameChan
	cancel()
	for range frameChan {
	}

	if err := <-errChan; err == nil {
		t.Errorf("Expected cancellation error")
	}
}
