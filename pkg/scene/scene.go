package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/gravlens/go-blackhole-raytracer/pkg/background"
	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
	"github.com/gravlens/go-blackhole-raytracer/pkg/renderer"
)

// OrbitConfig animates the camera on a circle around the hole. A zero
// AngularSpeed with zero Radius leaves the static Camera pose in charge.
type OrbitConfig struct {
	Radius       float64 // orbit radius in units of M
	Height       float64 // camera height above the disk plane
	AngularSpeed float64 // radians per unit of scene time
	StartAngle   float64 // phase at t = 0
}

// Scene bundles everything a renderer needs: the parameter set, the camera
// (static or orbiting), and the background binding. It implements
// renderer.SceneSource.
type Scene struct {
	Name   string
	Params core.ParameterSet
	Camera renderer.CameraConfig // static pose, used when Orbit is zero
	Orbit  OrbitConfig
	Env    *background.Environment
	Frame  renderer.FrameConfig // recommended frame settings for this scene
}

// Parameters implements renderer.SceneSource
func (s *Scene) Parameters() core.ParameterSet {
	return s.Params
}

// CameraAt implements renderer.SceneSource. Orbiting scenes circle the hole
// at the configured radius and height, always aimed at the origin.
func (s *Scene) CameraAt(t float64) renderer.CameraConfig {
	if s.Orbit.Radius == 0 {
		return s.Camera
	}
	angle := s.Orbit.StartAngle + t*s.Orbit.AngularSpeed
	pos := core.NewVec3(
		s.Orbit.Radius*math.Cos(angle),
		s.Orbit.Height,
		s.Orbit.Radius*math.Sin(angle),
	)
	return renderer.CameraConfig{
		Position:   pos,
		LookAt:     core.NewVec3(0, 0, 0),
		RollDeg:    s.Camera.RollDeg,
		FOVDegrees: s.Camera.FOVDegrees,
	}
}

// Background implements renderer.SceneSource
func (s *Scene) Background() background.Source {
	return s.Env
}

// SetBackgroundTexture binds an equirectangular environment map; the
// starfield remains the fallback for near-black lookups
func (s *Scene) SetBackgroundTexture(tex *background.Texture) {
	s.Env = background.NewEnvironment(tex)
}

// NewDefaultScene is a three-quarter view of a moderately spinning hole
// with the full disk
func NewDefaultScene() *Scene {
	params := core.DefaultParameters()
	return &Scene{
		Name:   "default",
		Params: params,
		Camera: renderer.CameraConfig{
			Position:   core.NewVec3(0, 3.5, 16),
			LookAt:     core.NewVec3(0, 0, 0),
			FOVDegrees: 60,
		},
		Orbit: OrbitConfig{
			Radius:       16.4,
			Height:       3.5,
			AngularSpeed: 0.08,
			StartAngle:   math.Pi / 2,
		},
		Env:   background.NewEnvironment(nil),
		Frame: renderer.DefaultFrameConfig(),
	}
}

// NewEdgeOnScene looks along the disk plane, the classic lensed-ring view
func NewEdgeOnScene() *Scene {
	params := core.DefaultParameters()
	params.DiskThickness = 0.4
	params.GlowIntensity = 0.35
	return &Scene{
		Name:   "edge-on",
		Params: params,
		Camera: renderer.CameraConfig{
			Position:   core.NewVec3(0, 0.7, 15),
			LookAt:     core.NewVec3(0, 0, 0),
			FOVDegrees: 55,
		},
		Env:   background.NewEnvironment(nil),
		Frame: renderer.DefaultFrameConfig(),
	}
}

// NewHighSpinScene pushes spin near the cap, shrinking the horizon
func NewHighSpinScene() *Scene {
	params := core.DefaultParameters()
	params.Spin = 0.998
	params.DiskInnerRadius = 2.2
	params.DiskRotationSpeed = 1.6
	return &Scene{
		Name:   "high-spin",
		Params: params,
		Camera: renderer.CameraConfig{
			Position:   core.NewVec3(0, 2.5, 14),
			LookAt:     core.NewVec3(0, 0, 0),
			FOVDegrees: 60,
		},
		Env:   background.NewEnvironment(nil),
		Frame: renderer.DefaultFrameConfig(),
	}
}

// NewSchwarzschildScene is the zero-spin reference configuration used by
// the regression scenarios
func NewSchwarzschildScene() *Scene {
	params := core.DefaultParameters()
	params.Spin = 0
	params.Horizon = core.HorizonSchwarzschild
	return &Scene{
		Name:   "schwarzschild",
		Params: params,
		Camera: renderer.CameraConfig{
			Position:   core.NewVec3(0, 0, 15),
			LookAt:     core.NewVec3(0, 0, 0),
			FOVDegrees: 60,
		},
		Env:   background.NewEnvironment(nil),
		Frame: renderer.DefaultFrameConfig(),
	}
}

var sceneBuilders = map[string]func() *Scene{
	"default":       NewDefaultScene,
	"edge-on":       NewEdgeOnScene,
	"high-spin":     NewHighSpinScene,
	"schwarzschild": NewSchwarzschildScene,
}

// NewScene creates a named preset scene
func NewScene(name string) (*Scene, error) {
	builder, ok := sceneBuilders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return builder(), nil
}

// SceneNames returns the available preset names, sorted
func SceneNames() []string {
	names := make([]string, 0, len(sceneBuilders))
	for name := range sceneBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
