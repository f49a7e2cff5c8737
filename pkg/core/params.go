package core

import "fmt"

// HorizonModel selects the event-horizon approximation. Exactly one model is
// used for a whole frame; mixing formulas mid-frame is not supported.
type HorizonModel int

const (
	// HorizonSchwarzschild uses r = 2M regardless of spin
	HorizonSchwarzschild HorizonModel = iota
	// HorizonKerrReduced shrinks the Schwarzschild radius with spin: r = 2M(1 - a/2)
	HorizonKerrReduced
)

func (m HorizonModel) String() string {
	switch m {
	case HorizonSchwarzschild:
		return "schwarzschild"
	case HorizonKerrReduced:
		return "kerr-reduced"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// IntegrationMethod selects the per-step advancement scheme
type IntegrationMethod int

const (
	// IntegrateRK4 uses classical 4-stage Runge-Kutta (default, stable at the fixed step size)
	IntegrateRK4 IntegrationMethod = iota
	// IntegrateEuler uses a single forward Euler step (cheap preview quality)
	IntegrateEuler
)

func (m IntegrationMethod) String() string {
	switch m {
	case IntegrateRK4:
		return "rk4"
	case IntegrateEuler:
		return "euler"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParameterSet holds every physical and visual tunable for a frame. All radii
// are expressed in units of mass M. The set is a plain value type: callers
// snapshot it once per frame by copying, and the copy is never mutated during
// integration.
type ParameterSet struct {
	Mass float64 // black hole mass M, > 0
	Spin float64 // normalized spin a, [0, 0.999]

	DiskInnerRadius   float64 // inner disk radius in units of M, < DiskOuterRadius
	DiskOuterRadius   float64 // outer disk radius in units of M
	DiskThickness     float64 // half-thickness of the disk volume, > 0
	DiskRotationSpeed float64 // angular speed multiplier for the orbiting material

	LensStrength  float64 // scales the bending acceleration, [0, 1.5], 1 = nominal
	LensSharpness float64 // exponential falloff rate of the photon-sphere glow

	VignetteStrength float64 // radial screen darkening, [0, 1]
	GlowIntensity    float64 // photon-sphere glow gain, >= 0

	Horizon HorizonModel // horizon approximation used for capture tests
}

// Parameter bounds enforced by Validate. The control surfaces (CLI flags,
// web query parameters) advertise the same limits.
const (
	MinMass = 1e-3
	MaxSpin = 0.999

	MaxLensStrength = 1.5
)

// DefaultParameters returns the tuned defaults used by the built-in scenes
func DefaultParameters() ParameterSet {
	return ParameterSet{
		Mass:              1.0,
		Spin:              0.6,
		DiskInnerRadius:   3.0,
		DiskOuterRadius:   9.0,
		DiskThickness:     0.3,
		DiskRotationSpeed: 1.0,
		LensStrength:      1.0,
		LensSharpness:     4.0,
		VignetteStrength:  0.35,
		GlowIntensity:     0.25,
		Horizon:           HorizonKerrReduced,
	}
}

// Validate returns a copy with every out-of-range field clamped to a safe
// value, plus a human-readable warning per adjustment. Invalid input never
// produces an error: the renderer always has something sane to draw with,
// and the caller decides whether to surface the warnings.
func (p ParameterSet) Validate() (ParameterSet, []string) {
	var warnings []string
	out := p

	if out.Mass < MinMass {
		warnings = append(warnings, fmt.Sprintf("mass %g below minimum, clamped to %g", out.Mass, MinMass))
		out.Mass = MinMass
	}
	if out.Spin < 0 {
		warnings = append(warnings, fmt.Sprintf("spin %g negative, clamped to 0", out.Spin))
		out.Spin = 0
	}
	if out.Spin > MaxSpin {
		warnings = append(warnings, fmt.Sprintf("spin %g above maximum, clamped to %g", out.Spin, MaxSpin))
		out.Spin = MaxSpin
	}
	if out.DiskInnerRadius <= 0 {
		warnings = append(warnings, fmt.Sprintf("disk inner radius %g not positive, reset to 3", out.DiskInnerRadius))
		out.DiskInnerRadius = 3.0
	}
	if out.DiskOuterRadius <= out.DiskInnerRadius {
		fixed := out.DiskInnerRadius * 2
		warnings = append(warnings, fmt.Sprintf("disk outer radius %g <= inner radius %g, reset to %g",
			out.DiskOuterRadius, out.DiskInnerRadius, fixed))
		out.DiskOuterRadius = fixed
	}
	if out.DiskThickness <= 0 {
		warnings = append(warnings, fmt.Sprintf("disk thickness %g not positive, reset to 0.3", out.DiskThickness))
		out.DiskThickness = 0.3
	}
	if out.DiskRotationSpeed < 0 {
		warnings = append(warnings, fmt.Sprintf("disk rotation speed %g negative, clamped to 0", out.DiskRotationSpeed))
		out.DiskRotationSpeed = 0
	}
	if out.LensStrength < 0 {
		warnings = append(warnings, fmt.Sprintf("lens strength %g negative, clamped to 0", out.LensStrength))
		out.LensStrength = 0
	}
	if out.LensStrength > MaxLensStrength {
		warnings = append(warnings, fmt.Sprintf("lens strength %g above maximum, clamped to %g", out.LensStrength, MaxLensStrength))
		out.LensStrength = MaxLensStrength
	}
	if out.LensSharpness <= 0 {
		warnings = append(warnings, fmt.Sprintf("lens sharpness %g not positive, reset to 4", out.LensSharpness))
		out.LensSharpness = 4.0
	}
	if out.VignetteStrength < 0 {
		warnings = append(warnings, fmt.Sprintf("vignette strength %g negative, clamped to 0", out.VignetteStrength))
		out.VignetteStrength = 0
	}
	if out.VignetteStrength > 1 {
		warnings = append(warnings, fmt.Sprintf("vignette strength %g above 1, clamped to 1", out.VignetteStrength))
		out.VignetteStrength = 1
	}
	if out.GlowIntensity < 0 {
		warnings = append(warnings, fmt.Sprintf("glow intensity %g negative, clamped to 0", out.GlowIntensity))
		out.GlowIntensity = 0
	}

	return out, warnings
}

// CameraState is the per-frame camera pose supplied by the caller. It is
// read-only for the duration of a frame.
type CameraState struct {
	Position Vec3    // camera position in world space
	LookAt   Vec3    // look-at target (the hole sits at the origin)
	Time     float64 // elapsed scene time in seconds
}
