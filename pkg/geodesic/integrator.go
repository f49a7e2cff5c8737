package geodesic

import (
	"math"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// RayStatus is the state of a ray in the integration state machine.
// A ray starts Active and reaches exactly one terminal state.
type RayStatus int

const (
	// StatusActive means the ray is still being advanced
	StatusActive RayStatus = iota
	// StatusAbsorbed means the ray crossed the event horizon
	StatusAbsorbed
	// StatusEscaped means the ray left the integration domain
	StatusEscaped
	// StatusBudgetExhausted means the step budget ran out while still active.
	// Shading treats this identically to StatusEscaped.
	StatusBudgetExhausted
)

func (s RayStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusAbsorbed:
		return "absorbed"
	case StatusEscaped:
		return "escaped"
	case StatusBudgetExhausted:
		return "budget-exhausted"
	default:
		return "invalid"
	}
}

// Terminal reports whether the status is a terminal state
func (s RayStatus) Terminal() bool {
	return s != StatusActive
}

// EscapedForShading reports whether the terminal state samples the background
func (s RayStatus) EscapedForShading() bool {
	return s == StatusEscaped || s == StatusBudgetExhausted
}

// VolumeSampler evaluates emissive volumetric material at a point. It returns
// the local color and a dimensionless density weight; density zero means the
// point is outside the volume. Implementations must be pure functions of
// (position, time) so frames stay deterministic.
type VolumeSampler interface {
	Sample(position core.Vec3, time float64) (color core.Vec3, density float64)
}

// Config controls the fixed-step integration loop
type Config struct {
	MaxSteps     int                    // step budget per ray, the sole timeout mechanism
	StepSize     float64                // fixed step length in units of M
	EscapeRadius float64                // rays beyond this radius are escaped
	Method       core.IntegrationMethod // RK4 (default) or Euler
	CaptureScale float64                // safety margin multiplied onto the horizon radius
	Absorption   float64                // opacity gain per unit of disk density crossed
}

// DefaultConfig returns the step budget and domain used by the built-in scenes
func DefaultConfig() Config {
	return Config{
		MaxSteps:     300,
		StepSize:     0.15,
		EscapeRadius: 100.0,
		Method:       core.IntegrateRK4,
		CaptureScale: 1.01,
		Absorption:   0.002,
	}
}

// TraceResult is the consumed integration state of one ray
type TraceResult struct {
	Status        RayStatus
	Position      core.Vec3 // final position
	Direction     core.Vec3 // final unit direction, used for background lookup
	Color         core.Vec3 // accumulated disk emission (additive, unbounded)
	Transmittance float64   // remaining background visibility, starts at 1, never increases
	Steps         int       // steps actually taken
	MinRadius     float64   // closest approach to the hole, drives the photon-sphere glow
}

// bendingConstant is the nominal coefficient of the approximate bending law
// a(r) = -k * r_s * h^2 * r / |r|^5. At k = 1.5 the law reproduces the exact
// Schwarzschild null-geodesic Binet equation, so weak-field deflection comes
// out at the textbook 4M/b. LensStrength scales k for artistic control.
const bendingConstant = 1.5

// minBendRadius guards the 1/r^5 term; below it the acceleration is forced
// to zero instead of blowing up.
const minBendRadius = 1e-4

// Integrator advances rays through the approximate curved-spacetime field.
// It is safe for concurrent use: Trace touches no shared mutable state.
type Integrator struct {
	cfg     Config
	volume  VolumeSampler // may be nil (no disk)
	capture float64       // horizon radius including the safety margin
	bend    float64       // k * LensStrength * r_s, precomputed
}

// NewIntegrator builds an integrator for one frame's parameter snapshot
func NewIntegrator(params core.ParameterSet, cfg Config, volume VolumeSampler) *Integrator {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultConfig().MaxSteps
	}
	if cfg.StepSize <= 0 {
		cfg.StepSize = DefaultConfig().StepSize
	}
	if cfg.EscapeRadius <= 0 {
		cfg.EscapeRadius = DefaultConfig().EscapeRadius
	}
	if cfg.CaptureScale <= 0 {
		cfg.CaptureScale = DefaultConfig().CaptureScale
	}

	horizon := EventHorizonRadius(params.Mass, params.Spin, params.Horizon)
	return &Integrator{
		cfg:     cfg,
		volume:  volume,
		capture: horizon * cfg.CaptureScale,
		bend:    bendingConstant * params.LensStrength * SchwarzschildRadius(params.Mass),
	}
}

// CaptureRadius returns the effective absorption radius including the margin
func (in *Integrator) CaptureRadius() float64 {
	return in.capture
}

// Trace integrates one ray to a terminal state. The conserved angular
// momentum h = origin x direction is computed once and held fixed; the
// bending acceleration depends only on h^2 and the current position, so the
// result is a pure function of the inputs.
func (in *Integrator) Trace(ray core.Ray, time float64) TraceResult {
	pos := ray.Origin
	dir := ray.Direction.Normalize()
	h2 := ray.Origin.Cross(dir).LengthSquared()

	res := TraceResult{
		Status:        StatusActive,
		Transmittance: 1.0,
		MinRadius:     pos.Length(),
	}

	for step := 0; step < in.cfg.MaxSteps; step++ {
		r := pos.Length()
		if r < res.MinRadius {
			res.MinRadius = r
		}

		// Terminal checks come first, in capture-then-escape order, so a
		// ray that is both inside the margin and out of budget is absorbed.
		if r < in.capture {
			res.Status = StatusAbsorbed
			break
		}
		if r > in.cfg.EscapeRadius {
			res.Status = StatusEscaped
			break
		}

		if in.volume != nil {
			c, d := in.volume.Sample(pos, time)
			if d > 0 {
				res.Color = res.Color.Add(c.Multiply(d * in.cfg.StepSize * res.Transmittance))
				res.Transmittance *= max(0, 1-d*in.cfg.Absorption*in.cfg.StepSize)
			}
		}

		pos, dir = in.advance(pos, dir, h2)
		dir = dir.Normalize() // photon speed invariant
		res.Steps++
	}

	if res.Status == StatusActive {
		res.Status = StatusBudgetExhausted
	}
	res.Position = pos
	res.Direction = dir
	return res
}

// acceleration evaluates the bending field a(r) = -bend * h^2 * r / |r|^5.
// Inside minBendRadius the field is zero rather than singular.
func (in *Integrator) acceleration(pos core.Vec3, h2 float64) core.Vec3 {
	r2 := pos.LengthSquared()
	if r2 < minBendRadius*minBendRadius {
		return core.Vec3{}
	}
	r5 := r2 * r2 * math.Sqrt(r2)
	return pos.Multiply(-in.bend * h2 / r5)
}

// advance moves the ray one fixed step with the configured method
func (in *Integrator) advance(pos, dir core.Vec3, h2 float64) (core.Vec3, core.Vec3) {
	dt := in.cfg.StepSize

	if in.cfg.Method == core.IntegrateEuler {
		newPos := pos.Add(dir.Multiply(dt))
		newDir := dir.Add(in.acceleration(pos, h2).Multiply(dt))
		return newPos, newDir
	}

	// Classical RK4 over the combined state (position, direction) with
	// derivative (direction, acceleration(position)).
	k1p := dir
	k1d := in.acceleration(pos, h2)

	k2p := dir.Add(k1d.Multiply(dt / 2))
	k2d := in.acceleration(pos.Add(k1p.Multiply(dt/2)), h2)

	k3p := dir.Add(k2d.Multiply(dt / 2))
	k3d := in.acceleration(pos.Add(k2p.Multiply(dt/2)), h2)

	k4p := dir.Add(k3d.Multiply(dt))
	k4d := in.acceleration(pos.Add(k3p.Multiply(dt)), h2)

	newPos := pos.Add(k1p.Add(k2p.Multiply(2)).Add(k3p.Multiply(2)).Add(k4p).Multiply(dt / 6))
	newDir := dir.Add(k1d.Add(k2d.Multiply(2)).Add(k3d.Multiply(2)).Add(k4d).Multiply(dt / 6))
	return newPos, newDir
}
