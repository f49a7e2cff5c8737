package disk

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// Visual tuning constants for the disk color model. Tuned by inspection;
// none of these are physically derived.
const (
	// TemperatureExponent shapes the radial temperature ramp
	TemperatureExponent = 0.75
	// TemperatureGain and BaseGain set the brightness response to temperature
	TemperatureGain = 1.5
	BaseGain        = 0.25
	// BeamingGain is the relativistic beaming coefficient applied to the
	// signed Doppler factor
	BeamingGain = 0.65
	// HotBlend controls how strongly hot material whitens
	HotBlend = 0.35
	// SpinBoost raises the orbital angular velocity with spin
	SpinBoost = 0.5
	// InnerGlowGain and InnerGlowFalloff shape the unconditional
	// exponential glow hugging the inner edge
	InnerGlowGain    = 0.3
	InnerGlowFalloff = 1.5
	// TurbulenceFloor and TurbulenceGain map fbm output onto a
	// multiplicative color modulation
	TurbulenceFloor = 0.55
	TurbulenceGain  = 0.9
)

// Doppler anchor colors. Approaching material shifts toward dopplerBlue,
// receding toward dopplerRed; hot material blends toward hotWhite.
var (
	dopplerBlue    = colorful.Color{R: 0.45, G: 0.62, B: 1.00}
	dopplerNeutral = colorful.Color{R: 1.00, G: 0.96, B: 0.90}
	dopplerRed     = colorful.Color{R: 1.00, G: 0.38, B: 0.18}
	hotWhite       = colorful.Color{R: 1.00, G: 0.98, B: 0.94}
)

// Shader computes the local color of disk material. It is a pure function of
// (position, time) given a parameter snapshot.
type Shader struct {
	params core.ParameterSet
}

// NewShader builds a shader from a frame's parameter snapshot
func NewShader(params core.ParameterSet) *Shader {
	return &Shader{params: params}
}

// OrbitalVelocity returns the Keplerian angular velocity at projected radius
// r, boosted by spin. The denominator is floored so material arbitrarily
// close to the center cannot divide by zero.
func (sh *Shader) OrbitalVelocity(r float64) float64 {
	return (1 + SpinBoost*sh.params.Spin) / math.Sqrt(max(r, 1e-6))
}

// BaseColor evaluates the temperature/Doppler/beaming color model at
// projected radius r and azimuth theta, before turbulence, edge masks and
// the inner glow are applied. Kept separate so the closed-form part of the
// model can be regression-pinned.
func (sh *Shader) BaseColor(r, theta, t float64) core.Vec3 {
	temperature := math.Pow(core.Smoothstep(sh.params.DiskOuterRadius, sh.params.DiskInnerRadius, r), TemperatureExponent)

	phase := theta - t*sh.params.DiskRotationSpeed*sh.OrbitalVelocity(r)
	doppler := math.Sin(phase)
	beaming := 1 + doppler*BeamingGain

	var base colorful.Color
	if doppler >= 0 {
		base = dopplerNeutral.BlendRgb(dopplerBlue, doppler)
	} else {
		base = dopplerNeutral.BlendRgb(dopplerRed, -doppler)
	}
	base = base.BlendRgb(hotWhite, temperature*HotBlend)

	gain := (temperature*TemperatureGain + BaseGain) * beaming
	return core.NewVec3(base.R*gain, base.G*gain, base.B*gain)
}

// Shade returns the full disk color at a position inside the disk volume:
// base color, multiplicative turbulence, smooth edge masks and the
// unconditional inner-edge glow.
func (sh *Shader) Shade(p core.Vec3, t float64) core.Vec3 {
	r := math.Hypot(p.X, p.Z)
	theta := math.Atan2(p.Z, p.X)

	c := sh.BaseColor(r, theta, t)
	c = c.MultiplyVec(sh.turbulence(p, r, theta, t))

	inner := sh.params.DiskInnerRadius
	outer := sh.params.DiskOuterRadius
	c = c.Multiply(core.Smoothstep(inner, inner*1.1, r) * core.Smoothstep(outer, outer*0.9, r))

	glow := InnerGlowGain * math.Exp(-max(0, r-inner)*InnerGlowFalloff)
	c = c.Add(core.NewVec3(hotWhite.R, hotWhite.G, hotWhite.B).Multiply(glow))
	return c
}

// turbulence evaluates per-component fbm over swirling scaled spherical
// coordinates. The azimuth is advected by the local orbital velocity so the
// pattern shears with radius instead of rotating rigidly.
func (sh *Shader) turbulence(p core.Vec3, r, theta, t float64) core.Vec3 {
	swirl := theta + t*sh.params.DiskRotationSpeed*sh.OrbitalVelocity(r)
	q := core.NewVec3(r*1.4, swirl*2.0, p.Y*6.0)

	return core.NewVec3(
		TurbulenceFloor+TurbulenceGain*fbm(q),
		TurbulenceFloor+TurbulenceGain*fbm(q.Add(core.NewVec3(7.31, 3.70, 1.90))),
		TurbulenceFloor+TurbulenceGain*fbm(q.Add(core.NewVec3(2.17, 9.20, 4.40))),
	)
}
