package background

import (
	"math"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// Source maps an escaped ray's final direction to a background color.
// Implementations must be deterministic in (direction, time).
type Source interface {
	Sample(dir core.Vec3, t float64) core.Vec3
}

// DirectionToUV maps a unit direction to equirectangular UV coordinates:
// u from the azimuth around Y, v from the clamped elevation.
func DirectionToUV(d core.Vec3) (u, v float64) {
	u = math.Atan2(d.Z, d.X)/(2*math.Pi) + 0.5
	v = math.Asin(max(-1, min(1, d.Y)))/math.Pi + 0.5
	return u, v
}

// nearBlackLuminance is the cutoff under which a texture lookup is treated
// as "nothing there" and the procedural starfield takes over
const nearBlackLuminance = 0.01

// Environment is the texture-first, procedural-second background policy:
// sample the bound equirectangular texture if any, and fall back to the
// starfield whenever the lookup comes back near-black.
type Environment struct {
	texture *Texture // may be nil
	stars   *StarField
}

// NewEnvironment creates a background with an optional equirectangular
// texture. Pass nil to render stars only.
func NewEnvironment(texture *Texture) *Environment {
	return &Environment{
		texture: texture,
		stars:   NewStarField(),
	}
}

// Stars exposes the fallback starfield for configuration
func (e *Environment) Stars() *StarField {
	return e.stars
}

// Sample implements Source
func (e *Environment) Sample(dir core.Vec3, t float64) core.Vec3 {
	dir = dir.Normalize()
	if e.texture != nil {
		u, v := DirectionToUV(dir)
		c := e.texture.Sample(u, v)
		if c.Luminance() > nearBlackLuminance {
			return c
		}
	}
	return e.stars.Sample(dir, t)
}
