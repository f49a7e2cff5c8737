package renderer

import (
	"math"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
	"github.com/gravlens/go-blackhole-raytracer/pkg/geodesic"
)

// GammaExponent is the fixed tone curve applied last, after glow and vignette
const GammaExponent = 0.85

// Vignette ramp in aspect-corrected screen-radius units
const (
	vignetteInner = 0.4
	vignetteOuter = 1.4
)

// glowColor is the warm white of the photon-sphere ring
var glowColor = core.NewVec3(1.0, 0.92, 0.80)

// Compositor combines a ray's terminal integration result with the
// background, the photon-sphere glow, the vignette and the gamma curve into
// the final display-ready pixel color.
type Compositor struct {
	params       core.ParameterSet
	photonSphere float64
}

// NewCompositor builds a compositor for one frame's parameter snapshot
func NewCompositor(params core.ParameterSet) *Compositor {
	return &Compositor{
		params:       params,
		photonSphere: geodesic.PhotonSphereRadius(params.Mass, params.Spin, params.Horizon),
	}
}

// PhotonSphereRadius returns the glow ring radius in use
func (c *Compositor) PhotonSphereRadius() float64 {
	return c.photonSphere
}

// Composite produces the final color for one sample. Absorbed rays keep
// whatever disk emission they accumulated before capture and gain nothing
// else, so a clean capture is exactly black. Escaped (and budget-exhausted)
// rays see the background attenuated by the remaining transmittance, plus
// the photon-sphere glow driven by their closest approach.
func (c *Compositor) Composite(res geodesic.TraceResult, bg core.Vec3, screenRadius float64) core.Vec3 {
	color := res.Color

	if res.Status.EscapedForShading() {
		color = color.Add(bg.Multiply(res.Transmittance))

		glow := c.params.GlowIntensity *
			math.Exp(-math.Abs(res.MinRadius-c.photonSphere)*c.params.LensSharpness)
		color = color.Add(glowColor.Multiply(glow))
	}

	vignette := 1 - c.params.VignetteStrength*core.Smoothstep(vignetteInner, vignetteOuter, screenRadius)
	color = color.Multiply(vignette)

	return color.Pow(GammaExponent).Clamp(0, 1)
}
