package disk

import (
	"math"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// DensityThreshold is the cutoff below which a sample contributes nothing.
// Intermediate factors are checked against it so most off-disk points exit
// after one or two multiplies.
const DensityThreshold = 1e-3

// BrightnessConstant scales the radial 1/rho^4 brightness profile. Tuned by
// inspection, not physically derived.
const BrightnessConstant = 32000.0

// minRho guards the 1/rho^4 term near the center
const minRho = 1e-3

// Sampler evaluates the volumetric density of the accretion disk. The disk
// occupies the ellipsoid scaled by (outer, thickness, outer) around the
// origin, with the disk plane at y = 0.
type Sampler struct {
	inner     float64
	outer     float64
	thickness float64
}

// NewSampler builds a density sampler from a frame's parameter snapshot
func NewSampler(params core.ParameterSet) *Sampler {
	return &Sampler{
		inner:     params.DiskInnerRadius,
		outer:     params.DiskOuterRadius,
		thickness: params.DiskThickness,
	}
}

// Density returns the dimensionless density weight at a point, zero outside
// the disk volume. Factors are applied in cheap-to-expensive order:
// ellipsoid falloff, vertical falloff, inner-edge mask, radial brightness.
func (s *Sampler) Density(p core.Vec3) float64 {
	scaled := core.NewVec3(p.X/s.outer, p.Y/s.thickness, p.Z/s.outer)
	d := 1 - scaled.Length()
	if d <= 0 {
		return 0
	}

	vertical := 1 - math.Abs(p.Y)/s.thickness
	d *= vertical * vertical
	if d < DensityThreshold {
		return 0
	}

	rho := p.Length()
	d *= core.Smoothstep(s.inner, s.inner*1.1, rho)
	if d < DensityThreshold {
		return 0
	}

	rho = max(rho, minRho)
	d *= BrightnessConstant / (rho * rho * rho * rho)
	if d < DensityThreshold {
		return 0
	}
	return d
}
