package disk

import (
	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// EmissionGain scales shaded disk color into the integrator's accumulation.
// Visual tuning constant balancing the large 1/rho^4 density weights.
const EmissionGain = 0.05

// Volume couples the density sampler and the shader into the integrator's
// volume interface: membership and density from the sampler, color from the
// shader, only when the density survives the threshold.
type Volume struct {
	sampler *Sampler
	shader  *Shader
}

// NewVolume builds the disk volume for a frame's parameter snapshot
func NewVolume(params core.ParameterSet) *Volume {
	return &Volume{
		sampler: NewSampler(params),
		shader:  NewShader(params),
	}
}

// Sample implements geodesic.VolumeSampler
func (v *Volume) Sample(p core.Vec3, t float64) (core.Vec3, float64) {
	d := v.sampler.Density(p)
	if d <= 0 {
		return core.Vec3{}, 0
	}
	return v.shader.Shade(p, t).Multiply(EmissionGain), d
}

// Sampler exposes the underlying density sampler
func (v *Volume) Sampler() *Sampler {
	return v.sampler
}

// Shader exposes the underlying shader
func (v *Volume) Shader() *Shader {
	return v.shader
}
