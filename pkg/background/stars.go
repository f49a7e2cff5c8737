package background

import (
	"math"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// Star placement constants: per octave the UV grid gets finer, the hash
// threshold drops slightly (more stars) and the brightness weight shrinks.
const (
	starOctaves    = 3
	starBaseScale  = 320.0
	starScaleStep  = 2.3
	starThreshold  = 0.995
	starThreshStep = 0.002
	starWeightStep = 0.6
)

// StarField synthesizes a deterministic procedural starfield from a ray
// direction. RotationRate optionally spins the whole sky slowly around Y
// with scene time; zero keeps it static.
type StarField struct {
	RotationRate float64
}

// NewStarField returns a static starfield
func NewStarField() *StarField {
	return &StarField{}
}

// hashUV is the fixed sine-dot hash used for star placement
func hashUV(u, v float64) float64 {
	s := math.Sin(u*12.9898+v*78.233) * 43758.5453
	return s - math.Floor(s)
}

// Sample implements Source. Brightness is accumulated over octaves of
// hashed UV cells; only hashes above the per-octave threshold become stars.
func (sf *StarField) Sample(dir core.Vec3, t float64) core.Vec3 {
	if sf.RotationRate != 0 {
		angle := t * sf.RotationRate
		sin, cos := math.Sincos(angle)
		dir = core.NewVec3(dir.X*cos-dir.Z*sin, dir.Y, dir.X*sin+dir.Z*cos)
	}
	u, v := DirectionToUV(dir)

	brightness := 0.0
	scale := starBaseScale
	threshold := starThreshold
	weight := 1.0
	for o := 0; o < starOctaves; o++ {
		h := hashUV(math.Floor(u*scale), math.Floor(v*scale))
		if h > threshold {
			brightness += weight * (h - threshold) / (1 - threshold)
		}
		scale *= starScaleStep
		threshold -= starThreshStep
		weight *= starWeightStep
	}

	return core.NewVec3(brightness, brightness, brightness)
}
