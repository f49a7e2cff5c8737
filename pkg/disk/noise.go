package disk

import (
	"math"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// hash maps a lattice coordinate to a repeatable pseudo-random value in [0,1)
func hash(n float64) float64 {
	x := math.Sin(n) * 43758.5453
	return x - math.Floor(x)
}

// valueNoise is coherent lattice value noise with smooth Hermite fading.
// Deterministic: the same point always yields the same value.
func valueNoise(x core.Vec3) float64 {
	p := core.NewVec3(math.Floor(x.X), math.Floor(x.Y), math.Floor(x.Z))
	fx := fade(x.X - p.X)
	fy := fade(x.Y - p.Y)
	fz := fade(x.Z - p.Z)

	n := p.Dot(core.NewVec3(1, 57, 113))
	return core.Lerp(
		core.Lerp(
			core.Lerp(hash(n+0), hash(n+1), fx),
			core.Lerp(hash(n+57), hash(n+58), fx), fy),
		core.Lerp(
			core.Lerp(hash(n+113), hash(n+114), fx),
			core.Lerp(hash(n+170), hash(n+171), fx), fy), fz)
}

func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}

// rotateForward and rotateBackward are a fixed orthonormal rotation and its
// transpose. Alternating them between octaves shears the octaves against
// each other, faking the differential rotation of the disk material.
func rotateForward(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		core.NewVec3(0.00, 0.80, 0.60).Dot(v),
		core.NewVec3(-0.80, 0.36, -0.48).Dot(v),
		core.NewVec3(-0.60, -0.48, 0.64).Dot(v),
	)
}

func rotateBackward(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		core.NewVec3(0.00, -0.80, -0.60).Dot(v),
		core.NewVec3(0.80, 0.36, -0.48).Dot(v),
		core.NewVec3(0.60, -0.48, 0.64).Dot(v),
	)
}

// fbm accumulates four octaves of value noise with alternating rotation
// offsets per octave, normalized to [0,1)
func fbm(x core.Vec3) float64 {
	p := rotateForward(x)
	f := 0.5000 * valueNoise(p)
	p = rotateBackward(p.Multiply(2.32))
	f += 0.2500 * valueNoise(p)
	p = rotateForward(p.Multiply(3.03))
	f += 0.1250 * valueNoise(p)
	p = rotateBackward(p.Multiply(2.61))
	f += 0.0625 * valueNoise(p)
	return f / 0.9375
}
