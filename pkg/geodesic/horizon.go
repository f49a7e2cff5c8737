package geodesic

import (
	"math"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// SchwarzschildRadius returns r_s = 2M in geometric units
func SchwarzschildRadius(mass float64) float64 {
	return 2 * mass
}

// EventHorizonRadius returns the capture radius for the selected horizon
// model. The Kerr-reduced model shrinks the Schwarzschild radius linearly
// with spin, r_s*(1 - a/2), and reduces to 2M exactly at zero spin. Spin is
// clamped to [0, MaxSpin] so a bad parameter can never open the horizon.
func EventHorizonRadius(mass, spin float64, model core.HorizonModel) float64 {
	rs := SchwarzschildRadius(mass)
	if model == core.HorizonKerrReduced {
		a := max(0, min(core.MaxSpin, spin))
		return rs * (1 - 0.5*a)
	}
	return rs
}

// PhotonSphereRadius returns the radius of unstable circular photon orbits,
// 1.5x the event horizon for the chosen model. Rendered as a glow ring, not
// a hard boundary.
func PhotonSphereRadius(mass, spin float64, model core.HorizonModel) float64 {
	return 1.5 * EventHorizonRadius(mass, spin, model)
}

// CriticalImpactParameter returns 3*sqrt(3)*M, the Schwarzschild impact
// parameter below which a photon is captured
func CriticalImpactParameter(mass float64) float64 {
	return 3 * math.Sqrt(3) * mass
}
