package core

// Smoothstep performs the Hermite interpolation used throughout the disk
// model. edge0 may be greater than edge1, in which case the result ramps
// from 0 at edge0 down to 1 at edge1 (the "reversed" form used for the
// disk temperature profile).
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	t = max(0, min(1, t))
	return t * t * (3 - 2*t)
}

// Lerp linearly interpolates between a and b without clamping t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
