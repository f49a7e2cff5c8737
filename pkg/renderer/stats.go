package renderer

// RenderStats aggregates ray outcomes over a frame (or a tile of one)
type RenderStats struct {
	TotalPixels     int // pixels rendered
	TotalRays       int // primary rays traced (pixels x supersamples)
	AbsorbedRays    int // rays captured by the horizon
	EscapedRays     int // rays that left the domain naturally
	ExhaustedRays   int // rays that ran out of step budget (shaded as escaped)
	DiskRays        int // rays that accumulated any disk material
	TotalSteps      int // integration steps across all rays
	ClosestApproach float64
}

// Merge folds tile statistics into frame statistics
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalRays += other.TotalRays
	rs.AbsorbedRays += other.AbsorbedRays
	rs.EscapedRays += other.EscapedRays
	rs.ExhaustedRays += other.ExhaustedRays
	rs.DiskRays += other.DiskRays
	rs.TotalSteps += other.TotalSteps
	if other.ClosestApproach > 0 && (rs.ClosestApproach == 0 || other.ClosestApproach < rs.ClosestApproach) {
		rs.ClosestApproach = other.ClosestApproach
	}
}

// AverageSteps returns the mean integration steps per ray
func (rs *RenderStats) AverageSteps() float64 {
	if rs.TotalRays == 0 {
		return 0
	}
	return float64(rs.TotalSteps) / float64(rs.TotalRays)
}
