package geodesic

import (
	"math"
	"testing"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

func TestEventHorizonRadius(t *testing.T) {
	tests := []struct {
		name     string
		mass     float64
		spin     float64
		model    core.HorizonModel
		expected float64
	}{
		{
			name:     "schwarzschild unit mass",
			mass:     1.0,
			spin:     0.0,
			model:    core.HorizonSchwarzschild,
			expected: 2.0,
		},
		{
			name:     "schwarzschild ignores spin",
			mass:     1.0,
			spin:     0.9,
			model:    core.HorizonSchwarzschild,
			expected: 2.0,
		},
		{
			name:     "kerr-reduced at zero spin matches schwarzschild",
			mass:     1.0,
			spin:     0.0,
			model:    core.HorizonKerrReduced,
			expected: 2.0,
		},
		{
			name:     "kerr-reduced near-extremal spin",
			mass:     1.0,
			spin:     0.998,
			model:    core.HorizonKerrReduced,
			expected: 1.002,
		},
		{
			name:     "kerr-reduced scales with mass",
			mass:     2.0,
			spin:     0.5,
			model:    core.HorizonKerrReduced,
			expected: 3.0,
		},
		{
			name:     "kerr-reduced clamps spin above cap",
			mass:     1.0,
			spin:     5.0,
			model:    core.HorizonKerrReduced,
			expected: 2 * (1 - 0.5*core.MaxSpin),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EventHorizonRadius(tt.mass, tt.spin, tt.model)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestPhotonSphereRadius(t *testing.T) {
	// 1.5x the horizon for either model
	got := PhotonSphereRadius(1.0, 0.0, core.HorizonSchwarzschild)
	if math.Abs(got-3.0) > 1e-12 {
		t.Errorf("Expected 3.0, got %v", got)
	}

	got = PhotonSphereRadius(1.0, 0.998, core.HorizonKerrReduced)
	if math.Abs(got-1.503) > 1e-12 {
		t.Errorf("Expected 1.503, got %v", got)
	}
}

func TestCriticalImpactParameter(t *testing.T) {
	got := CriticalImpactParameter(1.0)
	expected := 3 * math.Sqrt(3)
	if math.Abs(got-expected) > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// Scales linearly with mass
	if math.Abs(CriticalImpactParameter(2.0)-2*expected) > 1e-12 {
		t.Errorf("Expected linear scaling with mass")
	}
}
