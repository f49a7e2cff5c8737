package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	const tolerance = 1e-12

	if got := a.Add(b); got != NewVec3(5, -3, 9) {
		t.Errorf("Add: expected (5,-3,9), got %v", got)
	}
	if got := a.Subtract(b); got != NewVec3(-3, 7, -3) {
		t.Errorf("Subtract: expected (-3,7,-3), got %v", got)
	}
	if got := a.Multiply(2); got != NewVec3(2, 4, 6) {
		t.Errorf("Multiply: expected (2,4,6), got %v", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, -10, 18) {
		t.Errorf("MultiplyVec: expected (4,-10,18), got %v", got)
	}
	if got := a.Dot(b); math.Abs(got-12) > tolerance {
		t.Errorf("Dot: expected 12, got %v", got)
	}
	if got := a.Negate(); got != NewVec3(-1, -2, -3) {
		t.Errorf("Negate: expected (-1,-2,-3), got %v", got)
	}
}

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{
			name:     "X cross Y is Z",
			a:        NewVec3(1, 0, 0),
			b:        NewVec3(0, 1, 0),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "Y cross X is -Z",
			a:        NewVec3(0, 1, 0),
			b:        NewVec3(1, 0, 0),
			expected: NewVec3(0, 0, -1),
		},
		{
			name:     "parallel vectors give zero",
			a:        NewVec3(2, 2, 2),
			b:        NewVec3(4, 4, 4),
			expected: NewVec3(0, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Cross(tt.b)
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %v", v.Length())
	}

	// Zero vector must not produce NaN
	zero := NewVec3(0, 0, 0).Normalize()
	if zero != NewVec3(0, 0, 0) {
		t.Errorf("Expected zero vector unchanged, got %v", zero)
	}
}

func TestVec3_Pow(t *testing.T) {
	tests := []struct {
		name     string
		input    Vec3
		exponent float64
		expected Vec3
	}{
		{
			name:     "identity exponent",
			input:    NewVec3(0.25, 0.5, 1.0),
			exponent: 1.0,
			expected: NewVec3(0.25, 0.5, 1.0),
		},
		{
			name:     "square root",
			input:    NewVec3(0.25, 1.0, 4.0),
			exponent: 0.5,
			expected: NewVec3(0.5, 1.0, 2.0),
		},
		{
			name:     "negative components clamp to zero",
			input:    NewVec3(-0.5, 0.0, 1.0),
			exponent: 0.85,
			expected: NewVec3(0.0, 0.0, 1.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.Pow(tt.exponent)
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Lerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(2, 4, 6)

	if got := a.Lerp(b, 0.5); got.Subtract(NewVec3(1, 2, 3)).Length() > 1e-12 {
		t.Errorf("Lerp midpoint: expected (1,2,3), got %v", got)
	}
	// t is clamped
	if got := a.Lerp(b, 2.0); got.Subtract(b).Length() > 1e-12 {
		t.Errorf("Lerp t>1: expected %v, got %v", b, got)
	}
	if got := a.Lerp(b, -1.0); got.Subtract(a).Length() > 1e-12 {
		t.Errorf("Lerp t<0: expected %v, got %v", a, got)
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1)
	if v != NewVec3(0, 0.5, 1) {
		t.Errorf("Expected (0,0.5,1), got %v", v)
	}
}

func TestVec3_Luminance(t *testing.T) {
	if got := NewVec3(1, 1, 1).Luminance(); math.Abs(got-1) > 1e-12 {
		t.Errorf("Expected white luminance 1, got %v", got)
	}
	// Green contributes more than red, red more than blue
	r := NewVec3(1, 0, 0).Luminance()
	g := NewVec3(0, 1, 0).Luminance()
	b := NewVec3(0, 0, 1).Luminance()
	if !(g > r && r > b) {
		t.Errorf("Expected G > R > B weights, got r=%v g=%v b=%v", r, g, b)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	if got := ray.At(2); got != NewVec3(1, 2, 0) {
		t.Errorf("Expected (1,2,0), got %v", got)
	}
}
