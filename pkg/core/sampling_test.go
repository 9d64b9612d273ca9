package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomInUnitSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Point %v lies outside the unit sphere", p)
		}
	}
}

func TestRandomUnitVector(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	var sum Vec3
	const n = 5000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1.0) > 1e-9 {
			t.Fatalf("Expected unit length, got %f", v.Length())
		}
		sum = sum.Add(v)
	}

	// Uniform directions average out close to the origin
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Unit vectors look biased, mean %v", mean)
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Disk sample must lie in the z=0 plane, got %v", p)
		}
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Point %v lies outside the unit disk", p)
		}
	}
}

func TestRandomVecRange(t *testing.T) {
	sampler := NewSeededSampler(3)

	for i := 0; i < 500; i++ {
		v := RandomVecRange(sampler, 0.5, 1.0)
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < 0.5 || c >= 1.0 {
				t.Fatalf("Component %f outside [0.5, 1.0)", c)
			}
		}
		r := RandomRange(sampler, -2, 3)
		if r < -2 || r >= 3 {
			t.Fatalf("RandomRange returned %f outside [-2, 3)", r)
		}
	}
}

func TestSeededSamplerIsReproducible(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)

	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Samplers with equal seeds diverged")
		}
	}
}
