package material

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/oneweekend/pathtracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	glass, err := NewDielectric(1.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(0, 1, 0), rayDirection)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	hasReflection := false
	hasRefraction := false

	for seed := int64(0); seed < 1000 && (!hasReflection || !hasRefraction); seed++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(seed)))
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}

		// Clear glass never tints
		if result.Attenuation != core.NewVec3(1, 1, 1) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}

		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected to see refraction in at least some cases")
	}
	if !hasReflection {
		t.Error("Expected Schlick reflectance to pick reflection in at least some cases")
	}
}

func TestDielectricRefractionBendsTowardNormal(t *testing.T) {
	glass, _ := NewDielectric(1.5)
	rayDirection := core.NewVec3(1, -1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 1, 0), rayDirection)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	// A draw of 0.999 is above the reflectance, forcing refraction
	result, _ := glass.Scatter(ray, hit, fixedSampler{value: 0.999})
	refracted := result.Scattered.Direction.Normalize()

	// Snell's law: sin(theta_t) = sin(45°) / 1.5
	expectedSin := math.Sin(math.Pi/4) / 1.5
	if math.Abs(refracted.X-expectedSin) > 1e-9 {
		t.Errorf("Expected refracted sin %f, got %f", expectedSin, refracted.X)
	}
	if refracted.Y >= 0 {
		t.Errorf("Refracted ray should continue downward, got %v", refracted)
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass, _ := NewDielectric(1.5)

	// Ray inside glass at a shallow angle
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false, // Exiting the material
		Material:  glass,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if 1.5*sinTheta <= 1.0 {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	for i := 0; i < 10; i++ {
		sampler := core.NewRandomSampler(rand.New(rand.NewSource(int64(i))))
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		assertVecNear(t, Reflect(rayDirection, hit.Normal), result.Scattered.Direction, 1e-12)
	}
}

func TestDielectricMatchingMediumPassesStraightThrough(t *testing.T) {
	air, _ := NewDielectric(1.0)

	tests := []struct {
		name      string
		direction core.Vec3
		frontFace bool
	}{
		{"normal incidence entering", core.NewVec3(0, -1, 0), true},
		{"normal incidence exiting", core.NewVec3(0, -1, 0), false},
		{"oblique entering", core.NewVec3(0.6, -0.8, 0), true},
		{"steep oblique", core.NewVec3(0.3, -0.5, 0.2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := HitRecord{
				Point:     core.NewVec3(0, 0, 0),
				Normal:    core.NewVec3(0, 1, 0),
				FrontFace: tt.frontFace,
			}
			ray := core.NewRay(core.NewVec3(0, 1, 0), tt.direction)

			result, scattered := air.Scatter(ray, hit, fixedSampler{value: 0.999})
			if !scattered {
				t.Fatal("Dielectric should always scatter")
			}
			assertVecNear(t, tt.direction.Normalize(), result.Scattered.Direction, 1e-12)
		})
	}

	// At normal incidence the reflectance collapses to zero, so any draw refracts
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	result, _ := air.Scatter(ray, hit, fixedSampler{value: 0.0})
	assertVecNear(t, core.NewVec3(0, -1, 0), result.Scattered.Direction, 1e-12)
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"matching medium normal incidence", 1.0, 1.0, 0.0},
		{"glass normal incidence", 1.0, 1.0 / 1.5, 0.04},
		{"grazing", 0.0, 1.0 / 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected reflectance %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestNewDielectric_Validation(t *testing.T) {
	for _, ir := range []float64{0, -1.5, math.NaN(), math.Inf(1)} {
		if _, err := NewDielectric(ir); !errors.Is(err, ErrInvalidMaterial) {
			t.Errorf("Expected ErrInvalidMaterial for ir=%v, got %v", ir, err)
		}
	}
}
