package material

import (
	"fmt"
	"math"

	"github.com/oneweekend/pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Vec3 // Metal color
	Fuzz   float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material. Fuzz is clamped to [0, 1].
func NewMetal(albedo core.Vec3, fuzz float64) (*Metal, error) {
	if err := validateAlbedo(albedo); err != nil {
		return nil, err
	}
	if math.IsNaN(fuzz) {
		return nil, fmt.Errorf("%w: fuzz is NaN", ErrInvalidMaterial)
	}
	return &Metal{Albedo: albedo, Fuzz: max(0, min(1, fuzz))}, nil
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := Reflect(rayIn.Direction.Normalize(), hit.Normal)

	// Add fuzziness by perturbing the reflection direction. Perfect mirrors draw
	// nothing from the sampler, so every later draw in the path keeps its value.
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	scattered := core.NewRay(hit.Point, reflected)

	// Rays perturbed below the surface are absorbed
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}
