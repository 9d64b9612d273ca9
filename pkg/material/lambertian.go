package material

import (
	"fmt"

	"github.com/oneweekend/pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) (*Lambertian, error) {
	if err := validateAlbedo(albedo); err != nil {
		return nil, err
	}
	return &Lambertian{Albedo: albedo}, nil
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}

func validateAlbedo(albedo core.Vec3) error {
	if !albedo.IsFinite() || albedo.X < 0 || albedo.Y < 0 || albedo.Z < 0 {
		return fmt.Errorf("%w: albedo %v must be finite and non-negative", ErrInvalidMaterial, albedo)
	}
	return nil
}
