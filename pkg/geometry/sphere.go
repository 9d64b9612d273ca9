package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/material"
)

// ErrInvalidSphere is returned for spheres that cannot be intersected meaningfully
var ErrInvalidSphere = errors.New("invalid sphere")

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	if !center.IsFinite() {
		return nil, fmt.Errorf("%w: center %v is not finite", ErrInvalidSphere, center)
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return nil, fmt.Errorf("%w: radius %v must be positive", ErrInvalidSphere, radius)
	}
	if mat == nil {
		return nil, fmt.Errorf("%w: material is required", ErrInvalidSphere)
	}
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}, nil
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !inRange(root, tMin, tMax) {
		root = (-halfB + sqrtD) / a
		if !inRange(root, tMin, tMax) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// inRange reports whether t lies in the half-open interval [tMin, tMax)
func inRange(t, tMin, tMax float64) bool {
	return t >= tMin && t < tMax
}
