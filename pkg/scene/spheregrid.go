package scene

import (
	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/material"
	"github.com/oneweekend/pathtracer/pkg/renderer"
)

// NewRandomScene creates the cover scene: a large ground sphere, a 10x10 grid of small
// randomly placed spheres, and three large feature spheres. The same seed always
// builds the same world.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s, err := newScene("random", cameraConfig, renderer.SamplingConfig{
		Width:           600,
		SamplesPerPixel: 50,
		MaxDepth:        10,
	})
	if err != nil {
		return nil, err
	}

	ground, err := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	if err != nil {
		return nil, err
	}
	if err := s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground); err != nil {
		return nil, err
	}

	sampler := core.NewSeededSampler(seed)
	clearance := core.NewVec3(4, 0.2, 0)
	const smallRadius = 0.2

	for a := -5; a < 5; a++ {
		for b := -5; b < 5; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				smallRadius,
				float64(b)+0.9*sampler.Get1D(),
			)

			// Keep the space around the metal feature sphere clear
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			mat, err := randomMaterial(chooseMat, sampler)
			if err != nil {
				return nil, err
			}
			if err := s.AddSphere(center, smallRadius, mat); err != nil {
				return nil, err
			}
		}
	}

	glass, err := material.NewDielectric(1.5)
	if err != nil {
		return nil, err
	}
	brown, err := material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))
	if err != nil {
		return nil, err
	}
	mirror, err := material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)
	if err != nil {
		return nil, err
	}

	for _, sp := range []struct {
		center core.Vec3
		mat    material.Material
	}{
		{core.NewVec3(0, 1, 0), glass},
		{core.NewVec3(-4, 1, 0), brown},
		{core.NewVec3(4, 1, 0), mirror},
	} {
		if err := s.AddSphere(sp.center, 1.0, sp.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// randomMaterial picks diffuse (80%), metal (15%) or glass (5%)
func randomMaterial(chooseMat float64, sampler core.Sampler) (material.Material, error) {
	switch {
	case chooseMat < 0.8:
		albedo := core.RandomVec(sampler).MultiplyVec(core.RandomVec(sampler))
		return material.NewLambertian(albedo)
	case chooseMat < 0.95:
		albedo := core.RandomVecRange(sampler, 0.5, 1)
		fuzz := core.RandomRange(sampler, 0, 0.5)
		return material.NewMetal(albedo, fuzz)
	default:
		return material.NewDielectric(1.5)
	}
}
