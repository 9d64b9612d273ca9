package scene

import (
	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/material"
	"github.com/oneweekend/pathtracer/pkg/renderer"
)

// NewDefaultScene creates a ground sphere with a glass, diffuse and metal sphere side by side
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          30.0,
		Aperture:      0.0,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s, err := newScene("default", cameraConfig, renderer.SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})
	if err != nil {
		return nil, err
	}

	ground, err := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	if err != nil {
		return nil, err
	}
	diffuse, err := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	if err != nil {
		return nil, err
	}
	glass, err := material.NewDielectric(1.5)
	if err != nil {
		return nil, err
	}
	gold, err := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)
	if err != nil {
		return nil, err
	}

	spheres := []struct {
		center core.Vec3
		radius float64
		mat    material.Material
	}{
		{core.NewVec3(0, -100.5, -1), 100, ground},
		{core.NewVec3(0, 0, -1), 0.5, diffuse},
		{core.NewVec3(-1, 0, -1), 0.5, glass},
		{core.NewVec3(1, 0, -1), 0.5, gold},
	}
	for _, sp := range spheres {
		if err := s.AddSphere(sp.center, sp.radius, sp.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// NewSingleSphereScene creates one grey diffuse sphere in front of a pinhole camera at the origin
func NewSingleSphereScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := renderer.DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s, err := newScene("single-sphere", cameraConfig, renderer.SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})
	if err != nil {
		return nil, err
	}

	grey, err := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	if err != nil {
		return nil, err
	}
	if err := s.AddSphere(core.NewVec3(0, 0, -1), 0.5, grey); err != nil {
		return nil, err
	}

	return s, nil
}
