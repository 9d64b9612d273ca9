package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/geometry"
	"github.com/oneweekend/pathtracer/pkg/material"
	"github.com/oneweekend/pathtracer/pkg/renderer"
)

var (
	// ErrUnknownScene is returned when a built-in scene name is not registered
	ErrUnknownScene = errors.New("unknown scene")
	// ErrUnsupportedFormat is returned for scene files with an unrecognised extension
	ErrUnsupportedFormat = errors.New("unsupported scene format")
	// ErrInvalidSceneFile is returned when a scene description cannot be built
	ErrInvalidSceneFile = errors.New("invalid scene file")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.HittableList // Objects in the scene
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// newScene creates an empty scene whose image height follows the camera aspect ratio
func newScene(name string, cameraConfig renderer.CameraConfig, sampling renderer.SamplingConfig) (*Scene, error) {
	if sampling.Height == 0 && cameraConfig.AspectRatio > 0 {
		sampling.Height = heightForAspect(sampling.Width, cameraConfig.AspectRatio)
	}

	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	return &Scene{
		Name:           name,
		World:          geometry.NewHittableList(),
		Camera:         camera,
		CameraConfig:   cameraConfig,
		SamplingConfig: sampling,
	}, nil
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	s.World.Add(sphere)
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.World.Shapes())
}

// ApplySamplingOverrides merges positive fields of override into the scene's sampling
// configuration. A width or height given on its own keeps the camera aspect ratio;
// both together reshape the camera to match.
func (s *Scene) ApplySamplingOverrides(override renderer.SamplingConfig) error {
	merged := renderer.MergeSamplingConfig(s.SamplingConfig, override)
	cameraConfig := s.CameraConfig

	switch {
	case override.Width > 0 && override.Height > 0:
		cameraConfig.AspectRatio = float64(override.Width) / float64(override.Height)
	case override.Width > 0:
		merged.Height = heightForAspect(override.Width, cameraConfig.AspectRatio)
	case override.Height > 0:
		merged.Width = widthForAspect(override.Height, cameraConfig.AspectRatio)
	}

	if err := merged.Validate(); err != nil {
		return err
	}

	if cameraConfig != s.CameraConfig {
		camera, err := renderer.NewCamera(cameraConfig)
		if err != nil {
			return err
		}
		s.Camera = camera
		s.CameraConfig = cameraConfig
	}
	s.SamplingConfig = merged
	return nil
}

func heightForAspect(width int, aspectRatio float64) int {
	return max(1, int(float64(width)/aspectRatio))
}

func widthForAspect(height int, aspectRatio float64) int {
	return max(1, int(math.Round(float64(height)*aspectRatio)))
}
