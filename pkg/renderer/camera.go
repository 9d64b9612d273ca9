package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/oneweekend/pathtracer/pkg/core"
)

// ErrInvalidCamera is returned when a camera configuration cannot produce rays
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the focal plane, 0 = distance to LookAt
}

// DefaultCameraConfig returns a pinhole camera at the origin looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.0,
		FocusDistance: 0.0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Camera basis vectors
	lensRadius      float64
	config          CameraConfig
}

// NewCamera creates a positionable thin-lens camera
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := validateCameraConfig(config); err != nil {
		return nil, err
	}

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis: w points backwards, u right, v up
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		config:          config,
	}, nil
}

// GetRay generates a ray for image-plane coordinates (s, t) where 0 <= s,t <= 1,
// with (0,0) at the lower-left corner
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

func validateCameraConfig(config CameraConfig) error {
	switch {
	case !config.LookFrom.IsFinite() || !config.LookAt.IsFinite() || !config.Up.IsFinite():
		return fmt.Errorf("%w: positions must be finite", ErrInvalidCamera)
	case !(config.VFov > 0 && config.VFov < 180):
		return fmt.Errorf("%w: vertical field of view %v must be in (0, 180) degrees", ErrInvalidCamera, config.VFov)
	case !(config.AspectRatio > 0) || math.IsInf(config.AspectRatio, 0):
		return fmt.Errorf("%w: aspect ratio %v must be positive", ErrInvalidCamera, config.AspectRatio)
	case !(config.Aperture >= 0) || math.IsInf(config.Aperture, 0):
		return fmt.Errorf("%w: aperture %v must be non-negative", ErrInvalidCamera, config.Aperture)
	case !(config.FocusDistance >= 0) || math.IsInf(config.FocusDistance, 0):
		return fmt.Errorf("%w: focus distance %v must be non-negative", ErrInvalidCamera, config.FocusDistance)
	}

	w := config.LookFrom.Subtract(config.LookAt)
	if w.NearZero() {
		return fmt.Errorf("%w: look-from and look-at are the same point", ErrInvalidCamera)
	}
	if config.Up.Cross(w).NearZero() {
		return fmt.Errorf("%w: up vector %v is parallel to the view direction", ErrInvalidCamera, config.Up)
	}
	return nil
}
