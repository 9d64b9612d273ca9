package integrator

import (
	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/geometry"
)

// Termination records why a light path stopped
type Termination int

const (
	// Escaped means the path left the scene and picked up the sky color
	Escaped Termination = iota
	// Absorbed means a material absorbed the path
	Absorbed
	// DepthExhausted means the bounce budget ran out
	DepthExhausted
)

// String returns a short name for the termination reason
func (t Termination) String() string {
	switch t {
	case Escaped:
		return "escaped"
	case Absorbed:
		return "absorbed"
	case DepthExhausted:
		return "depth-exhausted"
	default:
		return "unknown"
	}
}

// PathResult is the outcome of tracing one camera ray
type PathResult struct {
	Color       core.Vec3   // Radiance carried back along the path
	Bounces     int         // Number of successful scatter events
	Termination Termination // Why the path ended
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace follows a camera ray through the world and returns its color and history
	Trace(ray core.Ray, world geometry.Shape, sampler core.Sampler) PathResult
}
