package integrator

import (
	"math"

	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/geometry"
)

// SelfIntersectionEpsilon is the minimum t accepted for a hit, so rays leaving a
// surface do not immediately re-hit it due to floating-point error
const SelfIntersectionEpsilon = 0.001

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		maxDepth: maxDepth,
	}
}

// Trace implements Integrator using the configured bounce budget
func (pt *PathTracingIntegrator) Trace(ray core.Ray, world geometry.Shape, sampler core.Sampler) PathResult {
	return pt.TraceDepth(ray, world, sampler, pt.maxDepth)
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	return pt.TraceDepth(ray, world, sampler, pt.maxDepth).Color
}

// TraceDepth follows a ray for at most depth bounces.
// The loop carries the running attenuation product, so each iteration is one level
// of attenuation * rayColor(scattered, depth-1).
func (pt *PathTracingIntegrator) TraceDepth(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) PathResult {
	throughput := core.NewVec3(1, 1, 1)
	bounces := 0

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, SelfIntersectionEpsilon, math.Inf(1))
		if !isHit {
			return PathResult{
				Color:       throughput.MultiplyVec(SkyGradient(ray)),
				Bounces:     bounces,
				Termination: Escaped,
			}
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return PathResult{Bounces: bounces, Termination: Absorbed}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
		bounces++
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	return PathResult{Bounces: bounces, Termination: DepthExhausted}
}

// SkyGradient returns the background color for a ray that escaped the scene.
// Blends white at the bottom into light blue at the top; the blue channel stays 1.
func SkyGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return core.Lerp(skyWhite, skyBlue, t)
}
