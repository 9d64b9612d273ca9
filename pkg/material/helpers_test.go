package material

import (
	"math"
	"testing"

	"github.com/oneweekend/pathtracer/pkg/core"
)

// fixedSampler returns the same values on every draw
type fixedSampler struct {
	value float64
	vec   core.Vec3
}

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(f.vec.X, f.vec.Y)
}
func (f fixedSampler) Get3D() core.Vec3 { return f.vec }

func assertVecNear(t *testing.T, expected, got core.Vec3, tolerance float64) {
	t.Helper()
	if math.Abs(got.X-expected.X) > tolerance ||
		math.Abs(got.Y-expected.Y) > tolerance ||
		math.Abs(got.Z-expected.Z) > tolerance {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
