package material

import (
	"math"
	"testing"

	"github.com/oneweekend/pathtracer/pkg/core"
)

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		v        core.Vec3
		n        core.Vec3
		expected core.Vec3
	}{
		{"head on", core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)},
		{"45 degrees", core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 0)},
		{"tangent", core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)},
		{"tilted normal", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 0).Normalize(), core.NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVecNear(t, tt.expected, Reflect(tt.v, tt.n), 1e-12)
		})
	}
}

func TestReflect_IsInvolution(t *testing.T) {
	n := core.NewVec3(0.2, 0.9, -0.3).Normalize()
	vectors := []core.Vec3{
		core.NewVec3(1, -1, 0),
		core.NewVec3(-0.4, -2, 0.7),
		core.NewVec3(0.1, 0.2, 0.3),
	}

	for _, v := range vectors {
		twice := Reflect(Reflect(v, n), n)
		if twice.Dot(v) <= 0 {
			t.Errorf("Double reflection of %v lost its direction: %v", v, twice)
		}
		assertVecNear(t, v, twice, 1e-12)
	}
}

func TestReflect_PreservesLength(t *testing.T) {
	v := core.NewVec3(0.3, -0.8, 0.5)
	n := core.NewVec3(0, 0, 1)
	if math.Abs(Reflect(v, n).Length()-v.Length()) > 1e-12 {
		t.Error("Reflection must preserve vector length")
	}
}

func TestRefract_NormalIncidence(t *testing.T) {
	uv := core.NewVec3(0, 0, -1)
	n := core.NewVec3(0, 0, 1)

	for _, eta := range []float64{1.0, 1.0 / 1.5, 1.5} {
		assertVecNear(t, uv, Refract(uv, n, eta), 1e-12)
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	var front HitRecord
	front.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)), outward)
	if !front.FrontFace || front.Normal != outward {
		t.Errorf("Expected front face with outward normal, got %+v", front)
	}

	var back HitRecord
	back.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), outward)
	if back.FrontFace || back.Normal != outward.Negate() {
		t.Errorf("Expected back face with flipped normal, got %+v", back)
	}
}
