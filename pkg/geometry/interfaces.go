package geometry

import (
	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the intersection with t in [tMin, tMax), or false on a miss
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
