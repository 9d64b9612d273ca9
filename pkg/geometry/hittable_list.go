package geometry

import (
	"github.com/oneweekend/pathtracer/pkg/core"
	"github.com/oneweekend/pathtracer/pkg/material"
)

// HittableList is an ordered collection of shapes tested as one.
// Shapes are appended while a scene is built and only read while rendering.
type HittableList struct {
	shapes []Shape
}

// NewHittableList creates a list holding the given shapes
func NewHittableList(shapes ...Shape) *HittableList {
	return &HittableList{shapes: append([]Shape(nil), shapes...)}
}

// Add appends a shape to the list
func (l *HittableList) Add(shape Shape) {
	l.shapes = append(l.shapes, shape)
}

// Shapes returns the shapes in insertion order
func (l *HittableList) Shapes() []Shape {
	return l.shapes
}

// Hit returns the closest intersection across all shapes with t in [tMin, tMax)
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
