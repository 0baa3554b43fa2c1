package geometry

import "github.com/df07/go-scanline-raytracer/pkg/core"

// HittableList is a scene aggregate that tests every shape in turn and keeps
// the nearest hit. It is read-only once rendering begins.
type HittableList struct {
	Shapes []core.Shape
}

// NewHittableList creates a list from the given shapes
func NewHittableList(shapes ...core.Shape) *HittableList {
	return &HittableList{Shapes: shapes}
}

// Add appends a shape. Not safe to call while a render is in progress.
func (l *HittableList) Add(shape core.Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Hit returns the globally nearest hit among all shapes
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return hitClosest(l.Shapes, ray, tMin, tMax)
}

// BoundingBox returns the union of all member boxes
func (l *HittableList) BoundingBox(time0, time1 float64) core.AABB {
	return boundShapes(l.Shapes, time0, time1)
}

// hitClosest narrows tMax as hits are found so each later test only accepts nearer hits
func hitClosest(shapes []core.Shape, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

func boundShapes(shapes []core.Shape, time0, time1 float64) core.AABB {
	if len(shapes) == 0 {
		return core.AABB{}
	}
	box := shapes[0].BoundingBox(time0, time1)
	for _, shape := range shapes[1:] {
		box = box.Union(shape.BoundingBox(time0, time1))
	}
	return box
}
