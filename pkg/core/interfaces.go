package core

// Shape is anything a ray can intersect: a single primitive or an aggregate of them.
// Implementations must be safe for concurrent use; shapes are never mutated once
// a render has started.
type Shape interface {
	// Hit returns the nearest intersection with parameter t in [tMin, tMax].
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	// BoundingBox returns a box enclosing the shape over the time interval [time0, time1].
	BoundingBox(time0, time1 float64) AABB
}

// Material decides how light scatters at a surface point
type Material interface {
	// Scatter returns the scattered ray and attenuation. The bool is false when
	// the ray is absorbed, in which case the attenuation is black.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The outgoing ray
	Attenuation Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit surface normal, always facing against the incoming ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the outer side
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Logger is a printf-style log sink
type Logger interface {
	Printf(format string, args ...interface{})
}
