package integrator

import (
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// DefaultEpsilon is the minimum hit distance used to keep a scattered ray from
// re-hitting the surface it left ("shadow acne"). It suits scenes measured in
// units of roughly 0.1 to 100; larger scenes need a larger value.
const DefaultEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing without light
// sampling: a path ends when it escapes to the background, is absorbed, or
// runs out of depth.
type PathTracingIntegrator struct {
	Background Background
	Epsilon    float64 // tMin for every scene query
}

// NewPathTracingIntegrator creates a path tracer. A non-positive epsilon
// selects DefaultEpsilon.
func NewPathTracingIntegrator(background Background, epsilon float64) *PathTracingIntegrator {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &PathTracingIntegrator{
		Background: background,
		Epsilon:    epsilon,
	}
}

// RayColor computes the color for a single ray.
//
// It is equivalent to the recursion
//
//	color(r, 0)     = black
//	color(r, d)     = background(r)                          if r escapes
//	                = black                                  if absorbed
//	                = attenuation ⊙ color(scattered, d-1)    otherwise
//
// written as a loop that carries the product of attenuations so stack usage
// stays constant regardless of depth.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Shape, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, pt.Epsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.Background.Color(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{X: 0, Y: 0, Z: 0}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit reached: no more light is gathered
	return core.Vec3{X: 0, Y: 0, Z: 0}
}
