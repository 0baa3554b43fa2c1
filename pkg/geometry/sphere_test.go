package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// stubMaterial absorbs everything; only its identity matters in these tests
type stubMaterial struct{ name string }

func (m *stubMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 5),
			rayDirection:   core.NewVec3(0, 0, -4),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_StartOnSurfaceMovingOutward(t *testing.T) {
	center := core.NewVec3(1, -2, 3)
	radius := 2.0
	sphere := NewSphere(center, radius, nil)

	directions := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 1, 1).Normalize(),
	}

	for _, dir := range directions {
		// Origin on the surface along dir, moving further along dir (away from the sphere)
		origin := center.Add(dir.Multiply(radius))
		ray := core.NewRay(origin, dir.Multiply(3))
		if hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1)); isHit {
			t.Errorf("Direction %v: expected miss, got hit at t=%g", dir, hit.T)
		}
	}
}

func TestSphere_Hit_ThroughCenterRootsSymmetric(t *testing.T) {
	center := core.NewVec3(0, 0, -5)
	radius := 1.5
	sphere := NewSphere(center, radius, nil)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -2))
	a := ray.Direction.LengthSquared()
	halfB := ray.Origin.Subtract(center).Dot(ray.Direction)
	mid := -halfB / a

	near, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit on near side")
	}

	// Exclude the near root to force the far one
	far, isHit := sphere.Hit(ray, near.T+1e-6, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit on far side")
	}

	if near.T >= far.T {
		t.Errorf("Near root %f should be smaller than far root %f", near.T, far.T)
	}
	if math.Abs((mid-near.T)-(far.T-mid)) > 1e-12 {
		t.Errorf("Roots %f and %f are not symmetric about %f", near.T, far.T, mid)
	}
	if math.Abs(near.T-1.75) > 1e-12 || math.Abs(far.T-3.25) > 1e-12 {
		t.Errorf("Expected roots 1.75 and 3.25, got %f and %f", near.T, far.T)
	}

	// tMax between the roots: only the near root is valid
	if hit, isHit := sphere.Hit(ray, 0.001, 2.0); !isHit || hit.T != near.T {
		t.Errorf("Expected near root with tMax=2, got %v %v", hit, isHit)
	}
	// Range beyond both roots: no hit
	if _, isHit := sphere.Hit(ray, 4.0, math.Inf(1)); isHit {
		t.Error("Expected miss when both roots are before tMin")
	}
}

func TestSphere_Hit_NormalInvariants(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0.5, -0.25, -3), 1.25, nil)
	sampler := core.NewSeededSampler(11)

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := core.RandomInUnitSphere(sampler).Multiply(4)
		dir := core.RandomUnitVector(sampler).Multiply(0.5 + sampler.Get1D())
		ray := core.NewRay(origin, dir)

		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			continue
		}
		hits++

		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Normal %v is not unit length", hit.Normal)
		}
		if hit.Normal.Dot(ray.Direction) > 0 {
			t.Fatalf("Normal %v points along ray direction %v", hit.Normal, ray.Direction)
		}
		outward := hit.Point.Subtract(sphere.Center).Normalize()
		expected := outward
		if !hit.FrontFace {
			expected = outward.Negate()
		}
		if hit.Normal.Subtract(expected).Length() > 1e-9 {
			t.Fatalf("Normal %v does not match radial direction %v", hit.Normal, expected)
		}
		if hit.T < 0.001 {
			t.Fatalf("Hit t=%f below tMin", hit.T)
		}
	}

	if hits == 0 {
		t.Fatal("Expected some random rays to hit the sphere")
	}
}

func TestSphere_Hit_AttachesMaterial(t *testing.T) {
	mat := &stubMaterial{name: "shared"}
	sphere := NewSphere(core.NewVec3(0, 0, -2), 0.5, mat)

	hit, isHit := sphere.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != mat {
		t.Errorf("Expected hit to reference the sphere's material")
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, nil)
	box := sphere.BoundingBox(0, 1)
	expected := core.NewAABB(core.NewVec3(0.5, 1.5, 2.5), core.NewVec3(1.5, 2.5, 3.5))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}
}

func TestMovingSphere_HitUsesRayTime(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, -5), core.NewVec3(4, 0, -5), 0, 1, 1, nil)

	dir := core.NewVec3(0, 0, -1)
	atStart := core.NewRayAtTime(core.Vec3{}, dir, 0)
	if _, isHit := sphere.Hit(atStart, 0.001, math.Inf(1)); !isHit {
		t.Error("Expected hit at time 0 when sphere is on the axis")
	}

	atEnd := core.NewRayAtTime(core.Vec3{}, dir, 1)
	if _, isHit := sphere.Hit(atEnd, 0.001, math.Inf(1)); isHit {
		t.Error("Expected miss at time 1 after the sphere moved away")
	}

	shifted := core.NewRayAtTime(core.NewVec3(2, 0, 0), dir, 0.5)
	hit, isHit := sphere.Hit(shifted, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit at time 0.5 along the shifted axis")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
}

func TestMovingSphere_BoundingBoxCoversInterval(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(2, 1, 0), 0, 1, 0.5, nil)
	box := sphere.BoundingBox(0, 1)

	for _, tm := range []float64{0, 0.25, 0.5, 0.75, 1} {
		inner := sphereBox(sphere.CenterAt(tm), sphere.Radius)
		if !box.Contains(inner) {
			t.Errorf("Box %v does not contain sphere at time %f (%v)", box, tm, inner)
		}
	}

	expected := core.NewAABB(core.NewVec3(-0.5, -0.5, -0.5), core.NewVec3(2.5, 1.5, 0.5))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}
}

func TestMovingSphere_StationaryInterval(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(1, 1, 1), core.NewVec3(5, 5, 5), 0.5, 0.5, 1, nil)
	if got := sphere.CenterAt(10); !got.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Zero-length interval should pin the first center, got %v", got)
	}
}
