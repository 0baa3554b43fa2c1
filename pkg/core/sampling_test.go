package core

import (
	"math"
	"testing"
)

// sequenceSampler replays a fixed list of values, for deterministic tests
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) Get2D() Vec2 {
	return NewVec2(s.Get1D(), s.Get1D())
}

func (s *sequenceSampler) Get3D() Vec3 {
	return NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}

func TestRandomInUnitSphere_InsideSphere(t *testing.T) {
	sampler := NewSeededSampler(42)

	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() >= 1 {
			t.Fatalf("Point %v lies outside the unit sphere", p)
		}
		mean = mean.Add(p)
	}

	mean = mean.Multiply(1.0 / n)
	if mean.Length() > 0.02 {
		t.Errorf("Mean of uniform points should be near origin, got %v", mean)
	}
}

func TestRandomInUnitSphere_RejectsCorners(t *testing.T) {
	// First draw maps to (1,1,1)*0.98 which is outside; second maps to the origin
	sampler := &sequenceSampler{values: []float64{0.99, 0.99, 0.99, 0.5, 0.5, 0.5}}

	p := RandomInUnitSphere(sampler)
	if !p.Equals(Vec3{}) {
		t.Errorf("Expected rejected corner then origin, got %v", p)
	}
	if sampler.next != 6 {
		t.Errorf("Expected 6 draws (one rejection), got %d", sampler.next)
	}
}

func TestRandomInUnitSphere_SurfaceIsRejected(t *testing.T) {
	// (1, 0.5, 0.5) maps to (1, 0, 0): squared length exactly 1 must be rejected
	sampler := &sequenceSampler{values: []float64{1.0, 0.5, 0.5, 0.75, 0.5, 0.5}}

	p := RandomInUnitSphere(sampler)
	expected := NewVec3(0.5, 0, 0)
	if !p.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, p)
	}
}

func TestRandomUnitVector_IsUnit(t *testing.T) {
	sampler := NewSeededSampler(7)
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit vector, got length %f", v.Length())
		}
	}
}

func TestRandomInUnitDisk_FlatAndInside(t *testing.T) {
	sampler := NewSeededSampler(3)
	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 || p.LengthSquared() >= 1 {
			t.Fatalf("Invalid disk sample %v", p)
		}
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Samplers with the same seed diverged at draw %d", i)
		}
	}
}
