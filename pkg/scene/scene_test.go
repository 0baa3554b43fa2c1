package scene

import (
	"bytes"
	"context"
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/integrator"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

func TestNewCheckerScene(t *testing.T) {
	s := NewCheckerScene()

	if len(s.Shapes) != 2 {
		t.Fatalf("Expected 2 spheres, got %d", len(s.Shapes))
	}

	var shared core.Material
	for i, expectedY := range []float64{-10, 10} {
		sphere, ok := s.Shapes[i].(*geometry.Sphere)
		if !ok {
			t.Fatalf("Shape %d: expected *geometry.Sphere, got %T", i, s.Shapes[i])
		}
		if !sphere.Center.Equals(core.NewVec3(0, expectedY, 0)) || sphere.Radius != 10 {
			t.Errorf("Shape %d: unexpected sphere %v r=%f", i, sphere.Center, sphere.Radius)
		}
		if shared == nil {
			shared = sphere.Material
		} else if sphere.Material != shared {
			t.Error("Both spheres should share one material")
		}
	}

	lambertian, ok := shared.(*material.Lambertian)
	if !ok {
		t.Fatalf("Expected *material.Lambertian, got %T", shared)
	}
	if _, ok := lambertian.Albedo.(*material.Checker); !ok {
		t.Errorf("Expected checker albedo, got %T", lambertian.Albedo)
	}
}

func TestNewMetalScene_MovingSphereInBVH(t *testing.T) {
	s := NewMetalScene()

	var moving *geometry.MovingSphere
	for _, shape := range s.Shapes {
		if m, ok := shape.(*geometry.MovingSphere); ok {
			moving = m
		}
	}
	if moving == nil {
		t.Fatal("Metal scene should contain a moving sphere")
	}

	world := s.World()
	for _, time := range []float64{0, 0.5, 0.99} {
		center := moving.CenterAt(time)
		origin := center.Add(core.NewVec3(0, 0, 5))
		ray := core.NewRayAtTime(origin, core.NewVec3(0, 0, -1), time)

		hit, ok := world.Hit(ray, 0.001, 1e9)
		if !ok {
			t.Fatalf("t=%f: ray toward moving sphere missed", time)
		}
		expectedT := 5 - moving.Radius
		if hit.T < expectedT-1e-6 || hit.T > expectedT+1e-6 {
			t.Errorf("t=%f: expected hit at %f, got %f", time, expectedT, hit.T)
		}
	}
}

func TestScene_CameraOverrides(t *testing.T) {
	s := NewCheckerScene(renderer.CameraConfig{Width: 64})
	camera := s.Camera()
	if camera.Width() != 64 || camera.Height() != 36 {
		t.Errorf("Expected 64x36, got %dx%d", camera.Width(), camera.Height())
	}
	if s.CameraConfig.VFov != 20 {
		t.Errorf("Non-overridden fields should keep scene defaults, got vfov %f", s.CameraConfig.VFov)
	}
}

func TestScene_GetPrimitiveCount(t *testing.T) {
	s := NewSphereGridScene()
	if count := s.GetPrimitiveCount(); count != 101 {
		t.Errorf("Expected 101 primitives, got %d", count)
	}

	s.Add(geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1, nil),
		geometry.NewSphere(core.NewVec3(3, 0, 0), 1, nil),
	))
	if count := s.GetPrimitiveCount(); count != 103 {
		t.Errorf("Expected nested list to add 2 primitives, got %d", count)
	}
}

func TestOklchToRGB(t *testing.T) {
	white := oklchToRGB(1, 0, 0)
	if white.Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-3 {
		t.Errorf("Expected white, got %v", white)
	}

	for hue := 0.0; hue < 360; hue += 30 {
		c := oklchToRGB(0.65, 0.25, hue)
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("hue %f: color %v outside [0, 1]", hue, c)
		}
	}
}

func renderScene(t *testing.T, s *Scene, parallelism int) *renderer.PixelBuffer {
	t.Helper()

	sampling := renderer.SamplingConfig{SamplesPerPixel: 2, MaxDepth: 6, Gamma: s.SamplingConfig.Gamma}
	pathTracer := integrator.NewPathTracingIntegrator(s.Background, integrator.DefaultEpsilon)
	scheduler := renderer.NewScheduler(s.Camera(), s.World(), pathTracer, sampling, renderer.SchedulerConfig{
		NumTasks:    5,
		Parallelism: parallelism,
		Seed:        42,
	})

	buffer, _, err := scheduler.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buffer
}

func TestScenes_RenderDeterministically(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := ByName(name, renderer.CameraConfig{Width: 24})
			if err != nil {
				t.Fatalf("ByName failed: %v", err)
			}

			serial := renderScene(t, s, 1)
			parallel := renderScene(t, s, 4)
			if !bytes.Equal(serial.Image().Pix, parallel.Image().Pix) {
				t.Error("Parallel render differs from serial render with the same seed")
			}

			if lum := renderer.CalculateAverageLuminance(serial); lum <= 0.02 || lum >= 0.995 {
				t.Errorf("Average luminance %f suggests an empty or blown-out image", lum)
			}
		})
	}
}

func TestNewEarthScene(t *testing.T) {
	s := NewEarthScene(nil)
	if len(s.Shapes) != 1 {
		t.Fatalf("Expected a single globe, got %d shapes", len(s.Shapes))
	}

	globe := s.Shapes[0].(*geometry.Sphere)
	albedo := globe.Material.(*material.Lambertian).Albedo
	texture, ok := albedo.(*material.ImageTexture)
	if !ok {
		t.Fatalf("Expected image texture, got %T", albedo)
	}
	if !texture.Center.Equals(globe.Center) {
		t.Errorf("Texture should be centered on the globe, got %v", texture.Center)
	}

	// Poles are ice, the equator is never ice
	north := texture.Evaluate(core.NewVec3(0, EarthRadius, 0))
	if north.X < 0.9 {
		t.Errorf("Expected ice at the north pole, got %v", north)
	}
	equator := texture.Evaluate(core.NewVec3(EarthRadius, 0, 0))
	if equator.X > 0.5 {
		t.Errorf("Expected ocean or land at the equator, got %v", equator)
	}

	custom := material.NewImageTexture(1, 1, []core.Vec3{core.NewVec3(1, 0, 0)})
	s = NewEarthScene(custom)
	if got := s.Shapes[0].(*geometry.Sphere).Material.(*material.Lambertian).Albedo; got != custom {
		t.Errorf("Supplied texture should be used, got %T", got)
	}
}
