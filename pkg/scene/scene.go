package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/integrator"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Shapes         []core.Shape // Objects in the scene
	Background     integrator.Background
	SamplingConfig renderer.SamplingConfig
	CameraConfig   renderer.CameraConfig
	BVH            *geometry.BVH // Acceleration structure for ray-object intersection
}

// newScene creates an empty scene with the default sky
func newScene(name string, cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		Shapes:         make([]core.Shape, 0),
		Background:     integrator.DefaultBackground(),
		SamplingConfig: samplingConfig,
		CameraConfig:   cameraConfig,
	}
}

// applyCameraOverrides merges the first override, if any, into defaults
func applyCameraOverrides(defaults renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}

// Add appends shapes to the scene. Call Preprocess again afterwards.
func (s *Scene) Add(shapes ...core.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// Preprocess builds the BVH over the camera's shutter interval
func (s *Scene) Preprocess() {
	s.BVH = geometry.NewBVH(s.Shapes, s.CameraConfig.Time0, s.CameraConfig.Time1)
	core.Log().Debug("scene preprocessed", "scene", s.Name, "shapes", len(s.Shapes), "bvhDepth", s.BVH.Depth())
}

// World returns the scene aggregate, building the BVH on first use
func (s *Scene) World() core.Shape {
	if s.BVH == nil {
		s.Preprocess()
	}
	return s.BVH
}

// Camera creates the scene's camera
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, looking inside aggregates
func countPrimitivesInShape(shape core.Shape) int {
	switch obj := shape.(type) {
	case *geometry.HittableList:
		count := 0
		for _, inner := range obj.Shapes {
			count += countPrimitivesInShape(inner)
		}
		return count
	default:
		return 1
	}
}
