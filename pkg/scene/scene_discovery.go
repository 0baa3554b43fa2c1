package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by ByName for unregistered scene names
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name used to select the scene
	DisplayName string `json:"displayName"` // Human-readable name
	Description string `json:"description"`
}

// Constructor builds a scene, optionally overriding parts of its camera
type Constructor func(cameraOverrides ...renderer.CameraConfig) *Scene

type registration struct {
	description string
	build       Constructor
}

var builtInScenes = map[string]registration{
	"checker": {
		description: "Two large spheres sharing a checkered diffuse material",
		build:       NewCheckerScene,
	},
	"earth": {
		description: "Textured globe (generated map unless a texture is supplied)",
		build: func(cameraOverrides ...renderer.CameraConfig) *Scene {
			return NewEarthScene(nil, cameraOverrides...)
		},
	},
	"metal": {
		description: "Mirror, brushed metal and glass spheres with a moving diffuse sphere",
		build:       NewMetalScene,
	},
	"sphere-grid": {
		description: "10x10 grid of rainbow-colored metallic spheres",
		build:       NewSphereGridScene,
	},
}

// DefaultSceneName is the scene rendered when none is configured
const DefaultSceneName = "checker"

// ByName builds the registered scene with the given ID
func ByName(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	reg, ok := builtInScenes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return reg.build(cameraOverrides...), nil
}

// Names returns the registered scene IDs in sorted order
func Names() []string {
	names := make([]string, 0, len(builtInScenes))
	for name := range builtInScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns information about every registered scene, sorted by ID
func ListScenes() []SceneInfo {
	names := Names()
	scenes := make([]SceneInfo, 0, len(names))
	for _, name := range names {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtInScenes[name].description,
		})
	}
	return scenes
}

// titleCase converts an ID-style string to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
