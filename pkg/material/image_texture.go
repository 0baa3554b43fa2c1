package material

import (
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// ImageTexture wraps an equirectangular image around Center: longitude runs
// along the image width and latitude along its height, north (+Y) at the top.
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
	Center core.Vec3   // Center of the sphere the image is wrapped around
}

// NewImageTexture creates a new image texture centered on the origin
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate returns the texel in the direction of point as seen from Center
func (t *ImageTexture) Evaluate(point core.Vec3) core.Vec3 {
	return t.EvaluateUV(SphereUV(point.Subtract(t.Center)))
}

// EvaluateUV samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) EvaluateUV(uv core.Vec2) core.Vec3 {
	// Wrap UV coordinates to [0, 1)
	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	// V=0 is bottom, V=1 is top; image rows run top-down
	x := min(max(int(u*float64(t.Width)), 0), t.Width-1)
	y := min(max(int((1.0-v)*float64(t.Height)), 0), t.Height-1)

	return t.Pixels[y*t.Width+x]
}

// SphereUV maps a direction to longitude/latitude texture coordinates.
// u is 0.5 along +X and grows towards -Z; v is 0 at -Y and 1 at +Y.
func SphereUV(direction core.Vec3) core.Vec2 {
	p := direction.Normalize()
	theta := math.Acos(max(-1, min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
