package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// Format is an output image encoding
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported image format")

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// PixelBuffer holds final display-ready pixels. Distinct rows may be written
// concurrently; a single pixel must only be written by one goroutine.
type PixelBuffer struct {
	img *image.RGBA
}

// NewPixelBuffer creates a black, opaque buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return &PixelBuffer{img: img}
}

// Width returns the buffer width in pixels
func (pb *PixelBuffer) Width() int { return pb.img.Rect.Dx() }

// Height returns the buffer height in pixels
func (pb *PixelBuffer) Height() int { return pb.img.Rect.Dy() }

// SetPixel stores a display color with channels in [0, 1]; y counts top-down.
// Out-of-range channels are clamped.
func (pb *PixelBuffer) SetPixel(x, y int, c core.Vec3) {
	pb.img.SetRGBA(x, y, vec3ToRGBA(c))
}

// Image returns the underlying image. It must not be modified while a render
// is writing to the buffer.
func (pb *PixelBuffer) Image() *image.RGBA {
	return pb.img
}

// Encode writes the buffer to w in the given format
func (pb *PixelBuffer) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, pb.img)
	case FormatBMP:
		return bmp.Encode(w, pb.img)
	case FormatTIFF:
		return tiff.Encode(w, pb.img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteToFile encodes the buffer into path, choosing the format from the
// extension and creating the parent directory if needed
func (pb *PixelBuffer) WriteToFile(path string) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	if err := pb.Encode(file, format); err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}

// Thumbnail returns a copy scaled so its longer side is at most maxSize
// pixels, preserving aspect ratio. Images already small enough are copied as is.
func (pb *PixelBuffer) Thumbnail(maxSize int) *image.RGBA {
	w, h := pb.Width(), pb.Height()
	scale := math.Min(1, float64(maxSize)/float64(max(w, h)))
	tw := max(1, int(math.Round(float64(w)*scale)))
	th := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), pb.img, pb.img.Bounds(), xdraw.Src, nil)
	return dst
}

// ToneMap converts an accumulated radiance sum into a display color:
// (sum / samples)^(1/gamma), clamped to [0, 1] per channel
func ToneMap(sum core.Vec3, samples int, gamma float64) core.Vec3 {
	if samples <= 0 {
		return core.Vec3{}
	}
	average := sum.Multiply(1.0 / float64(samples))
	return average.GammaCorrect(gamma).Clamp(0.0, 1.0)
}

// vec3ToRGBA converts a [0,1] color to 8-bit RGBA, rounding to nearest
func vec3ToRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255*c.X + 0.5),
		G: uint8(255*c.Y + 0.5),
		B: uint8(255*c.Z + 0.5),
		A: 255,
	}
}
