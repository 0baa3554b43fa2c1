package renderer

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// CaptionSize is the caption font size in pixels
const CaptionSize = 12.0

const captionPadding = 3

var (
	captionFontOnce sync.Once
	captionFont     *opentype.Font
	captionFontErr  error
)

// Annotate draws lines of white text over a translucent band along the
// bottom edge of img. Lines that do not fit are cut off at the right edge.
func Annotate(img draw.Image, lines ...string) error {
	if len(lines) == 0 {
		return nil
	}

	captionFontOnce.Do(func() {
		captionFont, captionFontErr = opentype.Parse(goregular.TTF)
	})
	if captionFontErr != nil {
		return fmt.Errorf("parsing caption font: %w", captionFontErr)
	}

	face, err := opentype.NewFace(captionFont, &opentype.FaceOptions{
		Size:    CaptionSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("creating caption face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	bounds := img.Bounds()

	bandHeight := lineHeight*len(lines) + 2*captionPadding
	band := image.Rect(bounds.Min.X, bounds.Max.Y-bandHeight, bounds.Max.X, bounds.Max.Y).Intersect(bounds)
	draw.Draw(img, band, image.NewUniform(color.RGBA{A: 160}), image.Point{}, draw.Over)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}
	for i, line := range lines {
		baseline := band.Min.Y + captionPadding + i*lineHeight + metrics.Ascent.Ceil()
		drawer.Dot = fixed.P(bounds.Min.X+captionPadding, baseline)
		drawer.DrawString(line)
	}

	return nil
}
