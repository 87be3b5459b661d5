package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/glyph-segment-mcp/internal/segment"
)

// RasterOptions controls how a decoded image becomes a segmentation raster.
type RasterOptions struct {
	// Invert flips every channel before conversion, for dark glyphs on a
	// light background.
	Invert bool

	// Threshold is the per-channel foreground threshold reported alongside
	// the raster. 0 selects segment.DefaultForegroundThreshold.
	Threshold uint8
}

func (o RasterOptions) threshold() uint8 {
	if o.Threshold == 0 {
		return segment.DefaultForegroundThreshold
	}
	return o.Threshold
}

// ToRaster copies img into a new segment.Image. The raster origin is the
// image's Bounds().Min. Alpha is dropped after premultiplication, so fully
// transparent pixels become background.
func ToRaster(img image.Image, opts RasterOptions) *segment.Image {
	if opts.Invert {
		img = effect.Invert(img)
	}

	bounds := img.Bounds()
	raster := segment.NewImage(bounds.Dx(), bounds.Dy())

	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// Convert from 16-bit to 8-bit
			raster.Set(x, y, segment.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
		}
	}
	return raster
}

// FromRaster converts a raster back into an opaque *image.RGBA.
func FromRaster(raster *segment.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, raster.Width, raster.Height))
	for y := 0; y < raster.Height; y++ {
		for x := 0; x < raster.Width; x++ {
			p := raster.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return out
}
