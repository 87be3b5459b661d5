package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// PixelSample describes one pixel and how the segmenter classifies it.
type PixelSample struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`

	// Threshold is the per-channel minimum used for classification.
	Threshold uint8 `json:"threshold"`

	// Foreground is true when every channel is at or above Threshold.
	Foreground bool `json:"foreground"`
}

// SamplePixel reads the pixel at (x, y) and classifies it against opts.
//
// Coordinates are relative to the image's Bounds().Min, matching ToRaster.
// Unlike the segmentation core, which treats out-of-range reads as background,
// SamplePixel rejects coordinates outside the image so that a caller's typo is
// reported instead of silently answering "background".
//
// The pixel is sampled after opts.Invert has been applied, so the reported
// color is the one the classifier sees.
func SamplePixel(img image.Image, x, y int, opts RasterOptions) (*PixelSample, error) {
	bounds := img.Bounds()
	if x < 0 || y < 0 || x >= bounds.Dx() || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, bounds.Dx(), bounds.Dy())
	}

	px := image.Pt(x+bounds.Min.X, y+bounds.Min.Y)
	raster := ToRaster(imaging.Crop(img, image.Rectangle{Min: px, Max: px.Add(image.Pt(1, 1))}), opts)
	p := raster.At(0, 0)
	threshold := opts.threshold()

	c := colorful.Color{R: float64(p.R) / 255.0, G: float64(p.G) / 255.0, B: float64(p.B) / 255.0}
	h, s, l := c.Hsl()

	return &PixelSample{
		X:          x,
		Y:          y,
		Hex:        fmt.Sprintf("#%02X%02X%02X", p.R, p.G, p.B),
		RGB:        RGBColor{R: p.R, G: p.G, B: p.B},
		HSL:        HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Threshold:  threshold,
		Foreground: raster.IsForeground(0, 0, threshold),
	}, nil
}
