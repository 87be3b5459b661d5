package imaging

import (
	"fmt"
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/glyph-segment-mcp/internal/segment"
)

// OverlayResult contains an image with component bounding boxes drawn on it.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Boxes       int    `json:"boxes"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Overlay draws each box one pixel outside its bounds, in evenly spaced hues,
// over a copy of raster. When showLabels is set, the component index is
// printed above the top-left corner of its box.
func Overlay(raster *segment.Image, boxes []segment.Bounds, showLabels bool) (*OverlayResult, error) {
	out := FromRaster(raster)
	palette := boxPalette(len(boxes))

	for i, b := range boxes {
		drawBox(out, b, palette[i])
	}

	if showLabels {
		bg := color.RGBA{0, 0, 0, 255}
		for i, b := range boxes {
			x := b.MinX - 1
			y := b.MinY - labelHeight - 1
			if y < 0 {
				y = b.MaxY + 2
			}
			drawLabel(out, x, y, fmt.Sprintf("%d", i), palette[i], bg)
		}
	}

	encoded, err := encodePNG(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode overlay image: %w", err)
	}

	return &OverlayResult{
		Width:       raster.Width,
		Height:      raster.Height,
		Boxes:       len(boxes),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// boxPalette returns n saturated colors spread evenly around the hue wheel.
func boxPalette(n int) []color.RGBA {
	palette := make([]color.RGBA, n)
	for i := range palette {
		r, g, b := colorful.Hsv(float64(i)*360.0/float64(n), 0.85, 1.0).Clamped().RGB255()
		palette[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return palette
}

func drawBox(img *image.RGBA, b segment.Bounds, c color.RGBA) {
	x1, y1, x2, y2 := b.MinX-1, b.MinY-1, b.MaxX+1, b.MaxY+1
	for x := x1; x <= x2; x++ {
		setClipped(img, x, y1, c)
		setClipped(img, x, y2, c)
	}
	for y := y1; y <= y2; y++ {
		setClipped(img, x1, y, c)
		setClipped(img, x2, y, c)
	}
}

func setClipped(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

const (
	labelCharWidth = 4
	labelHeight    = 5
)

// digitGlyphs is a 3x5 pixel font for component indexes.
var digitGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

// drawLabel draws text at (x, y) on a filled background, clipping at the
// image edges.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	for dy := -1; dy <= labelHeight; dy++ {
		for dx := -1; dx < len(text)*labelCharWidth; dx++ {
			setClipped(img, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := digitGlyphs[ch]
		if !ok {
			cx += labelCharWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					setClipped(img, cx+col, y+row, fg)
				}
			}
		}
		cx += labelCharWidth
	}
}
