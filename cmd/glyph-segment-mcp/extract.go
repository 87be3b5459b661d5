package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/ironsheep/glyph-segment-mcp/internal/imaging"
	"github.com/ironsheep/glyph-segment-mcp/internal/segment"
)

// runExtract segments one image, prints the normalized points of the selected
// component as "x, y" lines, paints that component white at the origin of the
// consumed image and saves the result.
func runExtract(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	in := fs.String("in", "", "Input image path (PNG, JPEG, GIF, BMP or TIFF)")
	out := fs.String("out", "glyph.png", "Output image path; the format follows the extension")
	index := fs.Int("index", 0, "Index of the component to print and paint")
	threshold := fs.Uint("threshold", uint(segment.DefaultForegroundThreshold), "Per-channel foreground threshold (1-255)")
	friends := fs.Int("friends", segment.DefaultDenoiseMinFriends, "Minimum foreground neighbors to survive denoising (0 disables)")
	minSize := fs.Int("min-size", segment.DefaultMinComponentSize, "Discard components with this many pixels or fewer")
	snapshot := fs.Bool("snapshot", false, "Count denoise neighbors against the image before the pass")
	invert := fs.Bool("invert", false, "Invert colors before thresholding")
	keepBorder := fs.Bool("keep-border", false, "Do not clear the outermost rows and columns")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" {
		return errors.New("please specify an input image with -in")
	}
	if *threshold < 1 || *threshold > 255 {
		return fmt.Errorf("%w: threshold %d outside 1-255", segment.ErrInvalidConfig, *threshold)
	}

	cfg := segment.DefaultConfig()
	cfg.ForegroundThreshold = uint8(*threshold)
	cfg.DenoiseMinFriends = *friends
	cfg.MinComponentSize = *minSize
	cfg.ClearBorder = !*keepBorder
	if *snapshot {
		cfg.DenoiseMode = segment.DenoiseSnapshot
	}

	cache := imaging.NewImageCache()
	raster, err := imaging.LoadRaster(cache, *in, imaging.RasterOptions{Invert: *invert, Threshold: cfg.ForegroundThreshold})
	if err != nil {
		return err
	}

	result, err := segment.Segment(raster, cfg)
	if err != nil {
		return err
	}

	c, err := result.Components.At(*index)
	if err != nil {
		return err
	}

	for _, p := range c.Points {
		fmt.Fprintf(stdout, "%d, %d\n", p.X, p.Y)
	}

	raster.Paint(c, segment.Point{}, segment.White)
	return imaging.SaveRaster(raster, *out)
}
