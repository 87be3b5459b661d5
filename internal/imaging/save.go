package imaging

import (
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/glyph-segment-mcp/internal/segment"
)

// SaveRaster writes raster to path. The format follows the file extension
// (.png, .jpg, .gif, .bmp, .tif).
func SaveRaster(raster *segment.Image, path string) error {
	if err := imaging.Save(FromRaster(raster), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
