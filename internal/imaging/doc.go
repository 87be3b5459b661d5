// Package imaging connects decoded images to the segmentation core.
//
// It loads and caches image files, converts them into segment.Image rasters,
// samples and classifies individual pixels, and renders segmentation output
// (single glyph masks and annotated overlays) back into PNG images.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the top-left
// corner, X increasing rightward and Y increasing downward. Images whose
// bounds do not start at the origin (for example sub-images) are shifted so
// that their Min corner becomes (0,0) in the raster.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached images are never
// mutated: ToRaster always copies pixels into a fresh raster, so the
// destructive segmentation stages cannot corrupt the cache.
//
// # Supported Formats
//
// PNG, JPEG and GIF are decoded by the standard library; BMP and TIFF decoders
// are registered from golang.org/x/image. SaveRaster picks the output format
// from the file extension.
package imaging
