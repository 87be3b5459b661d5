// Package segment isolates glyph-shaped regions in a thresholded RGB raster.
//
// The package implements a small, deterministic pipeline:
//
//  1. Border clearing: the outermost ring of pixels is forced to background so
//     scan artifacts touching the frame cannot seed components.
//  2. Denoising: a single morphological pass erases foreground pixels that have
//     too few foreground 8-neighbors.
//  3. Extraction: a flood fill over the foreground mask groups pixels into
//     8-connected components, consuming the buffer as it goes.
//  4. Size filtering: components with too few pixels are discarded as noise.
//  5. Normalization: each surviving component is translated so its bounding
//     box starts at (0, 0).
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner, X increasing
// rightward and Y increasing downward. Every read outside 0 <= x < W,
// 0 <= y < H is treated as background; no operation panics on out-of-range
// coordinates.
//
// # Ownership
//
// Image buffers are mutated in place by ClearBorder, Denoise and Extract.
// Extract consumes its input: after it returns, the image contains no
// foreground pixels. Callers that need the original buffer afterwards should
// pass Image.Clone to the pipeline.
//
// # Thread Safety
//
// None of the types in this package are safe for concurrent mutation. A single
// Image must be owned by one pipeline run at a time.
package segment
