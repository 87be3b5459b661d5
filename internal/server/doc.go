// Package server implements the MCP (Model Context Protocol) server for glyph
// segmentation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the segmentation
// pipeline through the MCP protocol, so that an MCP client can split a
// thresholded image into individual glyphs, inspect them and read them back.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - glyph_image_info: Dimensions, format and foreground pixel count
//   - glyph_sample_pixel: Color at a pixel and its foreground classification
//
// Segmentation:
//   - glyph_segment: Per-stage statistics and a summary of every component
//   - glyph_component: One normalized component as points and a PNG mask
//   - glyph_overlay: Source image with numbered component bounding boxes
//
// OCR:
//   - glyph_classify: Tesseract reading of a single component
//
// The segmentation tools accept an optional "options" object whose fields map
// onto segment.Config. Omitted fields take the pipeline defaults.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server. Every
// tool call converts the cached image into a fresh raster, so the destructive
// extraction stage never alters what later calls see.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithVersion(Version))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
