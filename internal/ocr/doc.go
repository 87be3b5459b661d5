// Package ocr classifies segmented glyphs using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) to guess which
// character a single extracted component represents. Components are rendered
// as dark glyphs on a white page, scaled to a height Tesseract reads reliably,
// padded, and recognized in single-character page segmentation mode.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//
// # Reuse
//
// A Classifier owns one Tesseract client and is not safe for concurrent use.
// Create one per goroutine and Close it when done; classifying many glyphs
// through one client avoids re-initializing the engine per glyph.
package ocr
