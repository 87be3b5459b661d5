package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	segimg "github.com/ironsheep/glyph-segment-mcp/internal/imaging"
	"github.com/ironsheep/glyph-segment-mcp/internal/segment"
)

// Default glyph preparation parameters.
const (
	DefaultLanguage    = "eng"
	DefaultGlyphHeight = 48
	DefaultPadding     = 16
)

// GlyphOptions controls glyph preparation and recognition.
type GlyphOptions struct {
	// Language is the Tesseract language code. Empty selects "eng".
	Language string

	// Whitelist restricts recognition to these characters when non-empty.
	Whitelist string

	// Height is the glyph height in pixels after scaling. 0 selects
	// DefaultGlyphHeight.
	Height int

	// Padding is the white margin added around the scaled glyph. 0 selects
	// DefaultPadding.
	Padding int
}

func (o GlyphOptions) withDefaults() GlyphOptions {
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.Height <= 0 {
		o.Height = DefaultGlyphHeight
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	return o
}

// GlyphGuess is Tesseract's reading of one component.
type GlyphGuess struct {
	// Index is the component's position in the set it came from.
	Index int `json:"index"`

	// Text is the recognized character(s), trimmed of whitespace. Empty when
	// Tesseract found nothing it could read.
	Text string `json:"text"`

	// Confidence is the symbol-level confidence (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// PrepareGlyph renders c as a black glyph on a white page, scaled with
// nearest-neighbor sampling to opts.Height and padded on every side.
func PrepareGlyph(c segment.Component, opts GlyphOptions) (image.Image, error) {
	if c.Size() == 0 {
		return nil, segimg.ErrEmptyComponent
	}
	opts = opts.withDefaults()

	glyph := imaging.Invert(segimg.ComponentMask(c))
	glyph = imaging.Resize(glyph, 0, opts.Height, imaging.NearestNeighbor)

	b := glyph.Bounds()
	page := imaging.New(b.Dx()+2*opts.Padding, b.Dy()+2*opts.Padding, color.White)
	return imaging.PasteCenter(page, glyph), nil
}

// Classifier recognizes glyphs with a single reusable Tesseract client.
type Classifier struct {
	client *gosseract.Client
	opts   GlyphOptions
}

// NewClassifier creates a classifier configured for single-character
// recognition.
func NewClassifier(opts GlyphOptions) (*Classifier, error) {
	opts = opts.withDefaults()

	client := gosseract.NewClient()
	if err := client.SetLanguage(opts.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if opts.Whitelist != "" {
		if err := client.SetWhitelist(opts.Whitelist); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set whitelist: %w", err)
		}
	}

	return &Classifier{client: client, opts: opts}, nil
}

// Close releases the Tesseract client.
func (c *Classifier) Close() error {
	return c.client.Close()
}

// Classify reads one component. The returned guess has Index 0; callers that
// classify a set should set it.
func (c *Classifier) Classify(comp segment.Component) (*GlyphGuess, error) {
	page, err := PrepareGlyph(comp, c.opts)
	if err != nil {
		return nil, err
	}
	return c.ClassifyImage(page)
}

// ClassifyImage reads an already prepared glyph page: a dark glyph on a light
// background.
func (c *Classifier) ClassifyImage(page image.Image) (*GlyphGuess, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to encode glyph: %w", err)
	}
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	guess := &GlyphGuess{Text: strings.TrimSpace(text)}

	// Confidence comes from the symbol iterator; if it fails the text is
	// still returned with zero confidence.
	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err == nil && len(boxes) > 0 {
		guess.Confidence = boxes[0].Confidence / 100.0
	}

	return guess, nil
}

// ClassifyGlyph reads a single glyph image with a one-off classifier. Use a
// Classifier directly when reading many glyphs.
func ClassifyGlyph(page image.Image, opts GlyphOptions) (*GlyphGuess, error) {
	classifier, err := NewClassifier(opts)
	if err != nil {
		return nil, err
	}
	defer classifier.Close()

	return classifier.ClassifyImage(page)
}

// ClassifyComponents classifies every component of set in order.
func ClassifyComponents(set segment.ComponentSet, opts GlyphOptions) ([]GlyphGuess, error) {
	if len(set) == 0 {
		return []GlyphGuess{}, nil
	}

	classifier, err := NewClassifier(opts)
	if err != nil {
		return nil, err
	}
	defer classifier.Close()

	guesses := make([]GlyphGuess, 0, len(set))
	for i, comp := range set {
		guess, err := classifier.Classify(comp)
		if err != nil {
			return nil, fmt.Errorf("failed to classify component %d: %w", i, err)
		}
		guess.Index = i
		guesses = append(guesses, *guess)
	}
	return guesses, nil
}
