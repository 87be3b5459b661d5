package ocr

import (
	"image/color"
	"strings"
	"testing"

	"github.com/ironsheep/glyph-segment-mcp/internal/segment"
)

// blockGlyph returns a filled w x h rectangle component.
func blockGlyph(w, h int) segment.Component {
	var c segment.Component
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			c.Points = append(c.Points, segment.Point{X: x, Y: y})
		}
	}
	return c
}

// skipIfNoTesseract skips the test when the error indicates Tesseract is
// missing from the system.
func skipIfNoTesseract(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "tesseract") || strings.Contains(msg, "library") ||
		strings.Contains(msg, "language") {
		t.Skip("Tesseract not available")
	}
}

func TestPrepareGlyph(t *testing.T) {
	// 2 wide, 4 tall: scaled to height 48 becomes 24 wide.
	c := blockGlyph(2, 4)

	page, err := PrepareGlyph(c, GlyphOptions{})
	if err != nil {
		t.Fatalf("PrepareGlyph failed: %v", err)
	}

	b := page.Bounds()
	wantW := 24 + 2*DefaultPadding
	wantH := DefaultGlyphHeight + 2*DefaultPadding
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Fatalf("page size = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}

	isDark := func(c color.Color) bool {
		r, _, _, _ := c.RGBA()
		return r < 0x8000
	}

	// Corner is padding: white.
	if isDark(page.At(b.Min.X, b.Min.Y)) {
		t.Error("padding should be white")
	}
	// Center is glyph: black.
	if !isDark(page.At(b.Min.X+wantW/2, b.Min.Y+wantH/2)) {
		t.Error("glyph center should be black")
	}
}

func TestPrepareGlyphCustomOptions(t *testing.T) {
	c := blockGlyph(3, 3)

	page, err := PrepareGlyph(c, GlyphOptions{Height: 30, Padding: 5})
	if err != nil {
		t.Fatalf("PrepareGlyph failed: %v", err)
	}

	b := page.Bounds()
	if b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("page size = %dx%d, want 40x40", b.Dx(), b.Dy())
	}
}

func TestPrepareGlyphEmpty(t *testing.T) {
	_, err := PrepareGlyph(segment.Component{}, GlyphOptions{})
	if err == nil {
		t.Error("expected error for empty component")
	}
}

func TestGlyphOptionsDefaults(t *testing.T) {
	opts := GlyphOptions{}.withDefaults()
	if opts.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", opts.Language, DefaultLanguage)
	}
	if opts.Height != DefaultGlyphHeight {
		t.Errorf("Height = %d, want %d", opts.Height, DefaultGlyphHeight)
	}
	if opts.Padding != DefaultPadding {
		t.Errorf("Padding = %d, want %d", opts.Padding, DefaultPadding)
	}

	opts = GlyphOptions{Language: "deu", Height: 10, Padding: 2}.withDefaults()
	if opts.Language != "deu" || opts.Height != 10 || opts.Padding != 2 {
		t.Errorf("explicit options overwritten: %+v", opts)
	}
}

func TestClassifyComponentsEmpty(t *testing.T) {
	guesses, err := ClassifyComponents(nil, GlyphOptions{})
	if err != nil {
		t.Fatalf("ClassifyComponents failed: %v", err)
	}
	if len(guesses) != 0 {
		t.Errorf("got %d guesses, want 0", len(guesses))
	}
}

func TestClassifyComponents(t *testing.T) {
	// A vertical bar reads as "I", "l", "1" or "|" depending on the model;
	// only the plumbing is asserted here.
	set := segment.ComponentSet{blockGlyph(2, 12), blockGlyph(2, 12)}

	guesses, err := ClassifyComponents(set, GlyphOptions{})
	skipIfNoTesseract(t, err)
	if err != nil {
		t.Fatalf("ClassifyComponents failed: %v", err)
	}

	if len(guesses) != 2 {
		t.Fatalf("got %d guesses, want 2", len(guesses))
	}
	for i, g := range guesses {
		if g.Index != i {
			t.Errorf("guess %d has Index %d", i, g.Index)
		}
		if g.Confidence < 0 || g.Confidence > 1 {
			t.Errorf("guess %d confidence %f out of range", i, g.Confidence)
		}
	}
}

func TestClassifyGlyph(t *testing.T) {
	page, err := PrepareGlyph(blockGlyph(2, 12), GlyphOptions{})
	if err != nil {
		t.Fatalf("PrepareGlyph failed: %v", err)
	}

	guess, err := ClassifyGlyph(page, GlyphOptions{Whitelist: "Il1|"})
	skipIfNoTesseract(t, err)
	if err != nil {
		t.Fatalf("ClassifyGlyph failed: %v", err)
	}
	if guess == nil {
		t.Fatal("expected a guess")
	}
	if guess.Text != "" && !strings.ContainsAny(guess.Text, "Il1|") {
		t.Errorf("Text = %q, want a whitelisted character", guess.Text)
	}
}
