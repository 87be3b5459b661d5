package segment

// Pixel is an 8-bit RGB sample.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	// Black is the background value written by every erasing stage.
	Black = Pixel{}

	// White is the value used when painting components back into an image.
	White = Pixel{R: 0xFF, G: 0xFF, B: 0xFF}
)

// Image is a mutable W×H grid of RGB pixels stored row-major, three bytes per
// pixel.
type Image struct {
	Width  int
	Height int

	// Pix holds R, G, B for pixel (x, y) at offset (y*Width+x)*3.
	Pix []uint8
}

// NewImage allocates an all-black image. Negative dimensions are treated as 0.
func NewImage(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Empty reports whether the image has no addressable pixels.
func (m *Image) Empty() bool {
	return m.Width <= 0 || m.Height <= 0
}

// InBounds reports whether (x, y) addresses a pixel of the image.
func (m *Image) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

func (m *Image) offset(x, y int) int {
	return (y*m.Width + x) * 3
}

// At returns the pixel at (x, y), or Black when (x, y) is out of bounds.
func (m *Image) At(x, y int) Pixel {
	if !m.InBounds(x, y) {
		return Black
	}
	i := m.offset(x, y)
	return Pixel{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2]}
}

// Set writes p at (x, y). Writes outside the image are ignored.
func (m *Image) Set(x, y int, p Pixel) {
	if !m.InBounds(x, y) {
		return
	}
	i := m.offset(x, y)
	m.Pix[i] = p.R
	m.Pix[i+1] = p.G
	m.Pix[i+2] = p.B
}

// IsForeground reports whether the pixel at (x, y) has every channel at or
// above threshold. Out-of-bounds coordinates are background.
func (m *Image) IsForeground(x, y int, threshold uint8) bool {
	if !m.InBounds(x, y) {
		return false
	}
	i := m.offset(x, y)
	return m.Pix[i] >= threshold && m.Pix[i+1] >= threshold && m.Pix[i+2] >= threshold
}

// neighborOffsets lists the 8-neighborhood in the order every stage visits it.
var neighborOffsets = [8]Point{
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
}

// FriendCount returns how many of the 8 neighbors of (x, y) are foreground.
func (m *Image) FriendCount(x, y int, threshold uint8) int {
	count := 0
	for _, d := range neighborOffsets {
		if m.IsForeground(x+d.X, y+d.Y, threshold) {
			count++
		}
	}
	return count
}

// ForegroundCount returns the number of foreground pixels in the image.
func (m *Image) ForegroundCount(threshold uint8) int {
	count := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.IsForeground(x, y, threshold) {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{Width: m.Width, Height: m.Height, Pix: pix}
}

// Paint writes p at every point of c shifted by origin. Points that land
// outside the image are skipped.
func (m *Image) Paint(c Component, origin Point, p Pixel) {
	for _, pt := range c.Points {
		m.Set(pt.X+origin.X, pt.Y+origin.Y, p)
	}
}
