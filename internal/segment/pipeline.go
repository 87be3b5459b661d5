package segment

import "fmt"

// Stats records what each stage of a pipeline run did.
type Stats struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// InitialForeground is the foreground pixel count before any stage ran.
	InitialForeground int `json:"initial_foreground"`

	// BorderErased counts foreground pixels removed by border clearing.
	BorderErased int `json:"border_erased"`

	// NoiseErased counts foreground pixels removed by the denoiser.
	NoiseErased int `json:"noise_erased"`

	// ExtractedPixels is the foreground left for extraction; it always equals
	// the summed size of all extracted components.
	ExtractedPixels int `json:"extracted_pixels"`

	Extracted int `json:"extracted"`
	Retained  int `json:"retained"`
	Discarded int `json:"discarded"`
}

// Result is the output of a pipeline run.
type Result struct {
	// Components holds the retained components, normalized, in discovery
	// order.
	Components ComponentSet `json:"components"`

	// Origins holds the source bounding box of each retained component before
	// normalization, index-aligned with Components.
	Origins []Bounds `json:"origins"`

	Stats Stats `json:"stats"`
}

// Pipeline runs border clearing, denoising, extraction, size filtering and
// normalization with a fixed Config.
type Pipeline struct {
	cfg Config
}

// New validates cfg and returns a pipeline that uses it.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg}, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Run processes img in place and returns the retained, normalized components.
// img is consumed by extraction; pass img.Clone() to keep the original.
func (p *Pipeline) Run(img *Image) (*Result, error) {
	cfg := p.cfg
	stats := Stats{
		Width:             img.Width,
		Height:            img.Height,
		InitialForeground: img.ForegroundCount(cfg.ForegroundThreshold),
	}

	if cfg.ClearBorder {
		stats.BorderErased = ClearBorder(img, cfg.ForegroundThreshold)
	}
	stats.NoiseErased = Denoise(img, cfg.DenoiseMinFriends, cfg.ForegroundThreshold, cfg.DenoiseMode)

	raw, err := Extract(img, cfg.ForegroundThreshold, cfg.MaxWorklist)
	if err != nil {
		return nil, fmt.Errorf("failed to extract components: %w", err)
	}
	stats.Extracted = len(raw)
	stats.ExtractedPixels = raw.TotalSize()

	kept := FilterBySize(raw, cfg.MinComponentSize)
	origins := make([]Bounds, len(kept))
	for i, c := range kept {
		origins[i] = c.Bounds()
	}

	stats.Retained = len(kept)
	stats.Discarded = stats.Extracted - stats.Retained

	return &Result{
		Components: NormalizeAll(kept),
		Origins:    origins,
		Stats:      stats,
	}, nil
}

// Segment runs a pipeline built from cfg over img.
func Segment(img *Image, cfg Config) (*Result, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return p.Run(img)
}
