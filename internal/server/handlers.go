package server

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ironsheep/glyph-segment-mcp/internal/imaging"
	"github.com/ironsheep/glyph-segment-mcp/internal/ocr"
	"github.com/ironsheep/glyph-segment-mcp/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "glyph_segment").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if s.debug {
		log.Printf("tool %s finished in %v (err=%v)", params.Name, time.Since(start), err)
	}
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "glyph_image_info":
		return s.handleGlyphImageInfo(args)
	case "glyph_sample_pixel":
		return s.handleGlyphSamplePixel(args)

	// Segmentation
	case "glyph_segment":
		return s.handleGlyphSegment(args)
	case "glyph_component":
		return s.handleGlyphComponent(args)
	case "glyph_overlay":
		return s.handleGlyphOverlay(args)

	// OCR
	case "glyph_classify":
		return s.handleGlyphClassify(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Segmentation Options ===

// segmentOptions is the wire form of segment.Config plus raster conversion
// options. Pointer fields distinguish "omitted" from an explicit zero.
type segmentOptions struct {
	ForegroundThreshold int    `json:"foreground_threshold"`
	DenoiseMinFriends   *int   `json:"denoise_min_friends"`
	MinComponentSize    *int   `json:"min_component_size"`
	DenoiseMode         string `json:"denoise_mode"`
	ClearBorder         *bool  `json:"clear_border"`
	Invert              bool   `json:"invert"`
	MaxWorklist         int    `json:"max_worklist"`
}

// checkThreshold converts a wire threshold to a uint8. 0 selects the default.
func checkThreshold(v int) (uint8, error) {
	if v == 0 {
		return segment.DefaultForegroundThreshold, nil
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("%w: foreground_threshold %d outside 1-255", segment.ErrInvalidConfig, v)
	}
	return uint8(v), nil
}

// resolve applies defaults for omitted fields and validates the result. A nil
// receiver yields the defaults.
func (o *segmentOptions) resolve() (segment.Config, imaging.RasterOptions, error) {
	cfg := segment.DefaultConfig()
	if o == nil {
		return cfg, imaging.RasterOptions{Threshold: cfg.ForegroundThreshold}, nil
	}

	threshold, err := checkThreshold(o.ForegroundThreshold)
	if err != nil {
		return cfg, imaging.RasterOptions{}, err
	}
	cfg.ForegroundThreshold = threshold

	if o.DenoiseMinFriends != nil {
		cfg.DenoiseMinFriends = *o.DenoiseMinFriends
	}
	if o.MinComponentSize != nil {
		cfg.MinComponentSize = *o.MinComponentSize
	}
	if o.ClearBorder != nil {
		cfg.ClearBorder = *o.ClearBorder
	}
	cfg.MaxWorklist = o.MaxWorklist

	mode, err := segment.ParseDenoiseMode(o.DenoiseMode)
	if err != nil {
		return cfg, imaging.RasterOptions{}, err
	}
	cfg.DenoiseMode = mode

	if err := cfg.Validate(); err != nil {
		return cfg, imaging.RasterOptions{}, err
	}
	return cfg, imaging.RasterOptions{Invert: o.Invert, Threshold: threshold}, nil
}

// segmentPath loads path, runs the pipeline over a copy of its raster and
// returns both the untouched raster and the pipeline result.
func (s *Server) segmentPath(path string, opts *segmentOptions) (*segment.Image, *segment.Result, error) {
	cfg, rasterOpts, err := opts.resolve()
	if err != nil {
		return nil, nil, err
	}

	raster, err := imaging.LoadRaster(s.cache, path, rasterOpts)
	if err != nil {
		return nil, nil, err
	}

	result, err := segment.Segment(raster.Clone(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to segment %s: %w", path, err)
	}
	return raster, result, nil
}

// === Image Information Handlers ===

type glyphImageInfoArgs struct {
	Path                string `json:"path"`
	ForegroundThreshold int    `json:"foreground_threshold"`
	Invert              bool   `json:"invert"`
}

func (s *Server) handleGlyphImageInfo(args json.RawMessage) (interface{}, error) {
	var a glyphImageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	threshold, err := checkThreshold(a.ForegroundThreshold)
	if err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path, imaging.RasterOptions{Invert: a.Invert, Threshold: threshold})
}

type glyphSamplePixelArgs struct {
	Path                string `json:"path"`
	X                   int    `json:"x"`
	Y                   int    `json:"y"`
	ForegroundThreshold int    `json:"foreground_threshold"`
	Invert              bool   `json:"invert"`
}

func (s *Server) handleGlyphSamplePixel(args json.RawMessage) (interface{}, error) {
	var a glyphSamplePixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	threshold, err := checkThreshold(a.ForegroundThreshold)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SamplePixel(img, a.X, a.Y, imaging.RasterOptions{Invert: a.Invert, Threshold: threshold})
}

// === Segmentation Handlers ===

// ComponentSummary describes one retained component.
type ComponentSummary struct {
	Index int `json:"index"`
	Size  int `json:"size"`

	// Bounds is the component's bounding box in source image coordinates.
	Bounds segment.Bounds `json:"bounds"`

	Width  int `json:"width"`
	Height int `json:"height"`
}

// SegmentResult is the output of glyph_segment.
type SegmentResult struct {
	Stats      segment.Stats      `json:"stats"`
	Config     segment.Config     `json:"config"`
	Mode       string             `json:"denoise_mode"`
	Components []ComponentSummary `json:"components"`
}

type glyphSegmentArgs struct {
	Path    string          `json:"path"`
	Options *segmentOptions `json:"options"`
}

func (s *Server) handleGlyphSegment(args json.RawMessage) (interface{}, error) {
	var a glyphSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, result, err := s.segmentPath(a.Path, a.Options)
	if err != nil {
		return nil, err
	}

	cfg, _, _ := a.Options.resolve()
	summaries := make([]ComponentSummary, len(result.Components))
	for i, c := range result.Components {
		b := c.Bounds()
		summaries[i] = ComponentSummary{
			Index:  i,
			Size:   c.Size(),
			Bounds: result.Origins[i],
			Width:  b.Width(),
			Height: b.Height(),
		}
	}

	return &SegmentResult{
		Stats:      result.Stats,
		Config:     cfg,
		Mode:       cfg.DenoiseMode.String(),
		Components: summaries,
	}, nil
}

// ComponentResult is the output of glyph_component.
type ComponentResult struct {
	ComponentSummary

	// Points is the normalized point list, present when requested.
	Points []segment.Point `json:"points,omitempty"`

	Image *imaging.GlyphImageResult `json:"image"`
}

type glyphComponentArgs struct {
	Path          string          `json:"path"`
	Index         int             `json:"index"`
	Options       *segmentOptions `json:"options"`
	IncludePoints bool            `json:"include_points"`
	Scale         int             `json:"scale"`
}

func (s *Server) handleGlyphComponent(args json.RawMessage) (interface{}, error) {
	var a glyphComponentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1
	}

	_, result, err := s.segmentPath(a.Path, a.Options)
	if err != nil {
		return nil, err
	}

	c, err := result.Components.At(a.Index)
	if err != nil {
		return nil, err
	}

	rendered, err := imaging.RenderComponent(c, a.Scale)
	if err != nil {
		return nil, err
	}

	b := c.Bounds()
	out := &ComponentResult{
		ComponentSummary: ComponentSummary{
			Index:  a.Index,
			Size:   c.Size(),
			Bounds: result.Origins[a.Index],
			Width:  b.Width(),
			Height: b.Height(),
		},
		Image: rendered,
	}
	if a.IncludePoints {
		out.Points = c.Points
	}
	return out, nil
}

type glyphOverlayArgs struct {
	Path       string          `json:"path"`
	Options    *segmentOptions `json:"options"`
	ShowLabels *bool           `json:"show_labels"`
}

func (s *Server) handleGlyphOverlay(args json.RawMessage) (interface{}, error) {
	var a glyphOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	showLabels := true
	if a.ShowLabels != nil {
		showLabels = *a.ShowLabels
	}

	raster, result, err := s.segmentPath(a.Path, a.Options)
	if err != nil {
		return nil, err
	}
	return imaging.Overlay(raster, result.Origins, showLabels)
}

// === OCR Handlers ===

// ClassifyResult is the output of glyph_classify.
type ClassifyResult struct {
	ocr.GlyphGuess
	Size     int    `json:"size"`
	Language string `json:"language"`
}

type glyphClassifyArgs struct {
	Path      string          `json:"path"`
	Index     int             `json:"index"`
	Options   *segmentOptions `json:"options"`
	Language  string          `json:"language"`
	Whitelist string          `json:"whitelist"`
}

func (s *Server) handleGlyphClassify(args json.RawMessage) (interface{}, error) {
	var a glyphClassifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = ocr.DefaultLanguage
	}

	_, result, err := s.segmentPath(a.Path, a.Options)
	if err != nil {
		return nil, err
	}

	c, err := result.Components.At(a.Index)
	if err != nil {
		return nil, err
	}

	classifier, err := ocr.NewClassifier(ocr.GlyphOptions{Language: a.Language, Whitelist: a.Whitelist})
	if err != nil {
		return nil, err
	}
	defer classifier.Close()

	guess, err := classifier.Classify(c)
	if err != nil {
		return nil, err
	}
	guess.Index = a.Index

	return &ClassifyResult{
		GlyphGuess: *guess,
		Size:       c.Size(),
		Language:   a.Language,
	}, nil
}
