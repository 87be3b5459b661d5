package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema shared by every tool's "path" argument.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file (PNG, JPEG, GIF, BMP or TIFF)",
	}
}

// optionsProperty is the schema for the segmentation options object accepted
// by the pipeline tools. Omitted fields take their defaults.
func optionsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Segmentation options. Omitted fields use their defaults.",
		"properties": map[string]interface{}{
			"foreground_threshold": map[string]interface{}{
				"type":        "integer",
				"minimum":     1,
				"maximum":     255,
				"description": "A pixel is foreground when R, G and B are all at or above this value. Default 192",
			},
			"denoise_min_friends": map[string]interface{}{
				"type":        "integer",
				"minimum":     0,
				"maximum":     8,
				"description": "Foreground pixels with fewer foreground neighbors than this are erased before extraction. 0 disables denoising. Default 3",
			},
			"min_component_size": map[string]interface{}{
				"type":        "integer",
				"minimum":     0,
				"description": "Components with this many pixels or fewer are discarded. Default 30",
			},
			"denoise_mode": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"in_place", "snapshot"},
				"description": "in_place: neighbor counts see earlier erasures in the same pass. snapshot: counts use the image as it was before the pass. Default in_place",
			},
			"clear_border": map[string]interface{}{
				"type":        "boolean",
				"description": "Erase the outermost rows and columns before segmenting. Default true",
			},
			"invert": map[string]interface{}{
				"type":        "boolean",
				"description": "Invert colors before classification (for dark glyphs on light paper). Default false",
			},
			"max_worklist": map[string]interface{}{
				"type":        "integer",
				"minimum":     0,
				"description": "Fail when a single flood fill's pending pixel list would exceed this size. 0 means unbounded",
			},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "glyph_image_info",
			Description: "Load an image file and return its dimensions, format and the number of foreground pixels at the given threshold.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"foreground_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Per-channel foreground threshold. Default 192",
					},
					"invert": map[string]interface{}{
						"type":        "boolean",
						"description": "Invert colors before counting foreground. Default false",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "glyph_sample_pixel",
			Description: "Get the color at a pixel and whether the segmenter classifies it as foreground.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"foreground_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Per-channel foreground threshold. Default 192",
					},
					"invert": map[string]interface{}{
						"type":        "boolean",
						"description": "Invert colors before sampling. Default false",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Segmentation
		{
			Name:        "glyph_segment",
			Description: "Segment an image into connected glyph components. Returns per-stage statistics and, for each retained component in discovery order, its size, source bounding box and normalized dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty(),
					"options": optionsProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "glyph_component",
			Description: "Return one segmented component normalized to a (0,0) origin, as a PNG mask and optionally as a list of points.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Component index as reported by glyph_segment",
					},
					"options": optionsProperty(),
					"include_points": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the normalized point list in visitation order. Default false",
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer upscale factor for the PNG mask (1-32). Default 1",
						"default":     1,
					},
				},
				"required": []string{"path", "index"},
			},
		},
		{
			Name:        "glyph_overlay",
			Description: "Draw numbered, colored bounding boxes around every retained component on the source image and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty(),
					"options": optionsProperty(),
					"show_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Print each component's index next to its box. Default true",
					},
				},
				"required": []string{"path"},
			},
		},

		// OCR
		{
			Name:        "glyph_classify",
			Description: "Run Tesseract OCR on a single segmented component and return the recognized character with its confidence.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Component index as reported by glyph_segment",
					},
					"options": optionsProperty(),
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code (e.g., 'eng'). Default 'eng'",
						"default":     "eng",
					},
					"whitelist": map[string]interface{}{
						"type":        "string",
						"description": "Restrict recognition to these characters",
					},
				},
				"required": []string{"path", "index"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
