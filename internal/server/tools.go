package server

import "github.com/ironsheep/layer-import-mcp/internal/compose"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

var documentProperty = map[string]interface{}{
	"type":        "string",
	"description": "Document handle returned by an import tool (e.g. \"doc-1\")",
}

var layerIDProperty = map[string]interface{}{
	"type":        "integer",
	"description": "Layer id (the first imported layer is 257, i.e. 0x0101)",
}

var scaleProperty = map[string]interface{}{
	"type":        "number",
	"description": "Optional scale factor for the returned PNG. Default 1.0",
	"default":     1.0,
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source Inspection
		{
			Name:        "image_info",
			Description: "Report format, dimensions, bit depth, alpha and frame count of an image file without importing it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Import
		{
			Name:        "document_import_image",
			Description: "Import a still image (PNG, JPEG, GIF, BMP, TIFF, WebP) as a document with a single layer \"Layer 1\" the size of the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_import_animation",
			Description: "Import an animated GIF as a document the size of the animation with one layer per frame. Each frame is placed at its own offset on its own transparent layer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_import",
			Description: "Import a file, choosing the animation importer for .gif files and the still-image importer otherwise.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Document Inspection
		{
			Name:        "document_info",
			Description: "List a document's canvas size and its layers bottom to top with ids, titles and painted bounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"document": documentProperty,
				},
				"required": []string{"document"},
			},
		},
		{
			Name:        "document_layer_sample_color",
			Description: "Get the color of one layer at a pixel coordinate, with alpha.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"document": documentProperty,
					"layer_id": layerIDProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"document", "layer_id", "x", "y"},
			},
		},
		{
			Name:        "document_layer_export",
			Description: "Return a layer, or a region of it, as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"document": documentProperty,
					"layer_id": layerIDProperty,
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional region; the whole canvas when omitted",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
					},
					"scale": scaleProperty,
				},
				"required": []string{"document", "layer_id"},
			},
		},
		{
			Name:        "document_flatten",
			Description: "Composite the visible layers of a document and return the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"document": documentProperty,
					"scale":    scaleProperty,
				},
				"required": []string{"document"},
			},
		},

		// Document Editing
		{
			Name:        "document_set_layer",
			Description: "Change a layer's title, opacity, visibility or blend mode. Only the given properties are changed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"document": documentProperty,
					"layer_id": layerIDProperty,
					"title": map[string]interface{}{
						"type":        "string",
						"description": "New layer title",
					},
					"opacity": map[string]interface{}{
						"type":        "number",
						"description": "Layer opacity, 0.0 to 1.0",
					},
					"hidden": map[string]interface{}{
						"type":        "boolean",
						"description": "Hide the layer when flattening",
					},
					"blend": map[string]interface{}{
						"type":        "string",
						"enum":        compose.BlendModeNames(),
						"description": "Blend mode used when flattening",
					},
				},
				"required": []string{"document", "layer_id"},
			},
		},
		{
			Name:        "document_add_layer",
			Description: "Add a canvas-sized layer, transparent or filled with a solid color. Fails if the id is already used in the document.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"document": documentProperty,
					"layer_id": layerIDProperty,
					"title": map[string]interface{}{
						"type":        "string",
						"description": "Layer title. Default \"Layer 0x<id>\"",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Fill color as #rrggbb. Omit for a transparent layer",
					},
					"alpha": map[string]interface{}{
						"type":        "number",
						"description": "Fill alpha, 0.0 to 1.0. Default 1.0",
					},
					"position": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top", "bottom", "above"},
						"description": "Where to insert the layer. Default top",
					},
					"above": map[string]interface{}{
						"type":        "integer",
						"description": "Layer id to insert above when position is \"above\"",
					},
				},
				"required": []string{"document", "layer_id"},
			},
		},
		{
			Name:        "document_remove_layer",
			Description: "Delete a layer from a document.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"document": documentProperty,
					"layer_id": layerIDProperty,
				},
				"required": []string{"document", "layer_id"},
			},
		},
		{
			Name:        "document_close",
			Description: "Release a document held by the server.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"document": documentProperty,
				},
				"required": []string{"document"},
			},
		},
		{
			Name:        "document_list",
			Description: "List the documents held by the server with their source, size and layer count.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return s.result(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
