package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/layer-import-mcp/internal/compose"
	"github.com/ironsheep/layer-import-mcp/internal/imaging"
	"github.com/ironsheep/layer-import-mcp/internal/impex"
	"github.com/ironsheep/layer-import-mcp/internal/layerstack"
	"github.com/ironsheep/layer-import-mcp/internal/pixel"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "document_import_image").
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
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return s.result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_info":
		return s.handleImageInfo(args)

	case "document_import_image":
		return s.handleImport(args, impex.ImportStillImageFile)
	case "document_import_animation":
		return s.handleImport(args, impex.ImportAnimatedImageFile)
	case "document_import":
		return s.handleImport(args, impex.ImportFile)

	case "document_info":
		return s.handleDocumentInfo(args)
	case "document_layer_sample_color":
		return s.handleLayerSampleColor(args)
	case "document_layer_export":
		return s.handleLayerExport(args)
	case "document_flatten":
		return s.handleFlatten(args)

	case "document_set_layer":
		return s.handleSetLayer(args)
	case "document_add_layer":
		return s.handleAddLayer(args)
	case "document_remove_layer":
		return s.handleRemoveLayer(args)
	case "document_close":
		return s.handleClose(args)
	case "document_list":
		return s.handleList()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Result Types ===

// Bounds is a rectangle in canvas coordinates; (x2,y2) is exclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// LayerInfo describes one layer of a document.
type LayerInfo struct {
	ID      uint16  `json:"id"`
	IDHex   string  `json:"id_hex"`
	Title   string  `json:"title"`
	Opacity float32 `json:"opacity"`
	Hidden  bool    `json:"hidden"`
	Blend   string  `json:"blend"`

	// PaintedBounds is the extent of non-transparent pixels; nil for a blank layer.
	PaintedBounds *Bounds `json:"painted_bounds,omitempty"`
}

// DocumentInfo describes a document held by the server.
type DocumentInfo struct {
	Document string      `json:"document"`
	Source   string      `json:"source"`
	Width    uint32      `json:"width"`
	Height   uint32      `json:"height"`
	Layers   []LayerInfo `json:"layers"` // bottom to top
}

func describeDocument(doc *Document) *DocumentInfo {
	info := &DocumentInfo{
		Document: doc.Handle,
		Source:   doc.Source,
		Width:    doc.Stack.Width(),
		Height:   doc.Stack.Height(),
		Layers:   []LayerInfo{},
	}
	for _, l := range doc.Stack.Layers() {
		li := LayerInfo{
			ID:      uint16(l.ID),
			IDHex:   fmt.Sprintf("0x%04x", uint16(l.ID)),
			Title:   l.Title,
			Opacity: l.Opacity,
			Hidden:  l.Hidden,
			Blend:   l.Blend.String(),
		}
		if r := l.PaintedBounds(); !r.Empty() {
			li.PaintedBounds = &Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
		}
		info.Layers = append(info.Layers, li)
	}
	return info
}

// === Source Inspection ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(a.Path)
}

// === Import ===

func (s *Server) handleImport(args json.RawMessage, importer func(string) (*layerstack.Stack, error)) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.importDocument(a.Path, importer)
}

func (s *Server) importDocument(path string, importer func(string) (*layerstack.Stack, error)) (*DocumentInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}

	ls, err := importer(path)
	if err != nil {
		return nil, err
	}
	return describeDocument(s.docs.Add(path, ls)), nil
}

// ImportFile imports path as a new document, choosing the importer by
// extension, and returns its description.
func (s *Server) ImportFile(path string) (*DocumentInfo, error) {
	return s.importDocument(path, impex.ImportFile)
}

// === Document Inspection ===

type documentArgs struct {
	Document string `json:"document"`
}

func (s *Server) handleDocumentInfo(args json.RawMessage) (interface{}, error) {
	var a documentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.docs.Get(a.Document)
	if err != nil {
		return nil, err
	}
	return describeDocument(doc), nil
}

// lookupLayer resolves a document handle and layer id.
func (s *Server) lookupLayer(handle string, id uint16) (*Document, *layerstack.Layer, error) {
	doc, err := s.docs.Get(handle)
	if err != nil {
		return nil, nil, err
	}
	layer, ok := doc.Stack.Layer(layerstack.LayerID(id))
	if !ok {
		return nil, nil, fmt.Errorf("%s: layer %d: %w", handle, id, layerstack.ErrLayerNotFound)
	}
	return doc, layer, nil
}

type layerSampleColorArgs struct {
	Document string `json:"document"`
	LayerID  uint16 `json:"layer_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// LayerColorResult is a sampled layer pixel.
type LayerColorResult struct {
	LayerID uint16            `json:"layer_id"`
	X       int               `json:"x"`
	Y       int               `json:"y"`
	Color   pixel.ColorResult `json:"color"`
}

func (s *Server) handleLayerSampleColor(args json.RawMessage) (interface{}, error) {
	var a layerSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, layer, err := s.lookupLayer(a.Document, a.LayerID)
	if err != nil {
		return nil, err
	}
	c, err := layer.SampleColor(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &LayerColorResult{
		LayerID: a.LayerID,
		X:       a.X,
		Y:       a.Y,
		Color:   pixel.Describe(c),
	}, nil
}

type layerExportArgs struct {
	Document string  `json:"document"`
	LayerID  uint16  `json:"layer_id"`
	Region   *Bounds `json:"region,omitempty"`
	Scale    float64 `json:"scale"`
}

func (s *Server) handleLayerExport(args json.RawMessage) (interface{}, error) {
	var a layerExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	_, layer, err := s.lookupLayer(a.Document, a.LayerID)
	if err != nil {
		return nil, err
	}

	r := layer.Bounds()
	if a.Region != nil {
		r = image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2)
	}
	return imaging.Crop(layer.Surface(), r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, a.Scale)
}

type flattenArgs struct {
	Document string  `json:"document"`
	Scale    float64 `json:"scale"`
}

func (s *Server) handleFlatten(args json.RawMessage) (interface{}, error) {
	var a flattenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	doc, err := s.docs.Get(a.Document)
	if err != nil {
		return nil, err
	}
	if doc.Stack.Width() == 0 || doc.Stack.Height() == 0 {
		return nil, fmt.Errorf("%s: cannot flatten an empty canvas", doc.Handle)
	}
	return imaging.EncodePNG(imaging.Scale(doc.Stack.Flatten(), a.Scale))
}

// === Document Editing ===

type setLayerArgs struct {
	Document string   `json:"document"`
	LayerID  uint16   `json:"layer_id"`
	Title    *string  `json:"title,omitempty"`
	Opacity  *float32 `json:"opacity,omitempty"`
	Hidden   *bool    `json:"hidden,omitempty"`
	Blend    *string  `json:"blend,omitempty"`
}

func (s *Server) handleSetLayer(args json.RawMessage) (interface{}, error) {
	var a setLayerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, layer, err := s.lookupLayer(a.Document, a.LayerID)
	if err != nil {
		return nil, err
	}

	// Validate everything before changing anything.
	if a.Opacity != nil && (*a.Opacity < 0 || *a.Opacity > 1) {
		return nil, fmt.Errorf("opacity %v outside 0.0-1.0", *a.Opacity)
	}
	var mode compose.BlendMode
	if a.Blend != nil {
		if mode, err = compose.ParseBlendMode(*a.Blend); err != nil {
			return nil, err
		}
	}

	if a.Title != nil {
		layer.Title = *a.Title
	}
	if a.Opacity != nil {
		layer.Opacity = *a.Opacity
	}
	if a.Hidden != nil {
		layer.Hidden = *a.Hidden
	}
	if a.Blend != nil {
		layer.Blend = mode
	}
	return describeDocument(doc), nil
}

type addLayerArgs struct {
	Document string   `json:"document"`
	LayerID  uint16   `json:"layer_id"`
	Title    string   `json:"title"`
	Color    string   `json:"color"`
	Alpha    *float32 `json:"alpha,omitempty"`
	Position string   `json:"position"`
	Above    uint16   `json:"above"`
}

// parseFill turns a "#rrggbb" color and alpha into a layer fill. An empty
// color gives a transparent layer.
func parseFill(hex string, alpha *float32) (layerstack.Fill, error) {
	if hex == "" {
		return layerstack.TransparentFill, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return layerstack.Fill{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	a := float32(1)
	if alpha != nil {
		if *alpha < 0 || *alpha > 1 {
			return layerstack.Fill{}, fmt.Errorf("alpha %v outside 0.0-1.0", *alpha)
		}
		a = *alpha
	}
	if a == 0 {
		return layerstack.TransparentFill, nil
	}
	return layerstack.Solid(pixel.Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: a}), nil
}

func parseInsertion(position string, above uint16) (layerstack.Insertion, error) {
	switch position {
	case "", "top":
		return layerstack.InsertTop, nil
	case "bottom":
		return layerstack.InsertBottom, nil
	case "above":
		return layerstack.InsertAbove(layerstack.LayerID(above)), nil
	default:
		return layerstack.Insertion{}, fmt.Errorf("unknown position %q (want top, bottom or above)", position)
	}
}

func (s *Server) handleAddLayer(args json.RawMessage) (interface{}, error) {
	var a addLayerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.docs.Get(a.Document)
	if err != nil {
		return nil, err
	}
	fill, err := parseFill(a.Color, a.Alpha)
	if err != nil {
		return nil, err
	}
	ins, err := parseInsertion(a.Position, a.Above)
	if err != nil {
		return nil, err
	}

	ls := doc.Stack
	if int64(ls.Width())*int64(ls.Height())*int64(ls.Len()+1) > impex.MaxDocumentPixels {
		return nil, fmt.Errorf("%s: %w", doc.Handle, impex.ErrTooLarge)
	}
	layer, err := ls.AddLayer(layerstack.LayerID(a.LayerID), fill, ins)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Handle, err)
	}
	layer.Title = a.Title
	if layer.Title == "" {
		layer.Title = fmt.Sprintf("Layer 0x%04x", a.LayerID)
	}
	return describeDocument(doc), nil
}

type layerArgs struct {
	Document string `json:"document"`
	LayerID  uint16 `json:"layer_id"`
}

func (s *Server) handleRemoveLayer(args json.RawMessage) (interface{}, error) {
	var a layerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.docs.Get(a.Document)
	if err != nil {
		return nil, err
	}
	if err := doc.Stack.RemoveLayer(layerstack.LayerID(a.LayerID)); err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Handle, err)
	}
	return describeDocument(doc), nil
}

// DocumentSummary is one entry of document_list.
type DocumentSummary struct {
	Document string `json:"document"`
	Source   string `json:"source"`
	Width    uint32 `json:"width"`
	Height   uint32 `json:"height"`
	Layers   int    `json:"layers"`
}

func (s *Server) handleList() (interface{}, error) {
	summaries := []DocumentSummary{}
	for _, h := range s.docs.Handles() {
		doc, err := s.docs.Get(h)
		if err != nil {
			continue // closed since Handles was taken
		}
		summaries = append(summaries, DocumentSummary{
			Document: doc.Handle,
			Source:   doc.Source,
			Width:    doc.Stack.Width(),
			Height:   doc.Stack.Height(),
			Layers:   doc.Stack.Len(),
		})
	}
	return map[string]interface{}{"documents": summaries}, nil
}

func (s *Server) handleClose(args json.RawMessage) (interface{}, error) {
	var a documentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.docs.Remove(a.Document); err != nil {
		return nil, err
	}
	return map[string]interface{}{"document": a.Document, "closed": true}, nil
}
