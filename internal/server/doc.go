// Package server implements the MCP (Model Context Protocol) server that imports
// images into layered documents and lets clients inspect them.
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
// Messages under notifications/ get no response. Undecodable lines get a
// -32700 parse error and requests without jsonrpc "2.0" or a method get -32600.
//
// # Available Tools
//
// Source Inspection:
//   - image_info: Format, size, depth, alpha and frame count of a file
//
// Import:
//   - document_import_image: Still image to a one-layer document
//   - document_import_animation: Animated GIF to one layer per frame
//   - document_import: Pick the importer from the file extension
//
// Document Inspection:
//   - document_info: Canvas size and layer list
//   - document_layer_sample_color: Color of a layer pixel
//   - document_layer_export: Layer or layer region as PNG
//   - document_flatten: Composite of the visible layers as PNG
//
// Document Editing:
//   - document_set_layer: Title, opacity, visibility, blend mode
//   - document_add_layer: New transparent or solid layer at top, bottom or above a layer
//   - document_remove_layer: Delete a layer
//   - document_close: Release a document
//   - document_list: Handles, sources and sizes of held documents
//
// # Documents
//
// Every successful import is kept in a DocumentCache under a handle such as
// "doc-1", which later tool calls refer to. Documents live until
// document_close or the end of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
