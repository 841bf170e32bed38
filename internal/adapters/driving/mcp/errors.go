// Package mcp provides an MCP (Model Context Protocol) server adapter
// for askdocs. It lets AI assistants like Claude query the indexed
// documentation with grounded answers and raw similarity search.
package mcp

import "errors"

// ErrMissingAskService is returned when the ask service is not provided.
var ErrMissingAskService = errors.New("mcp: ask service is required")
