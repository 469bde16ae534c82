// Package mcp provides an MCP (Model Context Protocol) server adapter for gemctl.
// It gives AI assistants read-only access to engines, data stores and documents.
package mcp

import "errors"

// ErrMissingResourceService is returned when the resource service is not provided.
var ErrMissingResourceService = errors.New("mcp: resource service is required")
