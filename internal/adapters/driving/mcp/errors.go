// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Quaero. It enables AI assistants like Claude to query the local
// document index and stored weather reports.
package mcp

import "errors"

// ErrMissingRetriever is returned when the retrieval service is not provided.
var ErrMissingRetriever = errors.New("mcp: retrieval service is required")
