// Package mcp provides a Model Context Protocol surface for the broker.
//
// The client here is deliberately thin: every tool call is proxied to
// the REST API over HTTP, so the MCP surface never holds broker state
// of its own and always observes the same rooms and catalog as the
// websocket hub. It can be served over stdio for local MCP clients or
// mounted at POST /mcp on the HTTP server.
package mcp
