package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/efp-view/internal/bar"
	"github.com/ziadkadry99/efp-view/internal/species"
	"github.com/ziadkadry99/efp-view/internal/studies"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes gene resolution and eFP study tools.
type Server struct {
	table *species.Table
	cache *studies.Cache
	urls  bar.URLs
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(table *species.Table, cache *studies.Cache, urls bar.URLs) *Server {
	if table == nil {
		table = species.Default
	}
	s := &Server{
		table: table,
		cache: cache,
		urls:  urls,
	}

	s.mcp = server.NewMCPServer(
		"efpview",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(resolveGeneTool, s.handleResolveGene)
	s.mcp.AddTool(listStudiesTool, s.handleListStudies)
	s.mcp.AddTool(efpURLsTool, s.handleEFPURLs)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
