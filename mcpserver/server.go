// Package mcpserver is the protocol-facing layer: it registers the
// tariff query tool on an MCP server and serves it over stdio. Every
// internal failure becomes a protocol-level error result; a failed
// request never takes the process down.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"tariffmcp/logger"
)

const (
	serverName    = "electricity-price-mcp"
	serverVersion = "1.0.0"
)

// Server wraps the MCP server and the tariff store it queries.
type Server struct {
	mcp   *server.MCPServer
	store PriceQuerier
	log   logger.Logger
}

// New builds the MCP server and registers the query tool.
func New(store PriceQuerier, log logger.Logger) *Server {
	s := &Server{
		mcp: server.NewMCPServer(serverName, serverVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		store: store,
		log:   log,
	}
	s.mcp.AddTool(queryPricesTool(), s.handleQueryPrices)
	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout until the
// client closes the stream.
func (s *Server) ServeStdio() error {
	s.log.Info("serving MCP over stdio",
		logger.String("server", serverName),
		logger.String("version", serverVersion))
	return server.ServeStdio(s.mcp, server.WithErrorLogger(logger.ToUtilLogger(s.log)))
}
