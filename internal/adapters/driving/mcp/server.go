// Package mcp exposes the chat service to MCP clients, so agent
// tooling can query the support knowledge base directly.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clearbrook-labs/supportrag/internal/core/ports/driving"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for the support chatbot.
type Server struct {
	chat   driving.ChatService
	server *mcp.Server
}

// NewServer creates an MCP server over the chat service.
func NewServer(chat driving.ChatService) *Server {
	impl := &mcp.Implementation{
		Name:    "supportrag",
		Version: Version,
	}

	s := &Server{
		chat:   chat,
		server: mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
