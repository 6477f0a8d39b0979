package cli

import (
	"context"
	"fmt"
	"net"

	mcpAdapter "github.com/aretw0/guts/pkg/adapters/mcp"
	"github.com/aretw0/guts/pkg/observability"
)

// MCPServer builds the MCP adapter over the app's registry.
func (a *App) MCPServer() *mcpAdapter.Server {
	return mcpAdapter.NewServer(a.Registry,
		mcpAdapter.WithLogger(a.Logger),
		mcpAdapter.WithMetrics(observability.NewMetrics()),
	)
}

// ServeMCP runs the MCP adapter over stdio, or over streamable HTTP when
// transport is "http". An empty addr means the configured server address.
func (a *App) ServeMCP(ctx context.Context, transport, addr string) error {
	srv := a.MCPServer()
	switch transport {
	case "", "stdio":
		return srv.ServeStdio(ctx, a.In, a.Out)
	case "http":
		if addr == "" {
			addr = a.Config.Server.Addr()
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
		return srv.ServeHTTP(ctx, ln)
	}
	return fmt.Errorf("unknown transport %q (want stdio or http)", transport)
}
