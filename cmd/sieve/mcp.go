package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sievekit/sieve/internal/adapters/mcp"
	"github.com/sievekit/sieve/internal/cli"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts sieve as an MCP Server.
This allows AI agents (like Claude Desktop) to validate documents and
browse stored schemas as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		logger := newLogger(cmd)
		slog.SetDefault(logger)

		store, closer := cli.NewStore(storeOptions(cmd))
		defer closer() //nolint:errcheck

		srv := mcp.NewServer(store, nil)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting sieve MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		default:
			slog.Error("Unknown transport", "transport", transport)
			os.Exit(1)
		}
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport to use (stdio or sse)")
	mcpCmd.Flags().Int("port", 8090, "Port for the SSE transport")
	rootCmd.AddCommand(mcpCmd)
}
