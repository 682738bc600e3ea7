package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joshdeandev/sams/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This lets AI assistants run prescreening, read applicants and record
award decisions. Logs go to stderr; stdout carries only JSON-RPC.

Add to the assistant's MCP config:

{
  "mcpServers": {
    "sams": {
      "command": "/path/to/sams",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	s, err := openSession("mcp")
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}

	server := mcp.New(s.db, s.cfg, s.log, version)

	// Handle interrupt
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
