package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/tierdeck/internal/adapters/driving/mcp"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can browse
service tiers and record tier choices.

Tools: list_services, get_carousel, navigate, select_tier.
Resources: tierdeck://services, tierdeck://services/{serviceId},
tierdeck://bookings.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve over HTTP instead.

Examples:
  # Stdio mode (default)
  tierdeck mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  tierdeck mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if catalogService == nil || carousel == nil {
		return errors.New("carousel not configured")
	}

	ctx := cmd.Context()
	if err := syncCarousel(ctx); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Catalog:  catalogService,
		Carousel: carousel,
		Booking:  bookingService,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(gctx, addr)
		}
		return server.Run(gctx)
	})

	if catalogWatcher != nil {
		g.Go(func() error {
			werr := catalogWatcher.Watch(gctx, func() {
				if _, rerr := catalogService.Refresh(gctx); rerr != nil {
					logger.Warn("catalog reload failed: %v", rerr)
					return
				}
				if serr := syncCarousel(gctx); serr != nil {
					logger.Warn("carousel sync failed: %v", serr)
				}
			})
			if werr != nil && !errors.Is(werr, context.Canceled) {
				logger.Warn("catalog watcher stopped: %v", werr)
			}
			return nil
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
