package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

var errNotTerminal = errors.New("the interactive UI needs a terminal")

// isTerminal reports whether stdin and stdout are attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive tier carousel",
	Long: `Launch the interactive terminal user interface for tierdeck.

Pick a service and browse its tiers in a carousel. The focused tier sits
in the middle with its neighbours on either side.

Controls:
  ←/h, →/l - Previous / next tier
  Enter    - Book the focused tier
  1-9      - Book a tier by position
  r        - Reload the catalog
  Esc      - Back
  ?        - Help
  q        - Quit

When the catalog comes from a file with watching enabled, edits to the
file are picked up while the UI is open.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if catalogService == nil || carousel == nil {
		return errors.New("carousel not configured")
	}
	if !isTerminal() {
		return fmt.Errorf("%w; use 'tierdeck tiers' instead", errNotTerminal)
	}

	app, err := tui.NewApp(&tui.Ports{
		Carousel: carousel,
		Catalog:  catalogService,
		Booking:  bookingService,
		Settings: settingsService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	p := app.NewProgram()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Quitting the UI stops the watcher.
		defer cancel()
		if _, err := p.Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
				return nil
			}
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})

	if catalogWatcher != nil {
		g.Go(func() error {
			werr := catalogWatcher.Watch(gctx, func() {
				_, rerr := catalogService.Refresh(gctx)
				p.Send(messages.CatalogChanged{Err: rerr})
			})
			if werr != nil && !errors.Is(werr, context.Canceled) {
				// The UI keeps working without live reload.
				logger.Warn("catalog watcher stopped: %v", werr)
			}
			return nil
		})
	}

	return g.Wait()
}
