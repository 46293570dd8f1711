package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "tierdeck.skip-bootstrap"

var version = "dev"

var (
	verbose bool
	dataDir string
)

// Services groups the core services commands run against.
type Services struct {
	Catalog  driving.CatalogService
	Booking  driving.BookingService
	Settings driving.SettingsService
	Carousel driving.CarouselController

	// Watcher is optional. It is set when the catalog source supports
	// change notification and watching is enabled.
	Watcher driven.CatalogWatcher
}

// Bootstrapper builds services for a data directory. The returned closer
// releases whatever the services hold open.
type Bootstrapper func(ctx context.Context, dataDir string) (*Services, func() error, error)

var (
	catalogService  driving.CatalogService
	bookingService  driving.BookingService
	settingsService driving.SettingsService
	carousel        driving.CarouselController
	catalogWatcher  driven.CatalogWatcher

	bootstrap     Bootstrapper
	closeServices func() error
)

var rootCmd = &cobra.Command{
	Use:   "tierdeck",
	Short: "Browse service tiers and record bookings",
	Long: `tierdeck loads a tenant's service catalog from a local file or the
marketplace API and lets you browse each service's pricing tiers in a
carousel, commit to a tier and review the choices you made.

Run "tierdeck tui" for the interactive carousel.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.tierdeck/data)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrapper registers the function that builds services before a
// command runs. Commands run without services when none is registered.
func SetBootstrapper(b Bootstrapper) {
	bootstrap = b
}

// SetServices installs services directly, bypassing the bootstrapper.
func SetServices(s *Services) {
	if s == nil {
		catalogService = nil
		bookingService = nil
		settingsService = nil
		carousel = nil
		catalogWatcher = nil
		return
	}
	catalogService = s.Catalog
	bookingService = s.Booking
	settingsService = s.Settings
	carousel = s.Carousel
	catalogWatcher = s.Watcher
}

// Execute runs the root command and releases bootstrapped services.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		closer := closeServices
		closeServices = nil
		if cerr := closer(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing services: %w", cerr))
		}
	}
	return err
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}
	if bootstrap == nil || catalogService != nil {
		return nil
	}

	logger.Section("Bootstrap")
	logger.Debug("data dir: %q", dataDir)

	svcs, closer, err := bootstrap(cmd.Context(), dataDir)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(svcs)
	closeServices = closer
	return nil
}
