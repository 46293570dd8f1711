package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tierdeck/internal/adapters/driven/catalog/api"
	catalogfile "github.com/custodia-labs/tierdeck/internal/adapters/driven/catalog/file"
	configfile "github.com/custodia-labs/tierdeck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tierdeck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/cli"
	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
	"github.com/custodia-labs/tierdeck/internal/core/services"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

// configDir overrides the config directory. Empty uses ~/.tierdeck.
var configDir string

// bootstrap opens the config file and database and builds the services
// the commands run against.
func bootstrap(_ context.Context, dataDir string) (*cli.Services, func() error, error) {
	configStore, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	source, watcher, err := catalogSource(settings.Catalog)
	if err != nil {
		// The stored catalog stays usable while the source is misconfigured.
		logger.Warn("catalog source unavailable: %v", err)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("database: %s", store.Path())

	carousel := services.NewCarouselController(services.NewTierSelectionStore())
	stopTrace := services.TraceCarousel(carousel)

	svcs := &cli.Services{
		Catalog:  services.NewCatalogService(source, store.CatalogStore()),
		Booking:  services.NewBookingService(store.BookingStore()),
		Settings: settingsService,
		Carousel: carousel,
	}
	if watcher != nil {
		svcs.Watcher = watcher
	}
	closer := func() error {
		stopTrace()
		return store.Close()
	}
	return svcs, closer, nil
}

// catalogSource builds the configured catalog source. The watcher is nil
// unless the source is a watched file. A nil source means the catalog is
// only ever imported.
func catalogSource(c domain.CatalogSettings) (driven.CatalogSource, *catalogfile.Watcher, error) {
	if !c.IsConfigured() {
		return nil, nil, nil
	}

	switch c.Source {
	case domain.CatalogSourceFile:
		source, err := catalogfile.NewSource(c.Path)
		if err != nil {
			return nil, nil, err
		}
		if !c.Watch {
			return source, nil, nil
		}
		return source, catalogfile.NewWatcher(c.Path, catalogfile.DefaultDebounce), nil

	case domain.CatalogSourceAPI:
		source, err := api.NewSource(api.Config{
			BaseURL:           c.BaseURL,
			Token:             c.APIToken,
			TenantID:          c.TenantID,
			VehicleType:       c.VehicleType,
			Category:          c.Category,
			RequestsPerSecond: c.RequestsPerSecond,
		})
		if err != nil {
			return nil, nil, err
		}
		return source, nil, nil
	}

	return nil, nil, fmt.Errorf("%w: catalog source %q", domain.ErrInvalidInput, c.Source)
}
