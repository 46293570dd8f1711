package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	catalogfile "github.com/custodia-labs/tierdeck/internal/adapters/driven/catalog/file"
	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

const maxSuggestions = 3

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and load the service catalog",
	Long: `Inspect the persisted service catalog, reload it from the configured
source or import a catalog file.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List services",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [service-id]",
	Short: "Show a service and its tiers",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a JSON, YAML or TOML catalog file",
	Long: `Validate a catalog file and replace the persisted catalog with it.
The format is chosen from the extension: .json, .yaml, .yml or .toml.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the catalog from the configured source",
	Args:  cobra.NoArgs,
	RunE:  runCatalogRefresh,
}

func init() {
	catalogListCmd.Flags().BoolVar(&catalogJSON, "json", false, "output as JSON")
	catalogShowCmd.Flags().BoolVar(&catalogJSON, "json", false, "output as JSON")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogRefreshCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	services, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}

	if catalogJSON {
		return printJSON(cmd, services)
	}

	if len(services) == 0 {
		cmd.Println("No services in the catalog.")
		cmd.Println("Run 'tierdeck settings catalog --file <path>' and 'tierdeck catalog refresh'.")
		return nil
	}

	rows := make([][]string, len(services))
	for i := range services {
		svc := &services[i]
		rows[i] = []string{
			svc.ID, svc.Name, strconv.Itoa(svc.TierCount()),
			domain.FormatPrice(svc.StartingPrice()), svc.Category,
		}
	}
	return writeTable(cmd.OutOrStdout(), []string{"ID", "NAME", "TIERS", "FROM", "CATEGORY"}, rows)
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ctx := cmd.Context()
	svc, err := lookupService(ctx, args[0])
	if err != nil {
		return err
	}

	if catalogJSON {
		return printJSON(cmd, svc)
	}

	names, err := catalogService.FeatureNames(ctx)
	if err != nil {
		logger.Warn("feature names unavailable: %v", err)
	}

	cmd.Printf("%s (%s)\n", svc.Name, svc.ID)
	if svc.Description != "" {
		cmd.Printf("  %s\n", svc.Description)
	}
	if svc.Category != "" {
		cmd.Printf("  Category: %s\n", svc.Category)
	}
	cmd.Println()

	if svc.TierCount() == 0 {
		cmd.Println("No tiers.")
		return nil
	}

	for i, tier := range svc.Tiers {
		cmd.Printf("  [%d] %s  %s\n", i, tier.Name, priceLabel(tier))
		if tier.Description != "" {
			cmd.Printf("      %s\n", tier.Description)
		}
		for _, feature := range names.Display(tier.Features) {
			cmd.Printf("      - %s\n", feature)
		}
	}
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	source, err := catalogfile.NewSource(args[0])
	if err != nil {
		return fmt.Errorf("cannot import %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	catalog, err := source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if err := catalogService.Import(ctx, catalog); err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	cmd.Printf("Imported %d services from %s\n", len(catalog.Services), args[0])
	return nil
}

func runCatalogRefresh(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	services, err := catalogService.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	cmd.Printf("Loaded %d services from %s\n", len(services), catalogService.SourceName())
	return nil
}

// loadServices returns the persisted catalog, fetching it from the
// configured source the first time the store is empty.
func loadServices(ctx context.Context) ([]domain.Service, error) {
	services, err := catalogService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if len(services) > 0 || catalogService.SourceName() == "" {
		return services, nil
	}

	logger.Debug("catalog store empty, fetching from %s", catalogService.SourceName())
	services, err = catalogService.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return services, nil
}

// lookupService resolves a service id, suggesting close matches when it
// does not exist.
func lookupService(ctx context.Context, id string) (*domain.Service, error) {
	if _, err := loadServices(ctx); err != nil {
		return nil, err
	}

	svc, err := catalogService.Get(ctx, id)
	if err == nil {
		return svc, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	suggestions, serr := catalogService.Suggest(ctx, id, maxSuggestions)
	if serr != nil || len(suggestions) == 0 {
		return nil, fmt.Errorf("service %q: %w", id, domain.ErrNotFound)
	}
	return nil, fmt.Errorf("service %q: %w (did you mean %s?)",
		id, domain.ErrNotFound, strings.Join(suggestions, ", "))
}

func priceLabel(tier domain.Tier) string {
	label := domain.FormatPrice(tier.Price)
	if tier.HasDiscount() {
		label += " (was " + domain.FormatPrice(tier.OriginalPrice) + ")"
	}
	if tier.Popular {
		label += "  POPULAR"
	}
	return label
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
