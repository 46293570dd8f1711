package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

var (
	settingsFile        string
	settingsWatch       bool
	settingsAPI         string
	settingsTenant      string
	settingsVehicle     string
	settingsCategory    string
	settingsTokenPrompt bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure where the service catalog is loaded from and how
the carousel is displayed.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Configure the catalog source",
	Long: `Configure the catalog source.

Use --file for a local JSON, YAML or TOML catalog, or --api with --tenant
for the marketplace API.

Examples:
  tierdeck settings catalog --file ~/catalog.yaml
  tierdeck settings catalog --file ~/catalog.yaml --watch=false
  tierdeck settings catalog --api https://market.example.com --tenant acme --vehicle suv
  tierdeck settings catalog --api https://market.example.com --tenant acme --token-prompt`,
	Args: cobra.NoArgs,
	RunE: runSettingsCatalog,
}

func init() {
	f := settingsCatalogCmd.Flags()
	f.StringVar(&settingsFile, "file", "", "catalog file path")
	f.BoolVar(&settingsWatch, "watch", true, "reload the catalog file when it changes")
	f.StringVar(&settingsAPI, "api", "", "marketplace API base URL")
	f.StringVar(&settingsTenant, "tenant", "", "tenant id for the API")
	f.StringVar(&settingsVehicle, "vehicle", "", "vehicle type for the API")
	f.StringVar(&settingsCategory, "category", "", "service category for the API")
	f.BoolVar(&settingsTokenPrompt, "token-prompt", false, "prompt for an API bearer token")
	settingsCatalogCmd.MarkFlagsMutuallyExclusive("file", "api")
	settingsCatalogCmd.MarkFlagsOneRequired("file", "api")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsCatalogCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	c := settings.Catalog
	cmd.Println("[Catalog]")
	cmd.Printf("  Source: %s\n", c.Source.Description())
	switch c.Source {
	case domain.CatalogSourceFile:
		cmd.Printf("  Path: %s\n", valueOrUnset(c.Path))
		cmd.Printf("  Watch: %t\n", c.Watch)
	case domain.CatalogSourceAPI:
		cmd.Printf("  Base URL: %s\n", valueOrUnset(c.BaseURL))
		cmd.Printf("  Tenant: %s\n", valueOrUnset(c.TenantID))
		cmd.Printf("  Vehicle: %s\n", c.VehicleType)
		cmd.Printf("  Category: %s\n", c.Category)
		cmd.Printf("  Requests/sec: %g\n", c.RequestsPerSecond)
		if c.APIToken != "" {
			cmd.Printf("  API Token: %s\n", maskAPIKey(c.APIToken))
		} else {
			cmd.Printf("  API Token: (not set)\n")
		}
	}
	status := "configured"
	if !c.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Display]")
	cmd.Printf("  Indicators: %t\n", settings.Display.ShowIndicators)
	cmd.Printf("  Placeholders: %t\n", settings.Display.ShowPlaceholders)
	return nil
}

func runSettingsCatalog(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if settingsFile != "" {
		if err := settingsService.SetCatalogFile(settingsFile, settingsWatch); err != nil {
			return fmt.Errorf("failed to set catalog file: %w", err)
		}
		cmd.Printf("Catalog source set to file %s\n", settingsFile)
		return nil
	}

	var token string
	if settingsTokenPrompt {
		cmd.Print("API token: ")
		token = readPassword(cmd.InOrStdin())
		cmd.Println()
	}

	if err := settingsService.SetCatalogAPI(settingsAPI, settingsTenant, token); err != nil {
		return fmt.Errorf("failed to set catalog API: %w", err)
	}

	if settingsVehicle != "" || settingsCategory != "" {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if settingsVehicle != "" {
			settings.Catalog.VehicleType = settingsVehicle
		}
		if settingsCategory != "" {
			settings.Catalog.Category = settingsCategory
		}
		if err := settingsService.Save(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}

	cmd.Printf("Catalog source set to API %s (tenant %s)\n", settingsAPI, settingsTenant)
	return nil
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// readPassword reads a line without echo when stdin is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
