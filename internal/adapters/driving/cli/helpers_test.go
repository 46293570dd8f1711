package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tierdeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/services"
)

// stubSource implements driven.CatalogSource for testing.
type stubSource struct {
	catalog *domain.Catalog
	err     error
	fetches int
}

func (s *stubSource) Fetch(_ context.Context) (*domain.Catalog, error) {
	s.fetches++
	return s.catalog, s.err
}

func (s *stubSource) Name() string {
	return "stub catalog"
}

type testServices struct {
	source   *stubSource
	catalog  *services.CatalogService
	booking  *services.BookingService
	settings *services.SettingsService
	carousel *services.CarouselController
}

func detailService() domain.Service {
	return domain.Service{
		ID:          "full-detail",
		Name:        "Full Detail",
		Description: "Inside and out",
		Category:    "auto",
		Tiers: []domain.Tier{
			{ID: "basic", Name: "Basic", Price: 49, Features: []string{"wash"}},
			{ID: "premium", Name: "Premium", Price: 89, OriginalPrice: 109, Popular: true, Features: []string{"wash", "wax"}},
			{ID: "ultimate", Name: "Ultimate", Price: 1249, Features: []string{"ceramic"}},
		},
	}
}

func interiorService() domain.Service {
	return domain.Service{
		ID:       "interior",
		Name:     "Interior Clean",
		Category: "auto",
		Tiers:    []domain.Tier{{ID: "quick", Name: "Quick", Price: 29}},
	}
}

// setupTestServices installs in-memory services backed by a stub source
// serving svcs. The store starts empty.
func setupTestServices(t *testing.T, svcs ...domain.Service) *testServices {
	t.Helper()
	source := &stubSource{catalog: &domain.Catalog{
		Services:     svcs,
		FeatureNames: domain.FeatureNames{"wash": "Hand wash", "wax": "Carnauba wax"},
	}}
	ts := &testServices{
		source:   source,
		catalog:  services.NewCatalogService(source, memory.NewCatalogStore()),
		booking:  services.NewBookingService(memory.NewBookingStore()),
		settings: services.NewSettingsService(memory.NewConfigStore()),
		carousel: services.NewCarouselController(nil),
	}
	SetServices(&Services{
		Catalog:  ts.catalog,
		Booking:  ts.booking,
		Settings: ts.settings,
		Carousel: ts.carousel,
	})
	t.Cleanup(func() { SetServices(nil) })
	return ts
}

// resetFlags restores every flag to its default. Cobra keeps flag values
// between executions of the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCommandWithInput(t, "", args...)
}

func runCommandWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCommand(t, args...)
	require.NoError(t, err, out)
	return out
}
