package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/views/bookings"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/views/carousel"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/views/services"
	"github.com/custodia-labs/tierdeck/internal/core/domain"
	coreservices "github.com/custodia-labs/tierdeck/internal/core/services"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView     *menu.View
	servicesView *services.View
	carouselView *carousel.View
	bookingsView *bookings.View
	statusBar    *status.Bar

	// catalog holds the services from the last successful load.
	catalog []domain.Service

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	carouselView := carousel.NewView(s, ports.Carousel, ports.Booking)
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			carouselView.SetDisplay(settings.Display)
		} else {
			logger.Warn("using default display settings: %v", err)
		}
	}

	statusBar := status.NewBar(s, km)
	statusBar.SetState(status.StateLoading)

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		menuView:     menu.NewView(s),
		servicesView: services.NewView(s, ports.Carousel),
		carouselView: carouselView,
		bookingsView: bookings.NewView(s, ports.Booking),
		statusBar:    statusBar,
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx == nil {
		return a
	}
	a.ctx = ctx
	a.carouselView.SetContext(ctx)
	a.bookingsView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("tierdeck"),
		a.loadCatalog(),
	)
}

// loadCatalog reads the stored catalog, fetching it from the source when
// the store is still empty, and syncs the carousel with it.
func (a *App) loadCatalog() tea.Cmd {
	ctx := a.ctx
	ports := a.ports
	return func() tea.Msg {
		list, err := ports.Catalog.List(ctx)
		if err != nil {
			return messages.CatalogLoaded{Err: err}
		}
		if len(list) == 0 && ports.Catalog.SourceName() != "" {
			list, err = ports.Catalog.Refresh(ctx)
			if err != nil {
				return messages.CatalogLoaded{Err: err}
			}
		}
		names, err := ports.Catalog.FeatureNames(ctx)
		if err != nil {
			return messages.CatalogLoaded{Err: err}
		}

		ports.Carousel.SetServices(list)
		if _, err := coreservices.RestoreSelections(ctx, ports.Carousel, ports.Booking); err != nil {
			logger.Warn("restoring selections: %v", err)
		}
		return messages.CatalogLoaded{Services: list, FeatureNames: names}
	}
}

func (a *App) refreshCatalog() tea.Cmd {
	ctx := a.ctx
	catalog := a.ports.Catalog
	return func() tea.Msg {
		_, err := catalog.Refresh(ctx)
		return messages.CatalogChanged{Err: err}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.CatalogLoaded:
		a.applyCatalog(msg)
		a.servicesView, cmd = a.servicesView.Update(msg)
		return a, cmd

	case messages.ReloadRequested:
		if a.ports.Catalog.SourceName() == "" {
			return a, a.loadCatalog()
		}
		a.statusBar.SetState(status.StateLoading)
		return a, a.refreshCatalog()

	case messages.CatalogChanged:
		if msg.Err != nil {
			return a, func() tea.Msg {
				return messages.CatalogLoaded{Err: msg.Err}
			}
		}
		return a, a.loadCatalog()

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.ServiceSelected:
		if svc := a.findService(msg.ServiceID); svc != nil {
			a.openCarousel(svc, messages.ViewServices)
		}
		return a, nil

	case messages.TierSelected:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.statusBar.SetState(status.StateBooked)
		a.statusBar.SetMessage(a.bookedMessage(msg.Selection))
		return a, nil

	case messages.BookingsLoaded, messages.BookingsCleared:
		a.bookingsView, cmd = a.bookingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		if msg.Err != nil {
			a.statusBar.SetMessage(msg.Err.Error())
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	k := msg.String()

	// Global quit with ctrl+c
	if k == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		switch {
		case keymap.Matches(k, a.keymap.Back):
			a.currentView = messages.ViewMenu
		case keymap.Matches(k, a.keymap.Quit):
			return a, tea.Quit
		}
		return a, nil
	}

	if keymap.Matches(k, a.keymap.Quit) {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewServices:
		a.servicesView, cmd = a.servicesView.Update(msg)
	case messages.ViewCarousel:
		a.carouselView, cmd = a.carouselView.Update(msg)
	case messages.ViewBookings:
		a.bookingsView, cmd = a.bookingsView.Update(msg)
	case messages.ViewMenu, messages.ViewHelp:
		// Handled above
	}
	return a, cmd
}

// applyCatalog stores a freshly loaded catalog and updates dependent views.
func (a *App) applyCatalog(msg messages.CatalogLoaded) {
	if msg.Err != nil {
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return
	}

	a.err = nil
	a.catalog = msg.Services
	a.carouselView.SetFeatureNames(msg.FeatureNames)
	a.bookingsView.SetServices(msg.Services)
	a.menuView.SetServiceCount(len(msg.Services))
	a.statusBar.SetServiceCount(len(msg.Services))
	a.statusBar.SetState(status.StateReady)

	// Point the carousel at the reloaded copy of its service, or leave it
	// when the service is gone.
	if shown := a.carouselView.Service(); shown != nil {
		if svc := a.findService(shown.ID); svc != nil {
			a.carouselView.SetService(svc, a.carouselBackTo())
			if a.currentView == messages.ViewCarousel {
				a.statusBar.SetState(status.StateBrowsing)
			}
		} else {
			a.carouselView.SetService(nil, messages.ViewServices)
			if a.currentView == messages.ViewCarousel {
				a.currentView = messages.ViewServices
			}
		}
	}
}

func (a *App) switchView(view messages.ViewType) tea.Cmd {
	switch view {
	case messages.ViewServices:
		// A catalog with a single service goes straight to its tiers.
		if svc, ok := a.ports.Carousel.ActiveService(""); ok {
			if found := a.findService(svc.ID); found != nil {
				a.openCarousel(found, messages.ViewMenu)
				return nil
			}
		}
		a.currentView = messages.ViewServices
		a.statusBar.SetState(status.StateReady)
	case messages.ViewCarousel:
		if a.carouselView.Service() != nil {
			a.currentView = messages.ViewCarousel
			a.statusBar.SetState(status.StateBrowsing)
		}
	case messages.ViewBookings:
		a.currentView = messages.ViewBookings
		a.statusBar.SetState(status.StateReady)
		return a.bookingsView.Init()
	case messages.ViewMenu, messages.ViewHelp:
		a.currentView = view
		if a.err == nil {
			a.statusBar.SetState(status.StateReady)
		}
	}
	return nil
}

func (a *App) openCarousel(svc *domain.Service, backTo messages.ViewType) {
	a.carouselView.SetService(svc, backTo)
	a.currentView = messages.ViewCarousel
	a.statusBar.SetState(status.StateBrowsing)
}

// carouselBackTo keeps the auto-opened single service returning to the menu.
func (a *App) carouselBackTo() messages.ViewType {
	if len(a.catalog) == 1 {
		return messages.ViewMenu
	}
	return messages.ViewServices
}

func (a *App) findService(id string) *domain.Service {
	for i := range a.catalog {
		if a.catalog[i].ID == id {
			return &a.catalog[i]
		}
	}
	return nil
}

func (a *App) bookedMessage(sel domain.Selection) string {
	svc := a.findService(sel.ServiceID)
	if svc == nil {
		return fmt.Sprintf("Booked %s", sel.TierID)
	}
	tier, ok := svc.TierAt(sel.TierIndex)
	if !ok {
		return fmt.Sprintf("Booked %s for %s", sel.TierID, svc.Name)
	}
	return fmt.Sprintf("Booked %s for %s at %s", tier.Name, svc.Name, domain.FormatPrice(tier.Price))
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewServices:
		body = a.servicesView.View()
	case messages.ViewCarousel:
		body = a.carouselView.View()
	case messages.ViewBookings:
		body = a.bookingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return body + "\n\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n")
	for _, group := range a.keymap.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// NewProgram creates the Bubbletea program for the app. The caller may use
// the program to Send messages from outside the event loop.
func (a *App) NewProgram(opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.ctx)}, opts...)
	return tea.NewProgram(a, opts...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.NewProgram().Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Catalog returns the services from the last successful load.
func (a *App) Catalog() []domain.Service {
	return a.catalog
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Leave a row for the status bar
	viewHeight := max(height-2, 0)
	a.menuView.SetDimensions(width, viewHeight)
	a.servicesView.SetDimensions(width, viewHeight)
	a.carouselView.SetDimensions(width, viewHeight)
	a.bookingsView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
}
