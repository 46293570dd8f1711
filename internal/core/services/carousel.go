package services

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
	"github.com/custodia-labs/tierdeck/internal/logger"
)

// Ensure CarouselController implements the interface.
var _ driving.CarouselController = (*CarouselController)(nil)

// CarouselController turns store state into renderable slots and forwards
// navigation and selection to the store.
type CarouselController struct {
	store driving.TierSelectionStore

	mu        sync.RWMutex
	services  []domain.Service
	listeners map[int]driving.SelectionListener
	nextID    int
}

// NewCarouselController creates a controller over store.
// A nil store gets a fresh TierSelectionStore.
func NewCarouselController(store driving.TierSelectionStore) *CarouselController {
	if store == nil {
		store = NewTierSelectionStore()
	}
	return &CarouselController{
		store:     store,
		listeners: make(map[int]driving.SelectionListener),
	}
}

// Store returns the underlying selection store.
func (c *CarouselController) Store() driving.TierSelectionStore {
	return c.store
}

// SetServices replaces the service list and syncs the store with it:
// new services start at index 0, surviving ones are clamped to their
// current tiers and removed ones are dropped.
func (c *CarouselController) SetServices(services []domain.Service) {
	cp := make([]domain.Service, len(services))
	copy(cp, services)

	c.mu.Lock()
	c.services = cp
	c.mu.Unlock()

	c.store.InitializeTierPositions(cp)
	c.store.Clamp(cp)
	c.store.Prune(cp)
}

// Services returns a copy of the current service list.
func (c *CarouselController) Services() []domain.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cp := make([]domain.Service, len(c.services))
	copy(cp, c.services)
	return cp
}

// ActiveService resolves the service to show for selectedID.
func (c *CarouselController) ActiveService(selectedID string) (*domain.Service, bool) {
	return domain.ResolveActiveService(c.Services(), selectedID)
}

// RenderableSlots builds one slot per position, dummy slots included.
func (c *CarouselController) RenderableSlots(serviceID string, tiers []domain.Tier) []domain.Slot {
	st, _ := c.store.State(serviceID)
	count := len(tiers)

	slots := make([]domain.Slot, 0, domain.SlotCount(count))
	for i := 0; i < domain.SlotCount(count); i++ {
		slot := domain.Slot{
			Index:     i,
			Role:      domain.Position(st.CurrentIndex, i, count),
			Dummy:     domain.IsDummySlot(i, count),
			TierIndex: -1,
		}
		if !slot.Dummy {
			tier := tiers[i-1]
			slot.Tier = &tier
			slot.TierIndex = i - 1
			slot.IsSelected = st.HasSelection() && tier.ID == st.SelectedTierID
		}
		slots = append(slots, slot)
	}
	return slots
}

// Indicators returns the dot row. A single tier gets no dots.
func (c *CarouselController) Indicators(serviceID string, tiers []domain.Tier) []domain.Indicator {
	if len(tiers) <= 1 {
		return nil
	}
	st, _ := c.store.State(serviceID)
	dots := make([]domain.Indicator, len(tiers))
	for i := range tiers {
		dots[i] = domain.Indicator{TierIndex: i, Active: i == st.CurrentIndex}
	}
	return dots
}

// CenterTier returns the tier at the current index.
func (c *CarouselController) CenterTier(serviceID string, tiers []domain.Tier) (domain.Tier, bool) {
	st, ok := c.store.State(serviceID)
	if !ok || st.CurrentIndex < 0 || st.CurrentIndex >= len(tiers) {
		return domain.Tier{}, false
	}
	return tiers[st.CurrentIndex], true
}

// State returns the navigation state for a service.
func (c *CarouselController) State(serviceID string) (domain.NavigationState, bool) {
	return c.store.State(serviceID)
}

// CanGoLeft reports whether the index can decrease.
func (c *CarouselController) CanGoLeft(serviceID string) bool {
	st, _ := c.store.State(serviceID)
	return st.CurrentIndex > 0
}

// CanGoRight reports whether the index can increase.
func (c *CarouselController) CanGoRight(serviceID string, tiers []domain.Tier) bool {
	st, _ := c.store.State(serviceID)
	return st.CurrentIndex < len(tiers)-1
}

// GoLeft moves the carousel one tier left.
func (c *CarouselController) GoLeft(serviceID string) {
	c.store.GoLeft(serviceID)
}

// GoRight moves the carousel one tier right.
func (c *CarouselController) GoRight(serviceID string, tiers []domain.Tier) {
	c.store.GoRight(serviceID, tiers)
}

// SelectTier commits the tier at tierIndex and returns the selection.
// Listeners registered with OnSelection receive the same value.
func (c *CarouselController) SelectTier(serviceID string, tierIndex int) (domain.Selection, bool) {
	var (
		sel      domain.Selection
		selected bool
	)
	c.store.SelectTier(serviceID, tierIndex, c.Services(), nil, func(svcID, tierID string) {
		sel = domain.Selection{ServiceID: svcID, TierID: tierID, TierIndex: tierIndex}
		selected = true
	})
	if !selected {
		return domain.Selection{}, false
	}

	for _, l := range c.snapshotListeners() {
		l(sel)
	}
	return sel, true
}

// OnSelection registers a listener for committed selections.
func (c *CarouselController) OnSelection(listener driving.SelectionListener) func() {
	if listener == nil {
		return func() {}
	}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *CarouselController) snapshotListeners() []driving.SelectionListener {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]driving.SelectionListener, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.listeners[id])
	}
	return out
}

// TraceCarousel logs every navigation change and committed selection of c
// through the verbose logger. It returns a function that stops tracing.
func TraceCarousel(c *CarouselController) (stop func()) {
	stopNav := c.Store().Subscribe(func(serviceID string, st domain.NavigationState) {
		logger.L().Debug("carousel moved",
			zap.String("service", serviceID),
			zap.Int("index", st.CurrentIndex),
			zap.String("selected", st.SelectedTierID))
	})
	stopSel := c.OnSelection(func(sel domain.Selection) {
		logger.L().Info("tier selected",
			zap.String("service", sel.ServiceID),
			zap.String("tier", sel.TierID),
			zap.Int("index", sel.TierIndex))
	})
	return func() {
		stopNav()
		stopSel()
	}
}
