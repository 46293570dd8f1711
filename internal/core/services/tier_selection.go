package services

import (
	"slices"
	"sync"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driving"
)

// Ensure TierSelectionStore implements the interface.
var _ driving.TierSelectionStore = (*TierSelectionStore)(nil)

// TierSelectionStore keeps the carousel index and committed tier per service.
//
// Mutations are applied in call order. Observers run synchronously after
// the lock is released, so an observer may call back into the store.
type TierSelectionStore struct {
	mu        sync.Mutex
	states    map[string]domain.NavigationState
	observers map[int]driving.Observer
	nextID    int
}

// NewTierSelectionStore creates an empty store.
func NewTierSelectionStore() *TierSelectionStore {
	return &TierSelectionStore{
		states:    make(map[string]domain.NavigationState),
		observers: make(map[int]driving.Observer),
	}
}

type change struct {
	serviceID string
	state     domain.NavigationState
}

// InitializeTierPositions adds {0, ""} for every service without state.
func (s *TierSelectionStore) InitializeTierPositions(services []domain.Service) {
	s.mu.Lock()
	var changes []change
	for i := range services {
		id := services[i].ID
		if _, ok := s.states[id]; ok {
			continue
		}
		st := domain.NavigationState{}
		s.states[id] = st
		changes = append(changes, change{id, st})
	}
	s.mu.Unlock()

	s.notify(changes...)
}

// GoLeft decrements the index unless it is already 0.
func (s *TierSelectionStore) GoLeft(serviceID string) {
	s.mu.Lock()
	st, ok := s.states[serviceID]
	if !ok || st.CurrentIndex <= 0 {
		s.mu.Unlock()
		return
	}
	st.CurrentIndex--
	s.states[serviceID] = st
	s.mu.Unlock()

	s.notify(change{serviceID, st})
}

// GoRight increments the index unless it is already at the last tier.
func (s *TierSelectionStore) GoRight(serviceID string, tiers []domain.Tier) {
	s.mu.Lock()
	st, ok := s.states[serviceID]
	if !ok || st.CurrentIndex >= len(tiers)-1 {
		s.mu.Unlock()
		return
	}
	st.CurrentIndex++
	s.states[serviceID] = st
	s.mu.Unlock()

	s.notify(change{serviceID, st})
}

// SelectTier records the tier at tierIndex as the service's selection.
// CurrentIndex is left untouched. Both callbacks run after the state is
// updated, service first.
func (s *TierSelectionStore) SelectTier(
	serviceID string,
	tierIndex int,
	services []domain.Service,
	onServiceSelected func(serviceID string),
	onTierSelected func(serviceID, tierID string),
) {
	svc, ok := domain.FindService(services, serviceID)
	if !ok {
		return
	}
	tier, ok := svc.TierAt(tierIndex)
	if !ok {
		return
	}

	s.mu.Lock()
	st, ok := s.states[serviceID]
	if !ok {
		s.mu.Unlock()
		return
	}
	st.SelectedTierID = tier.ID
	s.states[serviceID] = st
	s.mu.Unlock()

	s.notify(change{serviceID, st})

	if onServiceSelected != nil {
		onServiceSelected(serviceID)
	}
	if onTierSelected != nil {
		onTierSelected(serviceID, tier.ID)
	}
}

// State returns a copy of the state for a service.
func (s *TierSelectionStore) State(serviceID string) (domain.NavigationState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[serviceID]
	return st, ok
}

// Subscribe registers an observer. Calling the returned function more
// than once is harmless.
func (s *TierSelectionStore) Subscribe(observer driving.Observer) func() {
	if observer == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = observer
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Clamp keeps every known service within 0..len(tiers)-1 (0 for an empty
// list) and drops a SelectedTierID that no longer names one of its tiers.
func (s *TierSelectionStore) Clamp(services []domain.Service) {
	s.mu.Lock()
	var changes []change
	for i := range services {
		svc := &services[i]
		st, ok := s.states[svc.ID]
		if !ok {
			continue
		}
		next := st
		next.CurrentIndex = min(max(st.CurrentIndex, 0), max(svc.TierCount()-1, 0))
		if next.SelectedTierID != "" && !slices.ContainsFunc(svc.Tiers, func(t domain.Tier) bool {
			return t.ID == next.SelectedTierID
		}) {
			next.SelectedTierID = ""
		}
		if next == st {
			continue
		}
		s.states[svc.ID] = next
		changes = append(changes, change{svc.ID, next})
	}
	s.mu.Unlock()

	s.notify(changes...)
}

// Prune removes state for services missing from services.
func (s *TierSelectionStore) Prune(services []domain.Service) {
	keep := make(map[string]struct{}, len(services))
	for i := range services {
		keep[services[i].ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.states {
		if _, ok := keep[id]; !ok {
			delete(s.states, id)
		}
	}
}

// Reset removes all state. Observers stay registered.
func (s *TierSelectionStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[string]domain.NavigationState)
}

func (s *TierSelectionStore) notify(changes ...change) {
	if len(changes) == 0 {
		return
	}

	s.mu.Lock()
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	observers := make([]driving.Observer, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		observers = append(observers, s.observers[id])
	}
	s.mu.Unlock()

	for _, c := range changes {
		for _, o := range observers {
			o(c.serviceID, c.state)
		}
	}
}
