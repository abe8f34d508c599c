package services

import (
	"fmt"
	"sync"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/core/ports/driving"
)

// Ensure ProviderRegistry implements the interface.
var _ driving.ProviderRegistry = (*ProviderRegistry)(nil)

// ProviderRegistry maps provider IDs to implementations. Registration
// happens once at process start; reads afterwards are lock-cheap and the
// registration order is preserved for deterministic fan-out logging.
type ProviderRegistry struct {
	mu    sync.RWMutex
	byID  map[string]driven.Provider
	order []driven.Provider
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		byID: make(map[string]driven.Provider),
	}
}

// Register adds a provider.
func (r *ProviderRegistry) Register(p driven.Provider) error {
	if p == nil || p.ID() == "" {
		return fmt.Errorf("%w: provider with empty ID", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID()]; ok {
		return fmt.Errorf("%w: provider %q", domain.ErrAlreadyExists, p.ID())
	}
	r.byID[p.ID()] = p
	r.order = append(r.order, p)
	return nil
}

// Get returns the provider with the given ID.
func (r *ProviderRegistry) Get(id string) (driven.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, id)
	}
	return p, nil
}

// All returns every registered provider in registration order.
func (r *ProviderRegistry) All() []driven.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]driven.Provider, len(r.order))
	copy(out, r.order)
	return out
}
