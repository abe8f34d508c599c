package driving

import "github.com/quickcast-app/quickcast/internal/core/ports/driven"

// ProviderRegistry maps provider identities to implementations.
// Registered once at process start and read-only thereafter; the
// aggregator reads it on every generation.
type ProviderRegistry interface {
	// Register adds a provider. Registering a duplicate ID fails with
	// domain.ErrAlreadyExists.
	Register(p driven.Provider) error

	// Get returns the provider with the given ID, or
	// domain.ErrUnknownProvider.
	Get(id string) (driven.Provider, error)

	// All returns every registered provider in registration order.
	All() []driven.Provider
}
