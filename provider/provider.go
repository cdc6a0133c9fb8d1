// Package provider abstracts per-platform game identifier datasets behind a
// fixed capability interface with a registration table.
package provider

import (
	"context"
	"fmt"
	"time"
)

// Platform identifies one external distribution platform. The set is closed
// over the platforms the catalog understands; new ones are added here and
// registered in a Registry.
type Platform string

const (
	PlatformSwitch Platform = "switch"
	Platform3DS    Platform = "threeds"
	PlatformSteam  Platform = "steam"
)

// ParsePlatform validates a raw platform id string.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformSwitch, Platform3DS, PlatformSteam:
		return Platform(s), nil
	}
	return "", &UnknownPlatformError{ID: s}
}

// CandidateName is one row of a provider's bulk dataset: an external
// identifier and the title it maps to.
type CandidateName struct {
	ExternalID  string
	Name        string
	Provider    Platform
	Region      string
	ProductCode string
}

// Stats describes a provider's dataset, for providers that support it.
type Stats struct {
	TotalGames  int
	CacheStatus string
	LastUpdated time.Time
}

// Provider exposes one platform's identifier-to-name dataset.
type Provider interface {
	// ID returns the platform this provider serves.
	ID() Platform
	// Label is the human-readable platform name.
	Label() string
	// Description explains what identifiers the provider resolves.
	Description() string
	// ValidateID reports whether raw is a well-formed identifier for this
	// platform. Malformed ids fail batch requests closed.
	ValidateID(raw string) error
	// Candidates returns the full (externalId, name) dataset.
	Candidates(ctx context.Context) ([]CandidateName, error)
	// SupportsStats reports whether Stats is available.
	SupportsStats() bool
	// Stats returns dataset statistics. Providers that report
	// SupportsStats() == false return ErrStatsUnavailable.
	Stats(ctx context.Context) (*Stats, error)
}

// Registry resolves platforms to providers.
type Registry struct {
	providers map[Platform]Provider
	order     []Platform
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[Platform]Provider)}
}

// Register adds a provider. Registering the same platform twice replaces
// the earlier provider.
func (r *Registry) Register(p Provider) {
	if _, ok := r.providers[p.ID()]; !ok {
		r.order = append(r.order, p.ID())
	}
	r.providers[p.ID()] = p
}

// Resolve returns the provider for a platform. An unknown platform is a
// validation error, never a silent fallback.
func (r *Registry) Resolve(platform Platform) (Provider, error) {
	p, ok := r.providers[platform]
	if !ok {
		return nil, &UnknownPlatformError{ID: string(platform)}
	}
	return p, nil
}

// ResolveNames performs one bulk dataset fetch and returns names for exactly
// the requested ids. Ids absent from the dataset are simply missing from the
// returned map; that is a result state, not an error.
func ResolveNames(ctx context.Context, p Provider, ids []string) (map[string]CandidateName, error) {
	candidates, err := p.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProviderUnavailable, p.ID(), err)
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	found := make(map[string]CandidateName, len(ids))
	for _, c := range candidates {
		if want[c.ExternalID] {
			found[c.ExternalID] = c
		}
	}
	return found, nil
}

// Platforms returns the registered platforms in registration order.
func (r *Registry) Platforms() []Platform {
	out := make([]Platform, len(r.order))
	copy(out, r.order)
	return out
}
