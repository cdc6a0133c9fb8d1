// Package metadata enriches catalog games with data from external metadata
// APIs. It is separate from the resolution providers, which serve offline
// bulk datasets.
package metadata

// GameMetadata represents enriched information about a game.
type GameMetadata struct {
	ID          string  // Provider specific ID (e.g. "igdb:12345")
	Name        string  // Title as known by the provider
	Description string  // Game summary/description
	ReleaseDate string  // ISO 8601 date string (approximate)
	Developer   string  // Main developer
	Publisher   string  // Main publisher
	Rating      float64 // Rating out of 100
}

// Provider defines the interface for fetching game metadata.
type Provider interface {
	// Name returns the provider name (e.g., "igdb").
	Name() string
	// Search finds games matching the query.
	Search(query string) ([]GameMetadata, error)
	// GetDetails fetches detailed metadata for a specific ID.
	GetDetails(id string) (*GameMetadata, error)
}
