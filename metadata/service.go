package metadata

import (
	"context"
	"fmt"

	"github.com/ryanm101/titlematch/catalog"
	"github.com/ryanm101/titlematch/match"
)

// Service enriches catalog games with provider metadata.
type Service struct {
	db       *catalog.DB
	provider Provider
	scorer   match.Scorer
}

// NewService creates a new enrichment service. The scorer picks the best
// provider result for a title instead of trusting provider result order.
func NewService(db *catalog.DB, p Provider, scorer match.Scorer) *Service {
	return &Service{db: db, provider: p, scorer: scorer}
}

// EnrichGame looks the game's title up with the metadata provider, selects
// the closest result, and persists its details.
func (s *Service) EnrichGame(ctx context.Context, gameID int64) error {
	title, err := s.db.GetGameTitle(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to load game %d: %w", gameID, err)
	}

	results, err := s.provider.Search(title)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		return fmt.Errorf("no results found for %q", title)
	}

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	best := results[match.Rank(s.scorer, title, names)[0].Index]

	details, err := s.provider.GetDetails(best.ID)
	if err != nil {
		return fmt.Errorf("failed to get details: %w", err)
	}

	err = s.db.SetGameMetadata(ctx, catalog.GameMetadata{
		GameID:      gameID,
		ProviderID:  details.ID,
		Description: details.Description,
		ReleaseDate: details.ReleaseDate,
		Developer:   details.Developer,
		Publisher:   details.Publisher,
		Rating:      details.Rating,
	})
	if err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	return nil
}
