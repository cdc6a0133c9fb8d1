// Package search implements free-text game lookup against one platform's
// provider dataset.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ryanm101/titlematch/match"
	"github.com/ryanm101/titlematch/metrics"
	"github.com/ryanm101/titlematch/normalize"
	"github.com/ryanm101/titlematch/provider"
)

// Query length and result count bounds.
const (
	MinQueryLength    = 2
	DefaultMaxResults = 10
	MaxResults        = 20
)

// ErrQueryTooShort rejects queries below MinQueryLength.
var ErrQueryTooShort = errors.New("query too short")

// MatchResult is one scored candidate for a free-text query.
type MatchResult struct {
	ExternalID      string            `json:"external_id"`
	Name            string            `json:"name"`
	NormalizedTitle string            `json:"normalized_title"`
	Score           int               `json:"score"`
	Region          string            `json:"region,omitempty"`
	ProductCode     string            `json:"product_code,omitempty"`
	Provider        provider.Platform `json:"provider"`
}

// Response is the interactive search envelope. BestMatch is always the top
// of the ranked list, even at a low score; callers are responsible for
// displaying low-confidence matches clearly.
type Response struct {
	Results   []MatchResult `json:"results"`
	BestMatch *MatchResult  `json:"best_match"`
}

// Service ranks provider candidates against free-text queries.
type Service struct {
	registry *provider.Registry
	scorer   match.Scorer

	// FetchTimeout bounds the provider bulk fetch. Zero means the caller's
	// context deadline applies unchanged.
	FetchTimeout time.Duration
}

// NewService returns a search service over the given registry and scorer.
func NewService(registry *provider.Registry, scorer match.Scorer) *Service {
	return &Service{registry: registry, scorer: scorer}
}

// Search returns up to maxResults candidates from the platform's provider,
// ranked by similarity to query. maxResults is clamped to [1,20]; zero
// selects the default.
func (s *Service) Search(ctx context.Context, platform provider.Platform, query string, maxResults int) (*Response, error) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, fmt.Errorf("%w: need at least %d characters", ErrQueryTooShort, MinQueryLength)
	}

	p, err := s.registry.Resolve(platform)
	if err != nil {
		return nil, err
	}

	if maxResults < 1 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxResults {
		maxResults = MaxResults
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(platform)).Inc()

	fetchCtx := ctx
	if s.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.FetchTimeout)
		defer cancel()
	}

	fetchStart := time.Now()
	candidates, err := p.Candidates(fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", provider.ErrProviderUnavailable, platform, err)
	}
	metrics.RecordProviderFetch(string(platform), fetchStart)

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}

	ranked := match.Rank(s.scorer, query, names)
	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	results := make([]MatchResult, len(ranked))
	for i, r := range ranked {
		c := candidates[r.Index]
		results[i] = MatchResult{
			ExternalID:      c.ExternalID,
			Name:            c.Name,
			NormalizedTitle: normalize.MatchKey(c.Name),
			Score:           r.Score,
			Region:          c.Region,
			ProductCode:     c.ProductCode,
			Provider:        c.Provider,
		}
	}

	resp := &Response{Results: results}
	if len(results) > 0 {
		resp.BestMatch = &results[0]
	}
	return resp, nil
}

// Best returns the single top match for query, or nil when the provider's
// dataset is empty.
func (s *Service) Best(ctx context.Context, platform provider.Platform, query string) (*MatchResult, error) {
	resp, err := s.Search(ctx, platform, query, 1)
	if err != nil {
		return nil, err
	}
	return resp.BestMatch, nil
}

// Stats returns the provider's dataset statistics. ok is false when the
// provider does not support stats; that is not an error.
func (s *Service) Stats(ctx context.Context, platform provider.Platform) (stats *provider.Stats, ok bool, err error) {
	p, err := s.registry.Resolve(platform)
	if err != nil {
		return nil, false, err
	}
	if !p.SupportsStats() {
		return nil, false, nil
	}
	stats, err = p.Stats(ctx)
	if err != nil {
		return nil, false, err
	}
	return stats, true, nil
}
