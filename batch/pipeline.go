package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ryanm101/titlematch/cache"
	"github.com/ryanm101/titlematch/catalog"
	"github.com/ryanm101/titlematch/logging"
	"github.com/ryanm101/titlematch/match"
	"github.com/ryanm101/titlematch/metrics"
	"github.com/ryanm101/titlematch/normalize"
	"github.com/ryanm101/titlematch/provider"
	"github.com/ryanm101/titlematch/tracing"
)

// Pipeline resolves batches of external identifiers against the catalog.
// Backend cost is bounded: one provider bulk fetch and at most one catalog
// query per batch, regardless of batch size.
type Pipeline struct {
	registry *provider.Registry
	store    catalog.Store
	scorer   match.Scorer
	cache    *cache.Cache

	// ProviderTimeout and CatalogTimeout bound the two I/O phases. Zero
	// leaves the caller's context deadline in charge. On timeout the whole
	// call fails; no partial results are returned.
	ProviderTimeout time.Duration
	CatalogTimeout  time.Duration
}

// NewPipeline wires a pipeline. The cache is owned by the composition root
// and injected so tests can use a fresh instance.
func NewPipeline(registry *provider.Registry, store catalog.Store, scorer match.Scorer, c *cache.Cache) *Pipeline {
	return &Pipeline{registry: registry, store: store, scorer: scorer, cache: c}
}

// Resolve runs the full batch pipeline: validate, resolve names, one
// catalog query, assemble, cache. Validation failures reject the whole
// batch before any I/O. There are no internal retries; provider or catalog
// failures surface as errors, never partial results.
func (p *Pipeline) Resolve(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := logging.Get().With("request_id", requestID, "platform", req.Platform)

	ctx, span := tracing.StartSpan(ctx, "batch.resolve", trace.WithAttributes(
		attribute.String("batch.platform", string(req.Platform)),
		attribute.Int("batch.ids", len(req.IDs)),
	))
	defer span.End()

	prov, ids, err := p.validate(req)
	if err != nil {
		metrics.BatchRequestsTotal.WithLabelValues("rejected").Inc()
		log.Warn("batch rejected", "error", err)
		return nil, err
	}

	key := cacheKey(req, ids)
	if cached, ok := p.cache.Get(key); ok {
		metrics.CacheHitsTotal.Inc()
		metrics.BatchRequestsTotal.WithLabelValues("cached").Inc()
		log.Debug("batch served from cache", "ids", len(ids))
		return cached.(*Response), nil
	}
	metrics.CacheMissesTotal.Inc()

	names, err := p.resolveNames(ctx, prov, ids)
	if err != nil {
		metrics.BatchRequestsTotal.WithLabelValues("failed").Inc()
		log.Error("provider fetch failed", "error", err)
		return nil, err
	}

	games, err := p.queryCatalog(ctx, req.Filters, names)
	if err != nil {
		metrics.BatchRequestsTotal.WithLabelValues("failed").Inc()
		log.Error("catalog query failed", "error", err)
		return nil, err
	}

	resp := p.assemble(ids, names, games, req.Filters)

	p.cache.Set(key, resp)

	metrics.BatchRequestsTotal.WithLabelValues("resolved").Inc()
	metrics.RecordBatchDuration(start)
	log.Info("batch resolved",
		"requested", resp.TotalRequested,
		"found", resp.TotalFound,
		"duration", time.Since(start),
	)
	return resp, nil
}

// validate checks batch bounds and per-id format. Any malformed id fails
// the whole batch, naming every offender. Ids are deduplicated preserving
// first-seen order.
func (p *Pipeline) validate(req *Request) (provider.Provider, []string, error) {
	prov, err := p.registry.Resolve(req.Platform)
	if err != nil {
		return nil, nil, err
	}

	if len(req.IDs) < MinBatchSize {
		return nil, nil, ErrEmptyBatch
	}
	if len(req.IDs) > MaxBatchSize {
		return nil, nil, fmt.Errorf("%w: got %d", ErrBatchTooLarge, len(req.IDs))
	}

	seen := make(map[string]bool, len(req.IDs))
	ids := make([]string, 0, len(req.IDs))
	var malformed []string
	for _, id := range req.IDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
		if err := prov.ValidateID(id); err != nil {
			malformed = append(malformed, id)
		}
	}
	if len(malformed) > 0 {
		return nil, nil, &ValidationError{Platform: req.Platform, MalformedIDs: malformed}
	}

	return prov, ids, nil
}

// resolveNames performs the single provider bulk fetch for the batch.
func (p *Pipeline) resolveNames(ctx context.Context, prov provider.Provider, ids []string) (map[string]provider.CandidateName, error) {
	ctx, span := tracing.StartSpan(ctx, "batch.resolve_names")
	defer span.End()

	if p.ProviderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.ProviderTimeout)
		defer cancel()
	}

	fetchStart := time.Now()
	names, err := provider.ResolveNames(ctx, prov, ids)
	if err != nil {
		return nil, err
	}
	metrics.RecordProviderFetch(string(prov.ID()), fetchStart)
	return names, nil
}

// queryCatalog issues the single catalog query matching every resolved name
// at once. Ids with no known name were already excluded, so a batch where
// nothing resolved skips the store entirely.
func (p *Pipeline) queryCatalog(ctx context.Context, f Filters, names map[string]provider.CandidateName) ([]catalog.Game, error) {
	if len(names) == 0 {
		return nil, nil
	}

	ctx, span := tracing.StartSpan(ctx, "batch.catalog_query", trace.WithAttributes(
		attribute.Int("batch.terms", len(names)),
	))
	defer span.End()

	if p.CatalogTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.CatalogTimeout)
		defer cancel()
	}

	terms := make([]string, 0, len(names))
	termSet := make(map[string]bool, len(names))
	for _, c := range names {
		t := normalize.MatchKey(c.Name)
		if t == "" || termSet[t] {
			continue
		}
		termSet[t] = true
		terms = append(terms, t)
	}

	games, err := p.store.MatchMany(ctx, terms, catalog.Query{
		Emulator:           f.Emulator,
		IncludeNSFW:        f.ShowNSFW,
		MaxListingsPerGame: normalizeMaxListings(f.MaxListingsPerGame),
	})
	if err != nil {
		if !errors.Is(err, catalog.ErrQueryFailed) {
			err = fmt.Errorf("%w: %v", catalog.ErrQueryFailed, err)
		}
		return nil, err
	}
	return games, nil
}

// assemble produces one result per deduplicated id, in request order.
func (p *Pipeline) assemble(ids []string, names map[string]provider.CandidateName, games []catalog.Game, f Filters) *Response {
	byKey := make(map[string][]*catalog.Game)
	for i := range games {
		g := &games[i]
		byKey[g.MatchKey] = append(byKey[g.MatchKey], g)
	}

	resp := &Response{
		Success:        true,
		Results:        make([]Result, 0, len(ids)),
		TotalRequested: len(ids),
	}

	for _, id := range ids {
		res := Result{ID: id, Listings: []catalog.Listing{}}

		if c, ok := names[id]; ok {
			if g := p.pickGame(c.Name, byKey[normalize.MatchKey(c.Name)]); g != nil {
				res.Found = true
				res.Listings = g.Listings
				if f.Minimal {
					res.Game = g.Minimal()
				} else {
					res.Game = g
				}
			}
		}

		if res.Found {
			resp.TotalFound++
		} else {
			resp.TotalNotFound++
		}
		resp.Results = append(resp.Results, res)
	}

	return resp
}

// pickGame chooses among catalog games sharing a match key by scoring their
// titles against the provider name. Ties keep catalog order, so the choice
// is deterministic.
func (p *Pipeline) pickGame(name string, candidates []*catalog.Game) *catalog.Game {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}
	titles := make([]string, len(candidates))
	for i, g := range candidates {
		titles[i] = g.Title
	}
	ranked := match.Rank(p.scorer, name, titles)
	return candidates[ranked[0].Index]
}
