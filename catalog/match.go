package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ryanm101/titlematch/metrics"
	"github.com/ryanm101/titlematch/normalize"
)

// ErrQueryFailed wraps store errors and timeouts surfaced by MatchMany.
var ErrQueryFailed = errors.New("catalog query failed")

const (
	// DefaultMaxListings is the per-game listing cap applied when a query
	// does not set one.
	DefaultMaxListings = 1
	// MaxListingsCap is the hard upper bound on listings per game.
	MaxListingsCap = 50
)

// MatchMany resolves a batch of match terms against the catalog in exactly
// one SQL query, regardless of how many terms are passed. Matching is over
// the precomputed match_key column, filtered to approved games, with
// optional emulator and NSFW restrictions. Listings are capped per game,
// newest first.
func (db *DB) MatchMany(ctx context.Context, terms []string, q Query) ([]Game, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	maxListings := q.MaxListingsPerGame
	if maxListings < 1 {
		maxListings = DefaultMaxListings
	}
	if maxListings > MaxListingsCap {
		maxListings = MaxListingsCap
	}

	placeholders := strings.Repeat("?,", len(terms))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(terms)+3)

	join := "LEFT JOIN listings l ON l.game_id = g.id"
	if q.Emulator != "" {
		// An emulator filter also restricts the game set: a game without a
		// matching listing is not a match.
		join = "JOIN listings l ON l.game_id = g.id AND l.emulator = ?"
		args = append(args, q.Emulator)
	}

	where := "g.match_key IN (" + placeholders + ") AND g.approval_status = ?"
	for _, t := range terms {
		args = append(args, t)
	}
	args = append(args, StatusApproved)

	if !q.IncludeNSFW {
		where += " AND g.nsfw = 0"
	}

	query := fmt.Sprintf(`
		SELECT g.id, g.title, g.match_key, g.system_id, g.approval_status, g.nsfw,
		       l.id, l.emulator, l.url, l.created_at
		FROM games g
		%s
		WHERE %s
		ORDER BY g.id, l.created_at DESC, l.id DESC
	`, join, where)

	metrics.CatalogQueriesTotal.Inc()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer func() { _ = rows.Close() }()

	games := make(map[int64]*Game)
	var order []int64

	for rows.Next() {
		var g Game
		var nsfw int
		var lID sql.NullInt64
		var lEmulator, lURL sql.NullString
		var lCreated sql.NullTime

		if err := rows.Scan(
			&g.ID, &g.Title, &g.MatchKey, &g.SystemID, &g.ApprovalStatus, &nsfw,
			&lID, &lEmulator, &lURL, &lCreated,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}
		g.NSFW = nsfw != 0

		existing, ok := games[g.ID]
		if !ok {
			g.Listings = []Listing{}
			games[g.ID] = &g
			order = append(order, g.ID)
			existing = &g
		}

		if lID.Valid && len(existing.Listings) < maxListings {
			existing.Listings = append(existing.Listings, Listing{
				ID:        lID.Int64,
				GameID:    existing.ID,
				Emulator:  lEmulator.String,
				URL:       lURL.String,
				CreatedAt: lCreated.Time,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	out := make([]Game, 0, len(order))
	for _, id := range order {
		out = append(out, *games[id])
	}
	return out, nil
}

// AddGame inserts a game, computing its match key from the title. Intended
// for catalog maintenance and tests; the resolution pipeline never writes.
func (db *DB) AddGame(ctx context.Context, title, systemID, approvalStatus string, nsfw bool) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO games (title, match_key, system_id, approval_status, nsfw)
		VALUES (?, ?, ?, ?, ?)
	`, title, normalize.MatchKey(title), systemID, approvalStatus, boolToInt(nsfw))
	if err != nil {
		return 0, fmt.Errorf("failed to insert game: %w", err)
	}
	return res.LastInsertId()
}

// AddListing attaches a listing to a game.
func (db *DB) AddListing(ctx context.Context, gameID int64, emulator, url string) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO listings (game_id, emulator, url)
		VALUES (?, ?, ?)
	`, gameID, emulator, url)
	if err != nil {
		return 0, fmt.Errorf("failed to insert listing: %w", err)
	}
	return res.LastInsertId()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
