package catalog

import (
	"context"
	"time"
)

// Approval states for catalog games. Only approved games are returned by
// MatchMany.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

// Game is a canonical catalog entry. It is owned and mutated by the catalog
// store only; resolution code treats it as read-only.
type Game struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	MatchKey       string    `json:"-"`
	SystemID       string    `json:"system_id"`
	ApprovalStatus string    `json:"approval_status"`
	NSFW           bool      `json:"nsfw"`
	Listings       []Listing `json:"listings"`
}

// Listing is one download/play listing attached to a game.
type Listing struct {
	ID        int64     `json:"id"`
	GameID    int64     `json:"game_id"`
	Emulator  string    `json:"emulator"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MinimalGame is the reduced projection returned when a batch request asks
// for minimal output.
type MinimalGame struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Minimal returns the reduced projection of g.
func (g *Game) Minimal() MinimalGame {
	return MinimalGame{ID: g.ID, Title: g.Title}
}

// Query restricts a MatchMany call. Zero values mean no restriction apart
// from the always-applied approval filter.
type Query struct {
	// Emulator, when set, keeps only listings for that emulator and only
	// games that have at least one such listing.
	Emulator string
	// IncludeNSFW includes games flagged not-safe-for-work.
	IncludeNSFW bool
	// MaxListingsPerGame caps listings per returned game, newest first.
	// Values outside [1,50] are clamped.
	MaxListingsPerGame int
}

// Store is the read-side contract the resolution pipeline depends on.
// MatchMany must resolve a whole batch of match terms with a single
// backend query.
type Store interface {
	MatchMany(ctx context.Context, terms []string, q Query) ([]Game, error)
}
