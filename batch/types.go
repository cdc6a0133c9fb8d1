// Package batch implements bulk identifier resolution against the game
// catalog with bounded backend cost.
package batch

import (
	"github.com/ryanm101/titlematch/catalog"
	"github.com/ryanm101/titlematch/provider"
)

// Batch size bounds.
const (
	MinBatchSize = 1
	MaxBatchSize = 1000
)

// Filters restrict and shape a batch resolution. The zero value is the
// default request shape.
type Filters struct {
	// Emulator keeps only games with a listing for this emulator.
	Emulator string `json:"emulator,omitempty"`
	// MaxListingsPerGame caps listings per matched game, newest first.
	// Zero selects the default of 1; values above 50 are clamped.
	MaxListingsPerGame int `json:"max_listings_per_game,omitempty"`
	// ShowNSFW includes games flagged not-safe-for-work.
	ShowNSFW bool `json:"show_nsfw,omitempty"`
	// Minimal returns the reduced game projection.
	Minimal bool `json:"minimal,omitempty"`
}

// Request is one batch resolution call. IDs are external identifiers of a
// single platform.
type Request struct {
	Platform provider.Platform `json:"platform"`
	IDs      []string          `json:"ids"`
	Filters  Filters           `json:"filters"`
}

// Result is the outcome for one requested identifier. Game holds a
// *catalog.Game, a catalog.MinimalGame when the request asked for minimal
// output, or nil when the id was not found. "Not found" is a result state,
// never an error.
type Result struct {
	ID       string            `json:"id"`
	Found    bool              `json:"found"`
	Game     any               `json:"game"`
	Listings []catalog.Listing `json:"listings"`
}

// Response is the batch envelope.
type Response struct {
	Success        bool     `json:"success"`
	Results        []Result `json:"results,omitempty"`
	TotalRequested int      `json:"total_requested"`
	TotalFound     int      `json:"total_found"`
	TotalNotFound  int      `json:"total_not_found"`

	// Code and Error are set only on failure. MalformedIDs names the ids
	// that failed format validation.
	Code         string   `json:"code,omitempty"`
	Error        string   `json:"error,omitempty"`
	MalformedIDs []string `json:"malformed_ids,omitempty"`
}
