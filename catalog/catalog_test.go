package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenMigrates(t *testing.T) {
	db := openTestDB(t)

	var version int
	err := db.Conn().QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	for _, table := range []string{"games", "listings", "game_metadata"} {
		var name string
		err := db.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		db, err := Open(ctx, path)
		require.NoError(t, err, "open attempt %d", i+1)
		_ = db.Close()
	}
}

func TestMatchManyBasics(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.AddGame(ctx, "Mario Kart 8 Deluxe", "switch", StatusApproved, false)
	require.NoError(t, err)
	_, err = db.AddGame(ctx, "Pending Game", "switch", StatusPending, false)
	require.NoError(t, err)

	games, err := db.MatchMany(ctx, []string{"mario kart 8 deluxe", "pending game"}, Query{})
	require.NoError(t, err)
	require.Len(t, games, 1, "pending games are filtered out")
	assert.Equal(t, id, games[0].ID)
	assert.Equal(t, "Mario Kart 8 Deluxe", games[0].Title)
	assert.Equal(t, "mario kart 8 deluxe", games[0].MatchKey)
}

func TestMatchManyCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.AddGame(ctx, "CELESTE", "steam", StatusApproved, false)
	require.NoError(t, err)

	// Match keys are already folded, so the stored uppercase title matches
	// a lowercase term.
	games, err := db.MatchMany(ctx, []string{"celeste"}, Query{})
	require.NoError(t, err)
	require.Len(t, games, 1)
}

func TestMatchManyNSFWFilter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.AddGame(ctx, "Tame Game", "steam", StatusApproved, false)
	require.NoError(t, err)
	_, err = db.AddGame(ctx, "Spicy Game", "steam", StatusApproved, true)
	require.NoError(t, err)

	terms := []string{"tame game", "spicy game"}

	games, err := db.MatchMany(ctx, terms, Query{})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Tame Game", games[0].Title)

	games, err = db.MatchMany(ctx, terms, Query{IncludeNSFW: true})
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestMatchManyEmulatorFilter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	withListing, err := db.AddGame(ctx, "Game One", "switch", StatusApproved, false)
	require.NoError(t, err)
	_, err = db.AddListing(ctx, withListing, "yuzu", "https://example.test/one")
	require.NoError(t, err)

	_, err = db.AddGame(ctx, "Game Two", "switch", StatusApproved, false)
	require.NoError(t, err)

	games, err := db.MatchMany(ctx, []string{"game one", "game two"}, Query{Emulator: "yuzu"})
	require.NoError(t, err)
	require.Len(t, games, 1, "games without a matching listing are excluded")
	assert.Equal(t, withListing, games[0].ID)
	require.Len(t, games[0].Listings, 1)
	assert.Equal(t, "yuzu", games[0].Listings[0].Emulator)
}

func TestMatchManyListingCapNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.AddGame(ctx, "Popular Game", "steam", StatusApproved, false)
	require.NoError(t, err)

	var listingIDs []int64
	for i := 0; i < 4; i++ {
		lid, err := db.AddListing(ctx, id, "proton", "")
		require.NoError(t, err)
		listingIDs = append(listingIDs, lid)
	}

	games, err := db.MatchMany(ctx, []string{"popular game"}, Query{MaxListingsPerGame: 2})
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Len(t, games[0].Listings, 2, "listings are capped per game")
	// Newest first: the last two inserted listings.
	assert.Equal(t, listingIDs[3], games[0].Listings[0].ID)
	assert.Equal(t, listingIDs[2], games[0].Listings[1].ID)
}

func TestMatchManyDefaultListingCap(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.AddGame(ctx, "Another Game", "steam", StatusApproved, false)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := db.AddListing(ctx, id, "proton", "")
		require.NoError(t, err)
	}

	games, err := db.MatchMany(ctx, []string{"another game"}, Query{})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Len(t, games[0].Listings, DefaultMaxListings)
}

func TestMatchManyEmptyTerms(t *testing.T) {
	db := openTestDB(t)
	games, err := db.MatchMany(context.Background(), nil, Query{})
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestGameMetadataRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.AddGame(ctx, "Hollow Knight", "steam", StatusApproved, false)
	require.NoError(t, err)

	md, err := db.GetGameMetadata(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, md, "no metadata stored yet")

	require.NoError(t, db.SetGameMetadata(ctx, GameMetadata{
		GameID:      id,
		ProviderID:  "igdb:1234",
		Description: "A bug crawls through a ruined kingdom",
		Rating:      92.5,
	}))

	md, err = db.GetGameMetadata(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, md)
	assert.Equal(t, "igdb:1234", md.ProviderID)
	assert.InDelta(t, 92.5, md.Rating, 0.001)

	// Replacement, not accumulation.
	require.NoError(t, db.SetGameMetadata(ctx, GameMetadata{
		GameID:     id,
		ProviderID: "igdb:5678",
	}))
	md, err = db.GetGameMetadata(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "igdb:5678", md.ProviderID)
}

func TestMinimalProjection(t *testing.T) {
	g := Game{ID: 7, Title: "Stardew Valley", SystemID: "steam", ApprovalStatus: StatusApproved}
	m := g.Minimal()
	assert.Equal(t, int64(7), m.ID)
	assert.Equal(t, "Stardew Valley", m.Title)
}
