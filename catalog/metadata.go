package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GameMetadata holds enrichment data fetched from an external metadata
// provider for one catalog game.
type GameMetadata struct {
	GameID      int64
	ProviderID  string
	Description string
	ReleaseDate string
	Developer   string
	Publisher   string
	Rating      float64
}

// SetGameMetadata saves enrichment metadata for a game, replacing any
// earlier record.
func (db *DB) SetGameMetadata(ctx context.Context, md GameMetadata) error {
	query := `
		INSERT INTO game_metadata (game_id, provider_id, description, release_date, developer, publisher, rating, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(game_id) DO UPDATE SET
			provider_id = excluded.provider_id,
			description = excluded.description,
			release_date = excluded.release_date,
			developer = excluded.developer,
			publisher = excluded.publisher,
			rating = excluded.rating,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := db.conn.ExecContext(ctx, query,
		md.GameID, md.ProviderID, md.Description, md.ReleaseDate, md.Developer, md.Publisher, md.Rating)
	if err != nil {
		return fmt.Errorf("failed to save game metadata: %w", err)
	}
	return nil
}

// GetGameMetadata retrieves enrichment metadata for a game. Returns nil
// when none has been stored.
func (db *DB) GetGameMetadata(ctx context.Context, gameID int64) (*GameMetadata, error) {
	query := `
		SELECT game_id, provider_id, description, release_date, developer, publisher, rating
		FROM game_metadata WHERE game_id = ?
	`
	row := db.conn.QueryRowContext(ctx, query, gameID)

	var md GameMetadata
	if err := row.Scan(&md.GameID, &md.ProviderID, &md.Description, &md.ReleaseDate,
		&md.Developer, &md.Publisher, &md.Rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game metadata: %w", err)
	}
	return &md, nil
}

// GetGameTitle returns the title for a game id.
func (db *DB) GetGameTitle(ctx context.Context, id int64) (string, error) {
	var title string
	err := db.conn.QueryRowContext(ctx, "SELECT title FROM games WHERE id = ?", id).Scan(&title)
	return title, err
}
