package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Henry-Sarabia/igdb/v2"
)

const twitchTokenURL = "https://id.twitch.tv/oauth2/token"

// IGDBProvider serves game metadata from the IGDB API. IGDB authenticates
// via Twitch app access tokens, which NewIGDBProvider fetches up front.
type IGDBProvider struct {
	client *igdb.Client
}

// NewIGDBProvider authenticates against Twitch and returns a ready provider.
func NewIGDBProvider(ctx context.Context, clientID, clientSecret string) (*IGDBProvider, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("IGDB client id and secret are required")
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	token, err := twitchAppToken(ctx, httpClient, clientID, clientSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate with Twitch: %w", err)
	}

	return &IGDBProvider{client: igdb.NewClient(clientID, token, httpClient)}, nil
}

func (p *IGDBProvider) Name() string {
	return "igdb"
}

var igdbFields = []string{"id", "name", "summary", "first_release_date", "total_rating"}

func (p *IGDBProvider) Search(query string) ([]GameMetadata, error) {
	games, err := p.client.Games.Search(query,
		igdb.SetFields(igdbFields...),
		igdb.SetLimit(10),
	)
	if err != nil {
		return nil, err
	}

	results := make([]GameMetadata, 0, len(games))
	for _, g := range games {
		results = append(results, fromIGDBGame(g))
	}
	return results, nil
}

func (p *IGDBProvider) GetDetails(id string) (*GameMetadata, error) {
	numericID, err := parseIGDBID(id)
	if err != nil {
		return nil, err
	}

	game, err := p.client.Games.Get(numericID, igdb.SetFields(igdbFields...))
	if err != nil {
		return nil, err
	}

	md := fromIGDBGame(game)
	return &md, nil
}

// parseIGDBID extracts the numeric part of an "igdb:12345" identifier.
func parseIGDBID(id string) (int, error) {
	raw, ok := strings.CutPrefix(id, "igdb:")
	if !ok {
		return 0, fmt.Errorf("invalid IGDB id: %s", id)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid IGDB id: %s", id)
	}
	return n, nil
}

func fromIGDBGame(g *igdb.Game) GameMetadata {
	md := GameMetadata{
		ID:          fmt.Sprintf("igdb:%d", g.ID),
		Name:        g.Name,
		Description: g.Summary,
		Rating:      g.TotalRating,
	}
	if g.FirstReleaseDate != 0 {
		md.ReleaseDate = time.Unix(int64(g.FirstReleaseDate), 0).Format("2006-01-02")
	}
	return md
}

// twitchAppToken performs the client-credentials grant for an app access
// token.
func twitchAppToken(ctx context.Context, client *http.Client, clientID, clientSecret string) (string, error) {
	form := url.Values{
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, twitchTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned %s", resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access token")
	}
	return body.AccessToken, nil
}
