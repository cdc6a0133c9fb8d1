package provider

import (
	"context"
	"regexp"
)

// datasetProvider implements Provider over a Dataset collaborator with a
// platform-specific id format.
type datasetProvider struct {
	platform    Platform
	label       string
	description string
	idFormat    *regexp.Regexp
	idWant      string
	dataset     Dataset
}

var (
	steamIDFormat = regexp.MustCompile(`^[0-9]+$`)
	// Nintendo Title IDs are 16 hex digits on both Switch and 3DS.
	titleIDFormat = regexp.MustCompile(`^[0-9A-Fa-f]{16}$`)
)

// NewSwitch returns the Nintendo Switch provider backed by the given
// dataset.
func NewSwitch(ds Dataset) Provider {
	return &datasetProvider{
		platform:    PlatformSwitch,
		label:       "Nintendo Switch",
		description: "Resolves Nintendo Switch Title IDs to game names",
		idFormat:    titleIDFormat,
		idWant:      "a 16-digit hexadecimal Title ID",
		dataset:     ds,
	}
}

// New3DS returns the Nintendo 3DS provider backed by the given dataset.
func New3DS(ds Dataset) Provider {
	return &datasetProvider{
		platform:    Platform3DS,
		label:       "Nintendo 3DS",
		description: "Resolves Nintendo 3DS Title IDs to game names",
		idFormat:    titleIDFormat,
		idWant:      "a 16-digit hexadecimal Title ID",
		dataset:     ds,
	}
}

// NewSteam returns the Steam provider backed by the given dataset.
func NewSteam(ds Dataset) Provider {
	return &datasetProvider{
		platform:    PlatformSteam,
		label:       "Steam",
		description: "Resolves Steam App IDs to game names",
		idFormat:    steamIDFormat,
		idWant:      "a numeric App ID",
		dataset:     ds,
	}
}

func (p *datasetProvider) ID() Platform        { return p.platform }
func (p *datasetProvider) Label() string       { return p.label }
func (p *datasetProvider) Description() string { return p.description }

func (p *datasetProvider) ValidateID(raw string) error {
	if !p.idFormat.MatchString(raw) {
		return &InvalidIDError{Platform: p.platform, Raw: raw, Want: p.idWant}
	}
	return nil
}

func (p *datasetProvider) Candidates(ctx context.Context) ([]CandidateName, error) {
	entries, err := p.dataset.BulkList(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]CandidateName, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, CandidateName{
			ExternalID:  e.ExternalID,
			Name:        e.Name,
			Provider:    p.platform,
			Region:      e.Region,
			ProductCode: e.ProductCode,
		})
	}
	return candidates, nil
}

func (p *datasetProvider) SupportsStats() bool {
	_, ok := p.dataset.(StatsDataset)
	return ok
}

func (p *datasetProvider) Stats(ctx context.Context) (*Stats, error) {
	sd, ok := p.dataset.(StatsDataset)
	if !ok {
		return nil, ErrStatsUnavailable
	}
	return sd.Stats(ctx)
}
