package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Entry is one (externalId, name) pair from a platform's bulk dataset.
type Entry struct {
	ExternalID  string `json:"id"`
	Name        string `json:"name"`
	Region      string `json:"region,omitempty"`
	ProductCode string `json:"product_code,omitempty"`
}

// Dataset is the collaborator contract for a platform's raw data source.
// How the list is produced (scraped, downloaded, exported) is outside this
// subsystem.
type Dataset interface {
	BulkList(ctx context.Context) ([]Entry, error)
}

// StatsDataset is an optional extension for datasets that can describe
// themselves.
type StatsDataset interface {
	Dataset
	Stats(ctx context.Context) (*Stats, error)
}

// FileDataset serves a dataset from a JSON file of Entry objects. The file
// is parsed once and held in memory; LastUpdated reports the file mtime.
type FileDataset struct {
	path string

	mu      sync.Mutex
	entries []Entry
	modTime time.Time
	loaded  bool
}

// NewFileDataset returns a dataset backed by the JSON file at path.
func NewFileDataset(path string) *FileDataset {
	return &FileDataset{path: path}
}

// BulkList returns every entry in the file.
func (d *FileDataset) BulkList(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := d.load(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out, nil
}

// Stats reports the dataset size and file age. CacheStatus is "cold" when
// this call had to read the file and "loaded" once the data was already in
// memory.
func (d *FileDataset) Stats(ctx context.Context) (*Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	wasLoaded := d.loaded
	d.mu.Unlock()

	if err := d.load(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	status := "cold"
	if wasLoaded {
		status = "loaded"
	}
	return &Stats{
		TotalGames:  len(d.entries),
		CacheStatus: status,
		LastUpdated: d.modTime,
	}, nil
}

func (d *FileDataset) load() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return nil
	}

	info, err := os.Stat(d.path)
	if err != nil {
		return fmt.Errorf("failed to stat dataset %s: %w", d.path, err)
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("failed to read dataset %s: %w", d.path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse dataset %s: %w", d.path, err)
	}

	d.entries = entries
	d.modTime = info.ModTime()
	d.loaded = true
	return nil
}

// StaticDataset serves a fixed in-memory list. Useful for tests and small
// hand-maintained datasets.
type StaticDataset []Entry

func (d StaticDataset) BulkList(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d, nil
}
