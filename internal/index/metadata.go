package index

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
)

// Metadata is the read-only document record table produced by the offline
// index builder: urls and titles are parallel sequences keyed by the dense,
// zero-based document id.
type Metadata struct {
	urls   []string
	titles []string
}

type metadataFile struct {
	URLs   []string `json:"urls"`
	Titles []string `json:"titles"`
}

// LoadMetadata reads the metadata JSON written alongside the index.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w: %w", path, err, domain.ErrIndexNotLoaded)
	}

	var mf metadataFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w: %w", path, err, domain.ErrIndexNotLoaded)
	}
	if len(mf.URLs) != len(mf.Titles) {
		return nil, fmt.Errorf("metadata urls/titles length mismatch (%d vs %d): %w",
			len(mf.URLs), len(mf.Titles), domain.ErrIndexNotLoaded)
	}
	return &Metadata{urls: mf.URLs, titles: mf.Titles}, nil
}

// Len returns the number of document records.
func (m *Metadata) Len() int { return len(m.urls) }

// Resolve returns the document record for id. ok is false when id is outside
// the valid range; out-of-range ids from the index are an expected condition
// the caller silently filters.
func (m *Metadata) Resolve(id int) (domain.Document, bool) {
	if id < 0 || id >= len(m.urls) {
		return domain.Document{}, false
	}
	return domain.Document{ID: id, URL: m.urls[id], Title: m.titles[id]}, true
}
