// Package index loads the offline-built vector index and document metadata
// and serves nearest-neighbor lookups. Both artifacts are read once at
// process start and never mutated afterwards.
package index

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
)

// Flat is a flat L2 nearest-neighbor index over the corpus embedding matrix.
// Distances are squared Euclidean, ascending. Safe for concurrent use: the
// matrix is immutable after LoadFlat.
type Flat struct {
	dim     int
	vectors [][]float32
}

// LoadFlat reads the persisted vector matrix. The file layout is
// little-endian: uint32 count, uint32 dim, then count*dim float32 values.
func LoadFlat(path string) (*Flat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w: %w", path, err, domain.ErrIndexNotLoaded)
	}
	return parseFlat(data)
}

func parseFlat(data []byte) (*Flat, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("index file too short (%d bytes): %w", len(data), domain.ErrIndexNotLoaded)
	}
	count := int(binary.LittleEndian.Uint32(data[0:4]))
	dim := int(binary.LittleEndian.Uint32(data[4:8]))
	if dim <= 0 {
		return nil, fmt.Errorf("index dimension %d invalid: %w", dim, domain.ErrIndexNotLoaded)
	}

	want := 8 + count*dim*4
	if len(data) != want {
		return nil, fmt.Errorf("index file size %d, expected %d for %d x %d: %w",
			len(data), want, count, dim, domain.ErrIndexNotLoaded)
	}

	vectors := make([][]float32, count)
	off := 8
	for i := range vectors {
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
		vectors[i] = vec
	}
	return &Flat{dim: dim, vectors: vectors}, nil
}

// Dim returns the index vector dimensionality.
func (f *Flat) Dim() int { return f.dim }

// Len returns the number of stored vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// Search returns up to k candidates nearest to vector, ascending by squared
// L2 distance. Ids are the dense positions of the stored vectors.
func (f *Flat) Search(vector []float32, k int) ([]domain.Candidate, error) {
	if len(vector) != f.dim {
		return nil, fmt.Errorf("query dimension %d, index dimension %d", len(vector), f.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	candidates := make([]domain.Candidate, len(f.vectors))
	for i, stored := range f.vectors {
		candidates[i] = domain.Candidate{ID: i, Distance: l2Squared(vector, stored)}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].ID < candidates[j].ID
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	return candidates[:k], nil
}

func l2Squared(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
