// Package selection implements weighted random sampling biased against
// items a user has already seen.
package selection

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/abhisek/roadsign/internal/errs"
)

// SeenWeightCap is the highest weight a previously seen item can carry.
// Unseen items always weigh 1.0.
const SeenWeightCap = 0.3

// Sampler draws items from candidate pools. A single Sampler is safe for
// concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Sampler drawing from src. Tests pass a seeded source.
func New(src rand.Source) *Sampler {
	return &Sampler{rng: rand.New(src)}
}

// NewDefault creates a Sampler seeded from the clock.
func NewDefault() *Sampler {
	seed := uint64(time.Now().UnixNano())
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Weights returns the sampling weight of each pool item given the viewing
// history. p is the share of distinct viewed IDs relative to the pool size;
// a seen item weighs min(p, SeenWeightCap), an unseen one 1.0.
func Weights(pool, viewed []string) []float64 {
	seen := make(map[string]struct{}, len(viewed))
	for _, id := range viewed {
		seen[id] = struct{}{}
	}

	var p float64
	if len(pool) > 0 {
		p = float64(len(seen)) / float64(len(pool))
	}
	seenWeight := min(p, SeenWeightCap)

	w := make([]float64, len(pool))
	for i, id := range pool {
		if _, ok := seen[id]; ok {
			w[i] = seenWeight
		} else {
			w[i] = 1.0
		}
	}
	return w
}

// Sample draws k items from pool with replacement. With no viewing history
// the draw is uniform; otherwise items are weighted by Weights. The result
// may contain duplicates.
func (s *Sampler) Sample(pool, viewed []string, k int) ([]string, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("sample from empty pool: %w", errs.ErrInvalidArgument)
	}
	if k <= 0 {
		return []string{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, k)
	if len(viewed) == 0 {
		for i := range out {
			out[i] = pool[s.rng.IntN(len(pool))]
		}
		return out, nil
	}

	cum := cumulative(Weights(pool, viewed))
	total := cum[len(cum)-1]
	for i := range out {
		x := s.rng.Float64() * total
		idx := sort.SearchFloat64s(cum, x)
		// SearchFloat64s returns the first index with cum >= x; an exact
		// hit on a boundary belongs to the next bucket.
		for idx < len(cum)-1 && cum[idx] <= x {
			idx++
		}
		out[i] = pool[idx]
	}
	return out, nil
}

// Pick returns a uniform index in [0, n). n must be positive.
func (s *Sampler) Pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Shuffle permutes ids in place.
func (s *Sampler) Shuffle(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
}

func cumulative(w []float64) []float64 {
	cum := make([]float64, len(w))
	var sum float64
	for i, v := range w {
		sum += v
		cum[i] = sum
	}
	return cum
}
