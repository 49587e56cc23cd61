package selection

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/roadsign/internal/errs"
)

func seeded() *Sampler {
	return New(rand.NewPCG(42, 1024))
}

func TestSample_EmptyPool(t *testing.T) {
	s := seeded()
	for _, k := range []int{0, 1, 5} {
		_, err := s.Sample(nil, []string{"a"}, k)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	}
}

func TestSample_ReturnsKFromPool(t *testing.T) {
	s := seeded()
	pool := []string{"a", "b", "c"}
	inPool := map[string]bool{"a": true, "b": true, "c": true}

	for _, viewed := range [][]string{nil, {"a"}, {"a", "a", "b", "c"}} {
		for _, k := range []int{1, 3, 10} {
			got, err := s.Sample(pool, viewed, k)
			require.NoError(t, err)
			require.Len(t, got, k)
			for _, id := range got {
				assert.True(t, inPool[id], "unexpected id %q", id)
			}
		}
	}
}

func TestSample_ZeroK(t *testing.T) {
	got, err := seeded().Sample([]string{"a"}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSample_UniformWithoutHistory(t *testing.T) {
	s := seeded()
	pool := []string{"a", "b", "c", "d"}
	const trials = 40000

	counts := make(map[string]int)
	got, err := s.Sample(pool, nil, trials)
	require.NoError(t, err)
	for _, id := range got {
		counts[id]++
	}

	for _, id := range pool {
		freq := float64(counts[id]) / trials
		assert.InDelta(t, 0.25, freq, 0.02, "frequency of %q", id)
	}
}

func TestSample_BiasAgainstSeen(t *testing.T) {
	s := seeded()
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	viewed := []string{"a", "b", "c", "d", "e"} // p = 0.5, seen weight capped at 0.3
	const trials = 50000

	got, err := s.Sample(pool, viewed, trials)
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, id := range got {
		counts[id]++
	}

	// Expected share of one seen item: 0.3 / (5*0.3 + 5*1.0) = 0.3/6.5.
	wantSeen := 0.3 / 6.5
	wantUnseen := 1.0 / 6.5
	for _, id := range viewed {
		assert.InDelta(t, wantSeen, float64(counts[id])/trials, 0.01, "seen %q", id)
		assert.Positive(t, counts[id], "seen item %q must stay selectable", id)
	}
	for _, id := range pool[5:] {
		assert.InDelta(t, wantUnseen, float64(counts[id])/trials, 0.015, "unseen %q", id)
	}
}

func TestWeights(t *testing.T) {
	tests := []struct {
		name   string
		pool   []string
		viewed []string
		want   []float64
	}{
		{
			name:   "no history",
			pool:   []string{"a", "b"},
			viewed: nil,
			want:   []float64{1, 1},
		},
		{
			name:   "low exposure uses ratio",
			pool:   []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
			viewed: []string{"a", "a", "a"},
			want:   []float64{0.1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		},
		{
			name:   "high exposure is capped",
			pool:   []string{"a", "b"},
			viewed: []string{"a", "b"},
			want:   []float64{0.3, 0.3},
		},
		{
			name:   "viewed ids outside the pool still count",
			pool:   []string{"a", "b", "c", "d"},
			viewed: []string{"a", "x"},
			want:   []float64{0.3, 1, 1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Weights(tt.pool, tt.viewed)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-9, "weight[%d]", i)
			}
		})
	}
}

func TestWeights_SeenNeverZeroNorAboveCap(t *testing.T) {
	pool := make([]string, 50)
	for i := range pool {
		pool[i] = string(rune('A' + i))
	}
	for n := 1; n <= len(pool); n++ {
		w := Weights(pool, pool[:n])
		for i := 0; i < n; i++ {
			if w[i] <= 0 || w[i] > SeenWeightCap+1e-12 {
				t.Fatalf("n=%d: seen weight %v out of (0, %v]", n, w[i], SeenWeightCap)
			}
		}
	}
}

func TestSample_DeterministicWithSeed(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}
	first, err := seeded().Sample(pool, []string{"a"}, 20)
	require.NoError(t, err)
	second, err := seeded().Sample(pool, []string{"a"}, 20)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSampler_ConcurrentUse(t *testing.T) {
	s := NewDefault()
	pool := []string{"a", "b", "c"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_, err := s.Sample(pool, []string{"a"}, 2)
				assert.NoError(t, err)
				idx := s.Pick(len(pool))
				assert.True(t, idx >= 0 && idx < len(pool))
			}
		}()
	}
	wg.Wait()
}

func TestCumulative(t *testing.T) {
	cum := cumulative([]float64{0.5, 1, 0.25})
	assert.Equal(t, []float64{0.5, 1.5, 1.75}, cum)
	assert.False(t, math.IsNaN(cum[2]))
}
