package testutil

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/hupe1980/ndgo"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Elements fills a fresh slice of n pseudo-random elements.
// Values span a small signed range so integer and float element types get
// comparable data.
func Elements[T ndgo.Scalar](r *RNG, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(r.Intn(2000) - 1000)
	}
	return out
}

// RandomArray creates a contiguous array of the given shape filled with
// seeded pseudo-random elements. Failures abort the test.
func RandomArray[T ndgo.Scalar](tb testing.TB, shape ndgo.Shape, seed int64) *ndgo.Array[T] {
	tb.Helper()
	a, err := ndgo.FromSlice(Elements[T](NewRNG(seed), shape.Size()), shape)
	if err != nil {
		tb.Fatalf("testutil: random array: %v", err)
	}
	return a
}

// RandomNested builds a seeded nested [][]float64, the input form accepted
// by ndgo.FromNested.
func RandomNested(rows, cols int, seed int64) [][]float64 {
	r := NewRNG(seed)
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := range out[i] {
			out[i][j] = r.Float64()
		}
	}
	return out
}
