package presence

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Random is the randomness capability the generators draw from. Callers may
// inject a seeded source for reproducible output.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// lockedRand makes a *rand.Rand safe for concurrent requests.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom wraps src so it can be shared by concurrent callers.
func NewRandom(src rand.Source) Random {
	return &lockedRand{r: rand.New(src)}
}

// NewSeededRandom returns a reproducible Random.
func NewSeededRandom(seed uint64) Random {
	return NewRandom(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DefaultRandom returns a Random seeded from the clock.
func DefaultRandom() Random {
	now := uint64(time.Now().UnixNano())
	return NewRandom(rand.NewPCG(now, now>>1))
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
