package calculation

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// RandomSource yields uniform draws in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// SourceFactory creates the generator used by a single simulation run.
// Each run gets its own generator so concurrent runs never interleave draws.
type SourceFactory func() RandomSource

var seedCounter atomic.Int64

// UnseededSourceFactory is the default: every run draws from a fresh
// generator seeded from the clock and a process-wide counter.
func UnseededSourceFactory() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano() + seedCounter.Add(1)))
}

// SeededSourceFactory returns a factory whose every generator starts from
// seed, so repeated runs reproduce the same samples.
func SeededSourceFactory(seed int64) SourceFactory {
	return func() RandomSource {
		return rand.New(rand.NewSource(seed))
	}
}

// SharedSourceFactory hands out one caller-owned generator to every run,
// serialising access to it.
func SharedSourceFactory(src RandomSource) SourceFactory {
	locked := &lockedSource{src: src}
	return func() RandomSource { return locked }
}

type lockedSource struct {
	mu  sync.Mutex
	src RandomSource
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}
