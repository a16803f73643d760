// ABOUTME: Random sources for lead scores and library picks
// ABOUTME: Goroutine-safe wall-clock source plus a replayable sequence for tests

package demo

import (
	"math/rand"
	"sync"
	"time"
)

// Random is the source used for score jitter, library picks and canned replies.
type Random interface {
	Intn(n int) int
}

type lockedRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom returns a goroutine-safe source seeded from the wall clock.
func NewRandom() Random {
	return &lockedRandom{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (r *lockedRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// SequenceRandom replays a fixed list of values, wrapping around at the end.
// Each value is reduced modulo n.
type SequenceRandom struct {
	mu     sync.Mutex
	values []int
	next   int
}

func NewSequenceRandom(values ...int) *SequenceRandom {
	if len(values) == 0 {
		values = []int{0}
	}
	return &SequenceRandom{values: values}
}

func (r *SequenceRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[r.next%len(r.values)]
	r.next++
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// adjustScore jitters a base score by [-5, +4] and clamps it to [55, 99].
func adjustScore(r Random, base int) int {
	score := base + r.Intn(10) - 5
	if score < 55 {
		return 55
	}
	if score > 99 {
		return 99
	}
	return score
}
