package selector

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hntran/tiny-drill-deck-go/internal/types"
	"github.com/hntran/tiny-drill-deck-go/internal/utils"
)

// Optional carries optional construction parameters for a selector.
type Optional struct {
	// Source seeds the selector's private random generator.
	// Nil means a time-seeded source.
	Source rand.Source
}

func newRand(opt *Optional) *rand.Rand {
	if opt != nil && opt.Source != nil {
		return rand.New(opt.Source)
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// RefillingSelector draws uniformly random slots from a fixed pool without
// repeating a slot until every slot has been drawn, then silently starts a
// new round. It never runs out.
//
// Not safe for concurrent use; callers needing that should serialize draws
// (see the actor package).
type RefillingSelector[T any] struct {
	pool  []T
	avail *utils.IndexBag
	rng   *rand.Rand
	round uint64
}

// NewRefillingSelector creates a selector over a copy of pool.
// It fails with types.ErrEmptyDeck when pool is empty.
func NewRefillingSelector[T any](pool []T, opt *Optional) (*RefillingSelector[T], error) {
	if len(pool) == 0 {
		return nil, types.ErrEmptyDeck
	}
	owned := make([]T, len(pool))
	copy(owned, pool)
	return &RefillingSelector[T]{
		pool:  owned,
		avail: utils.NewIndexBag(len(pool)),
		rng:   newRand(opt),
	}, nil
}

// DrawIndex draws one slot and returns its pool position.
// When the current round is exhausted a new round begins transparently.
func (s *RefillingSelector[T]) DrawIndex() int {
	if s.avail.Len() == 0 {
		s.avail.Fill(len(s.pool))
		s.round++
	}
	return s.avail.TakeAt(s.rng.Intn(s.avail.Len()))
}

// Draw draws one slot and returns its item.
func (s *RefillingSelector[T]) Draw() T {
	return s.pool[s.DrawIndex()]
}

// DrawMany draws n items. Draws past the end of a round continue into the
// next round, so the result may repeat items when n exceeds the pool size.
// It fails with types.ErrNegativeDrawCount when n is negative.
func (s *RefillingSelector[T]) DrawMany(n int) ([]T, error) {
	if n < 0 {
		return nil, types.ErrNegativeDrawCount
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.Draw())
	}
	return out, nil
}

// Exhausted reports whether the current round has been fully drawn.
// The next Draw starts a fresh round.
func (s *RefillingSelector[T]) Exhausted() bool {
	return s.avail.Len() == 0
}

// RoundRemaining returns how many slots are still undrawn in the current round.
func (s *RefillingSelector[T]) RoundRemaining() int {
	return s.avail.Len()
}

// Round returns how many rounds have been completed and refilled so far.
func (s *RefillingSelector[T]) Round() uint64 {
	return s.round
}

// Size returns the pool size.
func (s *RefillingSelector[T]) Size() int {
	return len(s.pool)
}

// Item returns the pool item at the given position.
func (s *RefillingSelector[T]) Item(pos int) T {
	return s.pool[pos]
}

// Take removes a specific position from the current round. It reports
// whether the position was still undrawn. Used when replaying a journal.
func (s *RefillingSelector[T]) Take(pos int) bool {
	return s.avail.Remove(pos)
}

// Refill starts a new round explicitly. Used when replaying a journal,
// where round rollovers are recorded as their own entries.
func (s *RefillingSelector[T]) Refill() {
	s.avail.Fill(len(s.pool))
	s.round++
}

// Reset restores the selector to a given mid-round state: the positions
// still undrawn in the current round and the completed round count.
// Used when resuming a session from a snapshot.
func (s *RefillingSelector[T]) Reset(remaining []int, round uint64) error {
	for _, pos := range remaining {
		if pos < 0 || pos >= len(s.pool) {
			return fmt.Errorf("position %d out of range [0, %d)", pos, len(s.pool))
		}
	}
	s.avail = utils.NewIndexBagFrom(remaining)
	s.round = round
	return nil
}

// RemainingIndices returns the positions still undrawn in the current round.
func (s *RefillingSelector[T]) RemainingIndices() []int {
	return s.avail.Values()
}
