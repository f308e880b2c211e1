package selector

import (
	"fmt"
	"math/rand"

	"github.com/hntran/tiny-drill-deck-go/internal/types"
	"github.com/hntran/tiny-drill-deck-go/internal/utils"
)

// ShrinkingSelector draws uniformly random slots from a fixed pool and
// removes them permanently. Once every slot has been drawn the selector is
// drained and stays drained; there is no refill.
//
// This is the variant for "reveal once and never reconsider" flows such as
// the word-hiding drill.
type ShrinkingSelector[T any] struct {
	pool      []T
	remaining *utils.IndexBag
	rng       *rand.Rand
}

// NewShrinkingSelector creates a selector over a copy of pool.
// It fails with types.ErrEmptyDeck when pool is empty.
func NewShrinkingSelector[T any](pool []T, opt *Optional) (*ShrinkingSelector[T], error) {
	if len(pool) == 0 {
		return nil, types.ErrEmptyDeck
	}
	owned := make([]T, len(pool))
	copy(owned, pool)
	return &ShrinkingSelector[T]{
		pool:      owned,
		remaining: utils.NewIndexBag(len(pool)),
		rng:       newRand(opt),
	}, nil
}

// DrawIndex draws one slot and returns its pool position.
// It fails with types.ErrDeckDrained once every slot has been drawn.
func (s *ShrinkingSelector[T]) DrawIndex() (int, error) {
	if s.remaining.Len() == 0 {
		return 0, types.ErrDeckDrained
	}
	return s.remaining.TakeAt(s.rng.Intn(s.remaining.Len())), nil
}

// Draw draws one slot and returns its item.
func (s *ShrinkingSelector[T]) Draw() (T, error) {
	pos, err := s.DrawIndex()
	if err != nil {
		var zero T
		return zero, err
	}
	return s.pool[pos], nil
}

// DrawMany draws up to n items. It fails with types.ErrNegativeDrawCount
// when n is negative, and with types.ErrDeckDrained when the pool drains
// mid-sequence; the items drawn before draining are returned alongside
// the error.
func (s *ShrinkingSelector[T]) DrawMany(n int) ([]T, error) {
	if n < 0 {
		return nil, types.ErrNegativeDrawCount
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		item, err := s.Draw()
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Restore puts a previously drawn position back into the remaining set.
// The session layer uses this to revert draws whose journal flush failed.
func (s *ShrinkingSelector[T]) Restore(pos int) {
	s.remaining.Add(pos)
}

// Take removes a specific position from the remaining set. It reports
// whether the position was still undrawn. Used when replaying a journal.
func (s *ShrinkingSelector[T]) Take(pos int) bool {
	return s.remaining.Remove(pos)
}

// Remaining returns how many slots are still undrawn.
func (s *ShrinkingSelector[T]) Remaining() int {
	return s.remaining.Len()
}

// Drained reports whether every slot has been drawn.
func (s *ShrinkingSelector[T]) Drained() bool {
	return s.remaining.Len() == 0
}

// Size returns the pool size.
func (s *ShrinkingSelector[T]) Size() int {
	return len(s.pool)
}

// Item returns the pool item at the given position.
func (s *ShrinkingSelector[T]) Item(pos int) T {
	return s.pool[pos]
}

// Reset re-initializes the remaining set to the given positions.
// Used when resuming a session from a snapshot.
func (s *ShrinkingSelector[T]) Reset(remaining []int) error {
	for _, pos := range remaining {
		if pos < 0 || pos >= len(s.pool) {
			return fmt.Errorf("position %d out of range [0, %d)", pos, len(s.pool))
		}
	}
	s.remaining = utils.NewIndexBagFrom(remaining)
	return nil
}

// RemainingIndices returns the positions still undrawn.
func (s *ShrinkingSelector[T]) RemainingIndices() []int {
	return s.remaining.Values()
}
