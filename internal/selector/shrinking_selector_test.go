package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

func TestNewShrinkingSelector_EmptyPool(t *testing.T) {
	_, err := NewShrinkingSelector([]string{}, nil)
	assert.ErrorIs(t, err, types.ErrEmptyDeck)
}

func TestShrinkingSelector_DrainsExactlyOnce(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	s, err := NewShrinkingSelector(pool, nil)
	require.NoError(t, err)

	drawn := make([]string, 0, len(pool))
	for i := 0; i < len(pool); i++ {
		assert.Equal(t, len(pool)-i, s.Remaining())
		item, err := s.Draw()
		require.NoError(t, err)
		drawn = append(drawn, item)
	}

	assert.Equal(t, sorted(pool), sorted(drawn))
	assert.True(t, s.Drained())
	assert.Zero(t, s.Remaining())

	// No refill: the selector stays drained.
	_, err = s.Draw()
	assert.ErrorIs(t, err, types.ErrDeckDrained)
	_, err = s.Draw()
	assert.ErrorIs(t, err, types.ErrDeckDrained)
}

func TestShrinkingSelector_DrawManyNegative(t *testing.T) {
	s, err := NewShrinkingSelector([]string{"a"}, nil)
	require.NoError(t, err)

	_, err = s.DrawMany(-3)
	assert.ErrorIs(t, err, types.ErrNegativeDrawCount)
}

func TestShrinkingSelector_DrawManyPastDrain(t *testing.T) {
	pool := []string{"a", "b"}
	s, err := NewShrinkingSelector(pool, nil)
	require.NoError(t, err)

	out, err := s.DrawMany(5)
	assert.ErrorIs(t, err, types.ErrDeckDrained)
	assert.Equal(t, sorted(pool), sorted(out))
}

func TestShrinkingSelector_Restore(t *testing.T) {
	s, err := NewShrinkingSelector([]string{"a", "b"}, nil)
	require.NoError(t, err)

	p1, err := s.DrawIndex()
	require.NoError(t, err)
	p2, err := s.DrawIndex()
	require.NoError(t, err)
	require.True(t, s.Drained())

	s.Restore(p2)
	s.Restore(p1)
	assert.Equal(t, 2, s.Remaining())

	again, err := s.DrawMany(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sorted(again))
}

func TestShrinkingSelector_Reset(t *testing.T) {
	s, err := NewShrinkingSelector([]string{"a", "b", "c"}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Reset([]int{2}))
	assert.Equal(t, 1, s.Remaining())

	item, err := s.Draw()
	require.NoError(t, err)
	assert.Equal(t, "c", item)
	assert.True(t, s.Drained())

	assert.Error(t, s.Reset([]int{3}))
}

func TestShrinkingSelector_RemainingIndices(t *testing.T) {
	s, err := NewShrinkingSelector([]string{"a", "b", "c"}, nil)
	require.NoError(t, err)

	pos, err := s.DrawIndex()
	require.NoError(t, err)

	rest := s.RemainingIndices()
	assert.Len(t, rest, 2)
	assert.NotContains(t, rest, pos)
}
