package replay

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hntran/tiny-drill-deck-go/internal/deck"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

func draw(reqID uint64, pos int, success bool) *types.JournalDrawItem {
	return &types.JournalDrawItem{
		JournalEntryBase: types.JournalEntryBase{Type: types.LogTypeDraw},
		RequestID:        reqID,
		Position:         pos,
		Success:          success,
	}
}

func TestReplayLogs_ShrinkingSession(t *testing.T) {
	d := types.Deck{Name: "verses", Items: []string{"v0", "v1", "v2", "v3"}}
	s, err := deck.NewSession(d, &deck.SessionOptional{Mode: types.ModeShrinking})
	require.NoError(t, err)

	ReplayLogs(s, []types.JournalEntry{
		draw(1, 0, true),
		draw(2, 2, false), // failed draws must not change the state
		draw(3, 3, true),
		&types.JournalSnapshotItem{JournalEntryBase: types.JournalEntryBase{Type: types.LogTypeSnapshot}, Path: "x"},
	})

	state := s.State()
	assert.Equal(t, 2, state.Drawn)
	sort.Strings(state.Remaining)
	assert.Equal(t, []string{"v1", "v2"}, state.Remaining)
}

func TestReplayLogs_RefillingSessionWithRounds(t *testing.T) {
	d := types.Deck{Name: "prompts", Items: []string{"p0", "p1"}}
	s, err := deck.NewSession(d, nil)
	require.NoError(t, err)

	ReplayLogs(s, []types.JournalEntry{
		draw(1, 0, true),
		draw(2, 1, true),
		&types.JournalRoundItem{JournalEntryBase: types.JournalEntryBase{Type: types.LogTypeRound}, Round: 1},
		draw(3, 1, true),
	})

	state := s.State()
	assert.Equal(t, uint64(1), state.Round)
	assert.Equal(t, []string{"p0"}, state.Remaining)
	assert.Equal(t, 3, state.Drawn)
}
