package recovery

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hntran/tiny-drill-deck-go/internal/deck"
	"github.com/hntran/tiny-drill-deck-go/internal/journal"
	"github.com/hntran/tiny-drill-deck-go/internal/journal/formatter"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
	"github.com/hntran/tiny-drill-deck-go/internal/utils"
)

func testDeck() types.Deck {
	return types.Deck{Name: "verses", Items: []string{"v0", "v1", "v2", "v3"}}
}

func freshSession(t *testing.T) *deck.Session {
	t.Helper()
	s, err := deck.NewSession(testDeck(), &deck.SessionOptional{Mode: types.ModeShrinking})
	require.NoError(t, err)
	return s
}

func writeJournal(t *testing.T, dir string, seq string, entries []types.JournalEntry) {
	t.Helper()
	path := filepath.Join(dir, types.JournalBaseName+"."+seq)
	j, err := journal.NewJournal(path, 0, nil, nil)
	require.NoError(t, err)
	for _, e := range entries {
		switch v := e.(type) {
		case *types.JournalDrawItem:
			require.NoError(t, j.LogDraw(*v))
		case *types.JournalSnapshotItem:
			require.NoError(t, j.LogSnapshot(*v))
		}
	}
	require.NoError(t, j.Flush())
	require.NoError(t, j.Close())
}

func drawEntry(reqID uint64, pos int) *types.JournalDrawItem {
	return &types.JournalDrawItem{
		JournalEntryBase: types.JournalEntryBase{Type: types.LogTypeDraw},
		RequestID:        reqID,
		Position:         pos,
		Success:          true,
	}
}

func TestRecoverSession_NoJournalNoSnapshot(t *testing.T) {
	dir := t.TempDir()
	u := utils.NewDefaultUtils(dir, dir, slog.LevelInfo, nil)

	s, lastID, lastPath, err := RecoverSession(*u.GenSnapshotPath(), freshSession(t), formatter.NewJSONFormatter(), u)
	require.NoError(t, err)
	assert.Zero(t, lastID)
	assert.Empty(t, lastPath)
	assert.Len(t, s.State().Remaining, 4)
}

func TestRecoverSession_ReplaysJournal(t *testing.T) {
	dir := t.TempDir()
	u := utils.NewDefaultUtils(dir, dir, slog.LevelInfo, nil)

	writeJournal(t, dir, "000", []types.JournalEntry{
		drawEntry(1, 1),
		drawEntry(2, 3),
	})

	s, lastID, lastPath, err := RecoverSession(*u.GenSnapshotPath(), freshSession(t), formatter.NewJSONFormatter(), u)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), lastID)
	assert.Equal(t, filepath.Join(dir, types.JournalBaseName+".000"), lastPath)

	state := s.State()
	sort.Strings(state.Remaining)
	assert.Equal(t, []string{"v0", "v2"}, state.Remaining)
}

func TestRecoverSession_SnapshotPlusTail(t *testing.T) {
	dir := t.TempDir()
	u := utils.NewDefaultUtils(dir, dir, slog.LevelInfo, nil)

	// Snapshot taken after v0 was drawn.
	snapPath := filepath.Join(dir, "snapshot.json")
	snap := types.SessionSnapshot{
		Deck:          testDeck(),
		Mode:          types.ModeShrinking,
		Remaining:     []int{1, 2, 3},
		LastRequestID: 5,
	}
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(snapPath, data, 0644))

	// Journal: the snapshot marker, then two more draws.
	writeJournal(t, dir, "000", []types.JournalEntry{
		drawEntry(5, 0),
		&types.JournalSnapshotItem{JournalEntryBase: types.JournalEntryBase{Type: types.LogTypeSnapshot}, Path: snapPath},
		drawEntry(6, 2),
	})

	s, lastID, _, err := RecoverSession(snapPath, freshSession(t), formatter.NewJSONFormatter(), u)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), lastID)

	state := s.State()
	sort.Strings(state.Remaining)
	assert.Equal(t, []string{"v1", "v3"}, state.Remaining)
	assert.Equal(t, 2, state.Drawn)
}

func TestRecoverSession_MultipleJournalFiles(t *testing.T) {
	dir := t.TempDir()
	u := utils.NewDefaultUtils(dir, dir, slog.LevelInfo, nil)

	writeJournal(t, dir, "000", []types.JournalEntry{drawEntry(1, 0)})
	writeJournal(t, dir, "001", []types.JournalEntry{drawEntry(2, 1), drawEntry(3, 2)})

	s, lastID, lastPath, err := RecoverSession(*u.GenSnapshotPath(), freshSession(t), formatter.NewJSONFormatter(), u)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), lastID)
	assert.Equal(t, filepath.Join(dir, types.JournalBaseName+".001"), lastPath)
	assert.Equal(t, []string{"v3"}, s.State().Remaining)
}
