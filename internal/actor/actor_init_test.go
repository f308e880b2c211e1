package actor_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hntran/tiny-drill-deck-go/internal/actor"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotUtils struct {
	snapshotPath string
}

func (u *snapshotUtils) GetLogger() *slog.Logger          { return nil }
func (u *snapshotUtils) GenSnapshotPath() *string         { return &u.snapshotPath }
func (u *snapshotUtils) GenRotatedJournalPath() *string   { return nil }
func (u *snapshotUtils) GetJournalFiles() ([]string, error) { return nil, nil }

var _ types.Utils = (*snapshotUtils)(nil)

func TestSystem_InitSnapshotsEmptyJournal(t *testing.T) {
	tmpDir := t.TempDir()
	snapPath := filepath.Join(tmpDir, "snapshot.json")

	session := &mockSession{items: []string{"a", "b"}, mode: types.ModeShrinking}
	journal := &mockJournal{size: 0}
	ctx := &types.Context{Journal: journal, Utils: &snapshotUtils{snapshotPath: snapPath}}

	sys, err := actor.NewSystem(ctx, session, nil)
	require.NoError(t, err)
	defer sys.Stop()

	// Empty journal means a fresh session: a snapshot must be written and
	// its marker flushed before any draw.
	_, statErr := os.Stat(snapPath)
	require.NoError(t, statErr)
	require.NotEmpty(t, journal.logged)
	assert.IsType(t, &types.JournalSnapshotItem{}, journal.logged[0])
	assert.Equal(t, 1, journal.flushCount)
}

func TestSystem_InitSkipsSnapshotWhenJournalHasData(t *testing.T) {
	tmpDir := t.TempDir()
	snapPath := filepath.Join(tmpDir, "snapshot.json")

	session := &mockSession{items: []string{"a"}, mode: types.ModeShrinking}
	journal := &mockJournal{size: 128}
	ctx := &types.Context{Journal: journal, Utils: &snapshotUtils{snapshotPath: snapPath}}

	sys, err := actor.NewSystem(ctx, session, nil)
	require.NoError(t, err)
	defer sys.Stop()

	_, statErr := os.Stat(snapPath)
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, journal.logged)
	assert.Equal(t, 0, journal.flushCount)
}

func TestSystem_SnapshotFlushesPendingFirst(t *testing.T) {
	tmpDir := t.TempDir()
	snapPath := filepath.Join(tmpDir, "snapshot.json")

	session := &mockSession{items: []string{"a", "b", "c"}, mode: types.ModeShrinking}
	journal := &mockJournal{size: 64}
	ctx := &types.Context{Journal: journal, Utils: &snapshotUtils{snapshotPath: snapPath}}

	sys, err := actor.NewSystem(ctx, session, &actor.SystemOptional{FlushAfterNDraw: 100})
	require.NoError(t, err)
	defer sys.Stop()

	sys.Draw()
	sys.Draw()
	require.NoError(t, sys.Snapshot())

	// Draws were committed before the snapshot was taken.
	assert.Equal(t, 2, session.committed)
	last := journal.logged[len(journal.logged)-1]
	assert.IsType(t, &types.JournalSnapshotItem{}, last)
	assert.Equal(t, snapPath, last.(*types.JournalSnapshotItem).Path)
}
