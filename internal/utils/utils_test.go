package utils_test

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
	"github.com/hntran/tiny-drill-deck-go/internal/utils"
)

func TestGetJournalFiles_SortedBySequence(t *testing.T) {
	dir := t.TempDir()
	for _, seq := range []int{2, 0, 10, 1} {
		name := fmt.Sprintf("%s.%03d", types.JournalBaseName, seq)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	// Unrelated file must be ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))

	u := utils.NewDefaultUtils(dir, "", slog.LevelInfo, nil)
	files, err := u.GetJournalFiles()
	require.NoError(t, err)
	require.Len(t, files, 4)

	wantOrder := []int{0, 1, 2, 10}
	for i, f := range files {
		assert.Equal(t, fmt.Sprintf("%s.%03d", types.JournalBaseName, wantOrder[i]), filepath.Base(f))
	}
}

func TestGenNextJournalPath(t *testing.T) {
	dir := t.TempDir()
	u := utils.NewDefaultUtils(dir, "", slog.LevelInfo, nil)

	path, seq, err := u.GenNextJournalPath()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), seq)
	assert.Equal(t, types.JournalBaseName+".000", filepath.Base(path))

	require.NoError(t, os.WriteFile(path, nil, 0644))

	path, seq, err = u.GenNextJournalPath()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
	assert.Equal(t, types.JournalBaseName+".001", filepath.Base(path))
}

func TestGenSnapshotPath_DisabledWhenNoDir(t *testing.T) {
	u := utils.NewDefaultUtils("", "", slog.LevelInfo, nil)
	assert.Nil(t, u.GenSnapshotPath())

	dir := t.TempDir()
	u = utils.NewDefaultUtils("", dir, slog.LevelInfo, nil)
	p := u.GenSnapshotPath()
	require.NotNil(t, p)
	assert.Equal(t, "snapshot.json", filepath.Base(*p))
}
