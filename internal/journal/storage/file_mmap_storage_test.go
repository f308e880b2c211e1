package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
	"github.com/hntran/tiny-drill-deck-go/internal/utils"
)

func TestFileMMapStorage_WriteAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), types.JournalBaseName+".000")
	s, err := NewFileMMapStorage(path, 0, FileMMapStorageOps{MMapFileSizeInBytes: 4096})
	require.NoError(t, err)

	require.NoError(t, s.Write([]byte("entry-1\n")))
	require.NoError(t, s.Write([]byte("entry-2\n")))
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())

	data, err := utils.ReadFileContent(path)
	require.NoError(t, err)
	assert.Equal(t, "entry-1\nentry-2\n", string(data[types.JournalHeaderSize:]))
}

func TestFileMMapStorage_ReopenRestoresOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), types.JournalBaseName+".007")
	s, err := NewFileMMapStorage(path, 7, FileMMapStorageOps{MMapFileSizeInBytes: 4096})
	require.NoError(t, err)
	require.NoError(t, s.Write([]byte("abcd")))
	require.NoError(t, s.Flush())
	require.NoError(t, s.Close())

	s, err = NewFileMMapStorage(path, 0)
	require.NoError(t, err)
	defer s.Close()

	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(4), size)
	assert.Equal(t, uint64(7), s.seqNo)
}

func TestFileMMapStorage_CanWriteIsCapacityBound(t *testing.T) {
	path := filepath.Join(t.TempDir(), types.JournalBaseName+".000")
	s, err := NewFileMMapStorage(path, 0, FileMMapStorageOps{MMapFileSizeInBytes: types.JournalHeaderSize + 16})
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.CanWrite(16))
	assert.False(t, s.CanWrite(17))

	require.NoError(t, s.Write(make([]byte, 10)))
	assert.True(t, s.CanWrite(6))
	assert.False(t, s.CanWrite(7))
}

func TestFileMMapStorage_RotateStartsFreshFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileMMapStorage(filepath.Join(dir, types.JournalBaseName+".000"), 0, FileMMapStorageOps{MMapFileSizeInBytes: 4096})
	require.NoError(t, err)
	require.NoError(t, s.Write([]byte("old")))
	require.NoError(t, s.Flush())

	require.NoError(t, s.Rotate(filepath.Join(dir, types.JournalBaseName+".001")))
	defer s.Close()

	size, err := s.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
	assert.Equal(t, uint64(1), s.seqNo)

	require.NoError(t, s.Write([]byte("new")))
	require.NoError(t, s.Flush())

	data, err := utils.ReadFileContent(filepath.Join(dir, types.JournalBaseName+".001"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data[types.JournalHeaderSize:]))
}
