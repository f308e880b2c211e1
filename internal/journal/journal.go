package journal

import (
	"bytes"
	"encoding/binary"

	"github.com/hntran/tiny-drill-deck-go/internal/journal/formatter"
	"github.com/hntran/tiny-drill-deck-go/internal/journal/storage"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
	"github.com/hntran/tiny-drill-deck-go/internal/utils"
)

// Journal buffers session records in memory and writes them to its storage
// backend on Flush.
type Journal struct {
	path      string
	seqNo     uint64
	formatter types.LogFormatter
	storage   types.Storage
	buffer    []types.JournalEntry
}

var _ types.Journal = (*Journal)(nil)

func NewJournal(path string, seqNo uint64, format types.LogFormatter, store types.Storage) (*Journal, error) {
	if format == nil {
		format = formatter.NewJSONFormatter()
	}
	if store == nil {
		var err error
		store, err = storage.NewFileStorage(path)
		if err != nil {
			return nil, err
		}
	}

	// Preallocate buffer for performance (e.g., 4096 entries)
	return &Journal{
		path:      path,
		seqNo:     seqNo,
		formatter: format,
		storage:   store,
		buffer:    make([]types.JournalEntry, 0, 4096),
	}, nil
}

func (j *Journal) LogDraw(item types.JournalDrawItem) error {
	j.buffer = append(j.buffer, &item)
	return nil
}

func (j *Journal) LogRound(item types.JournalRoundItem) error {
	j.buffer = append(j.buffer, &item)
	return nil
}

func (j *Journal) LogSnapshot(item types.JournalSnapshotItem) error {
	j.buffer = append(j.buffer, &item)
	return nil
}

func (j *Journal) Flush() error {
	if len(j.buffer) == 0 {
		return nil
	}

	data, err := j.formatter.Encode(j.buffer)
	if err != nil {
		return err
	}

	if !j.storage.CanWrite(len(data)) {
		return types.ErrJournalFull
	}

	if err := j.storage.Write(data); err != nil {
		return err
	}

	j.buffer = j.buffer[:0]
	return j.storage.Flush()
}

// Reset drops buffered, unflushed records.
func (j *Journal) Reset() {
	j.buffer = j.buffer[:0]
}

func (j *Journal) Size() (int64, error) {
	return j.storage.Size()
}

// Rotate switches to a new journal file and records the rotation as the
// first buffered entry of the new file.
func (j *Journal) Rotate(path string) error {
	if err := j.storage.Rotate(path); err != nil {
		return err
	}
	oldPath := j.path
	j.path = path
	j.seqNo++
	j.buffer = append(j.buffer, &types.JournalRotateItem{
		JournalEntryBase: types.JournalEntryBase{Type: types.LogTypeRotate},
		OldPath:          oldPath,
		NewPath:          path,
	})
	return nil
}

func (j *Journal) Close() error {
	return j.storage.Close()
}

// ParseJournal reads a journal file and returns its entries and the file's
// sequence number. Files written by the mmap backend start with a binary
// header; plain files do not.
func ParseJournal(path string, format types.LogFormatter) ([]types.JournalEntry, uint64, error) {
	data, err := utils.ReadFileContent(path)
	if err != nil {
		return nil, 0, err
	}

	var seqNo uint64
	if len(data) >= types.JournalHeaderSize {
		var hdr types.JournalHeader
		if err := binary.Read(bytes.NewReader(data[:types.JournalHeaderSize]), binary.LittleEndian, &hdr); err == nil && hdr.Magic == types.JournalMagic {
			seqNo = hdr.SeqNo
			end := types.JournalHeaderSize + int(hdr.DataLength)
			if hdr.DataLength == 0 || end > len(data) {
				// Open file: the header length is only finalized on close.
				end = len(data)
			}
			data = data[types.JournalHeaderSize:end]
		}
	}

	entries, err := format.Decode(data)
	if err != nil {
		return nil, 0, err
	}
	return entries, seqNo, nil
}
