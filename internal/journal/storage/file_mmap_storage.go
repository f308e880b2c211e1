package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

const ( // Constants for mmap file operations
	defaultMmapFileSize int64 = 1024 * 1024 * 10 // 10 MB
)

// FileMMapStorage writes journal bytes through a memory-mapped file of
// fixed capacity. The header at the start of the file records the data
// length when the file is finalized.
type FileMMapStorage struct {
	file   *os.File
	mmap   mmap.MMap
	path   string
	seqNo  uint64
	offset int64

	sizeMapInBytes int64
}

var _ types.Storage = (*FileMMapStorage)(nil)

type FileMMapStorageOps struct {
	MMapFileSizeInBytes int64
}

func NewFileMMapStorage(path string, seqNo uint64, opts ...FileMMapStorageOps) (*FileMMapStorage, error) {
	sizeMapInBytes := defaultMmapFileSize
	for _, val := range opts {
		if val.MMapFileSizeInBytes > 0 {
			sizeMapInBytes = val.MMapFileSizeInBytes
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	currentSize := info.Size()
	isNewFile := currentSize == 0

	if isNewFile {
		if err := f.Truncate(sizeMapInBytes); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to truncate file: %w", err)
		}
	} else {
		// If the file exists, use its size for the mapping
		sizeMapInBytes = currentSize
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file: %w", err)
	}

	s := &FileMMapStorage{
		file:           f,
		mmap:           m,
		path:           path,
		seqNo:          seqNo,
		sizeMapInBytes: sizeMapInBytes,
	}

	if isNewFile {
		hdr := types.JournalHeader{
			Magic:   types.JournalMagic,
			Version: types.JournalVersion1,
			Status:  types.JournalStatusOpen,
			SeqNo:   seqNo,
		}
		var buf bytes.Buffer
		if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
			s.Close()
			return nil, err
		}
		copy(s.mmap, buf.Bytes())
		s.offset = int64(types.JournalHeaderSize)
	} else {
		// Existing file, read header to restore offset
		var hdr types.JournalHeader
		if err := binary.Read(bytes.NewReader(m[:types.JournalHeaderSize]), binary.LittleEndian, &hdr); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to read journal header from existing file: %w", err)
		}
		s.seqNo = hdr.SeqNo
		s.offset = int64(types.JournalHeaderSize) + int64(hdr.DataLength)
	}

	return s, nil
}

func (s *FileMMapStorage) Write(data []byte) error {
	copy(s.mmap[s.offset:], data)
	s.offset += int64(len(data))
	return nil
}

func (s *FileMMapStorage) CanWrite(size int) bool {
	// For mmap, the capacity is the total length of the map.
	return s.offset+int64(size) <= int64(len(s.mmap))
}

func (s *FileMMapStorage) Size() (int64, error) {
	return s.offset - int64(types.JournalHeaderSize), nil
}

func (s *FileMMapStorage) Flush() error {
	if err := s.mmap.Flush(); err != nil {
		return err
	}
	return s.writeHeader(types.JournalStatusOpen)
}

func (s *FileMMapStorage) writeHeader(status uint32) error {
	hdr := types.JournalHeader{
		Magic:      types.JournalMagic,
		Version:    types.JournalVersion1,
		Status:     status,
		SeqNo:      s.seqNo,
		DataLength: uint64(s.offset - int64(types.JournalHeaderSize)),
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
		return err
	}
	copy(s.mmap, buf.Bytes())
	return nil
}

// FinalizeAndClose marks the header closed, flushes and unmaps.
func (s *FileMMapStorage) FinalizeAndClose() error {
	if s.mmap == nil {
		return nil
	}

	if err := s.writeHeader(types.JournalStatusClosed); err != nil {
		return err
	}

	if err := s.mmap.Flush(); err != nil {
		return err
	}

	if err := s.mmap.Unmap(); err != nil {
		s.file.Close()
		return err
	}
	s.mmap = nil

	return s.file.Close()
}

// Rotate finalizes the current file and maps a fresh one at path with the
// next sequence number.
func (s *FileMMapStorage) Rotate(path string) error {
	seqNo := s.seqNo + 1
	size := s.sizeMapInBytes
	if err := s.FinalizeAndClose(); err != nil {
		return err
	}

	next, err := NewFileMMapStorage(path, seqNo, FileMMapStorageOps{MMapFileSizeInBytes: size})
	if err != nil {
		return err
	}
	*s = *next
	return nil
}

func (s *FileMMapStorage) Close() error {
	return s.FinalizeAndClose()
}
