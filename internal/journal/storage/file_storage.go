package storage

import (
	"os"

	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

// FileStorage appends journal bytes to a plain file. An optional maximum
// file size turns CanWrite into a rotation signal.
type FileStorage struct {
	file    *os.File
	offset  int64
	maxSize int64
}

var _ types.Storage = (*FileStorage)(nil)

type FileStorageOps struct {
	MaxFileSizeInBytes int64
}

func NewFileStorage(path string, opts ...FileStorageOps) (*FileStorage, error) {
	var maxSize int64
	for _, val := range opts {
		if val.MaxFileSizeInBytes > 0 {
			maxSize = val.MaxFileSizeInBytes
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	return &FileStorage{file: f, offset: info.Size(), maxSize: maxSize}, nil
}

func (s *FileStorage) CanWrite(size int) bool {
	if s.maxSize <= 0 {
		return true
	}
	return s.offset+int64(size) <= s.maxSize
}

func (s *FileStorage) Write(data []byte) error {
	n, err := s.file.Write(data)
	s.offset += int64(n)
	return err
}

func (s *FileStorage) Flush() error {
	return s.file.Sync()
}

func (s *FileStorage) Size() (int64, error) {
	return s.offset, nil
}

func (s *FileStorage) Rotate(newPath string) error {
	f, err := os.OpenFile(newPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	s.file.Close()
	s.file = f
	s.offset = 0
	return nil
}

func (s *FileStorage) Close() error {
	return s.file.Close()
}
