package utils

import (
	"log/slog"
	"math/rand"

	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

// MockRandSource is a mock implementation of rand.Source for predictable testing.
type MockRandSource struct {
	Values []int64
	index  int
}

func (m *MockRandSource) Int63() int64 {
	if m.index >= len(m.Values) {
		panic("not enough mock random values")
	}
	val := m.Values[m.index]
	m.index++
	return val
}

func (m *MockRandSource) Seed(seed int64) {
	// No-op for mock
}

var _ rand.Source = (*MockRandSource)(nil)

// MockJournal is a no-op journal for tests that do not exercise persistence.
type MockJournal struct{}

var _ types.Journal = (*MockJournal)(nil)

func (m *MockJournal) LogDraw(item types.JournalDrawItem) error         { return nil }
func (m *MockJournal) LogRound(item types.JournalRoundItem) error       { return nil }
func (m *MockJournal) LogSnapshot(item types.JournalSnapshotItem) error { return nil }
func (m *MockJournal) Flush() error                                     { return nil }
func (m *MockJournal) Reset()                                           {}
func (m *MockJournal) Size() (int64, error)                             { return 0, nil }
func (m *MockJournal) Rotate(path string) error                         { return nil }
func (m *MockJournal) Close() error                                     { return nil }

// MockUtils is a mock implementation of the types.Utils interface for testing.
type MockUtils struct{}

var _ types.Utils = (*MockUtils)(nil)

func (m *MockUtils) GetLogger() *slog.Logger {
	return nil // No logging in tests
}

func (m *MockUtils) GenSnapshotPath() *string {
	return nil // Not used in this test
}

func (m *MockUtils) GenRotatedJournalPath() *string {
	return nil // Not used in this test
}

func (m *MockUtils) GetJournalFiles() ([]string, error) {
	return nil, nil
}
