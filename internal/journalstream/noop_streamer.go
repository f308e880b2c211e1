package journalstream

import "github.com/hntran/tiny-drill-deck-go/internal/types"

// NoOpStreamer is a Streamer that does nothing.
// It is used when journal streaming is disabled.
type NoOpStreamer struct{}

// NewNoOpStreamer creates a new NoOpStreamer.
func NewNoOpStreamer() *NoOpStreamer {
	return &NoOpStreamer{}
}

// Stream does nothing.
func (s *NoOpStreamer) Stream(entry types.JournalEntry) {}
