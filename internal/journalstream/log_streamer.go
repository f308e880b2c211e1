package journalstream

import (
	"encoding/json"
	"log/slog"

	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

// LogStreamer is a Streamer that logs journal entries using the standard
// logger. This is for testing and demonstration purposes.
type LogStreamer struct {
	logger *slog.Logger
}

// NewLogStreamer creates a new LogStreamer.
func NewLogStreamer(logger *slog.Logger) *LogStreamer {
	return &LogStreamer{logger: logger}
}

// Stream logs the journal entry.
func (s *LogStreamer) Stream(entry types.JournalEntry) {
	b, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error("failed to marshal journal entry", "error", err)
		return
	}
	s.logger.Info("streaming journal entry", "entry", string(b))
}
