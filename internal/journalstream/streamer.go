package journalstream

import "github.com/hntran/tiny-drill-deck-go/internal/types"

// Streamer defines the interface for streaming journal entries to an
// external observer (a replica, a live dashboard).
type Streamer interface {
	// Stream sends a journal entry to the observer.
	// This method should be non-blocking.
	Stream(entry types.JournalEntry)
}
