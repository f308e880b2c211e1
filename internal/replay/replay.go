package replay

import (
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

// ApplyLog applies a single journal entry to the session's state.
func ApplyLog(session types.DeckSession, entry types.JournalEntry) {
	switch v := entry.(type) {
	case *types.JournalDrawItem:
		if v.Success {
			session.ApplyDrawLog(v.Position)
		}
	case *types.JournalRoundItem:
		session.ApplyRoundLog()
		// Snapshot and rotate entries do not change session state.
	}
}

// ReplayLogs applies a series of journal entries to the session's state.
func ReplayLogs(session types.DeckSession, entries []types.JournalEntry) {
	for _, entry := range entries {
		ApplyLog(session, entry)
	}
}
