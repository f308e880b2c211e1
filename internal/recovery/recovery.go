package recovery

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hntran/tiny-drill-deck-go/internal/deck"
	"github.com/hntran/tiny-drill-deck-go/internal/journal"
	"github.com/hntran/tiny-drill-deck-go/internal/replay"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

// RecoverSession loads the session state from a snapshot and replays any
// subsequent journal entries, so an interrupted drill resumes without
// re-drawing slots it already consumed.
// It returns the recovered session, the last used request ID, and the path
// of the last journal file.
//
// The initial session is the fallback state when no snapshot exists yet;
// it is mutated in place and returned.
func RecoverSession(snapshotPath string, initial *deck.Session, format types.LogFormatter, utils types.Utils) (*deck.Session, uint64, string, error) {
	var lastRequestID uint64

	// 1. Get all journal files, sorted by sequence number.
	journalFiles, err := utils.GetJournalFiles()
	if err != nil {
		return nil, 0, "", fmt.Errorf("failed to get journal files: %w", err)
	}

	// 2. Parse all journal files to get all entries.
	var allEntries []types.JournalEntry
	for _, journalFile := range journalFiles {
		entries, _, err := journal.ParseJournal(journalFile, format)
		if err != nil {
			return nil, 0, "", fmt.Errorf("error parsing journal file %s: %w", journalFile, err)
		}
		allEntries = append(allEntries, entries...)
	}

	// 3. Determine the starting point for recovery.
	var snapshotToLoad string
	var logsToReplay []types.JournalEntry

	// Find the last snapshot marker in the combined journal entries.
	lastSnapshotIdx := -1
	for i := len(allEntries) - 1; i >= 0; i-- {
		if s, ok := allEntries[i].(*types.JournalSnapshotItem); ok {
			snapshotToLoad = s.Path
			lastSnapshotIdx = i
			break
		}
	}

	if lastSnapshotIdx != -1 {
		// A snapshot was recorded in the journal: replay what came after it.
		logsToReplay = allEntries[lastSnapshotIdx+1:]
	} else {
		// No snapshot marker; use the standalone snapshotPath and replay
		// every journal entry.
		snapshotToLoad = snapshotPath
		logsToReplay = allEntries
	}

	// 4. Load the starting state from the chosen snapshot, falling back to
	// the provided initial session when none exists.
	if _, err := os.Stat(snapshotToLoad); err == nil {
		file, err := os.Open(snapshotToLoad)
		if err != nil {
			return nil, 0, "", fmt.Errorf("failed to open snapshot file %s: %w", snapshotToLoad, err)
		}
		defer file.Close()

		var snap types.SessionSnapshot
		if err := json.NewDecoder(file).Decode(&snap); err != nil {
			return nil, 0, "", fmt.Errorf("failed to decode snapshot %s: %w", snapshotToLoad, err)
		}

		if err := initial.LoadSnapshot(&snap); err != nil {
			return nil, 0, "", fmt.Errorf("failed to load snapshot %s: %w", snapshotToLoad, err)
		}
		lastRequestID = snap.LastRequestID

	} else if !os.IsNotExist(err) {
		return nil, 0, "", fmt.Errorf("failed to stat snapshot file %s: %w", snapshotToLoad, err)
	}

	// 5. Replay to bring the session to its most recent state.
	if len(logsToReplay) > 0 {
		replay.ReplayLogs(initial, logsToReplay)

		// The highest replayed request ID wins over the snapshot's.
		for _, entry := range logsToReplay {
			if drawLog, ok := entry.(*types.JournalDrawItem); ok {
				if drawLog.RequestID > lastRequestID {
					lastRequestID = drawLog.RequestID
				}
			}
		}
	}

	var lastJournalPath string
	if len(journalFiles) > 0 {
		lastJournalPath = journalFiles[len(journalFiles)-1]
	}

	return initial, lastRequestID, lastJournalPath, nil
}
