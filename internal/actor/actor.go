package actor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hntran/tiny-drill-deck-go/internal/replay"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

// SessionProcessorActor encapsulates the state and behavior of draw
// processing. It is designed to be run in a single goroutine, processing
// messages from its mailbox; this is the serialization layer that makes a
// single-threaded session safe to use from concurrent callers.
type SessionProcessorActor struct {
	ctx             *types.Context
	session         types.DeckSession
	mailbox         chan interface{}
	flushAfterNDraw int
	pendingLogs     []types.JournalEntry
	requestID       uint64
	streamChan      chan<- types.JournalEntry
	stopped         bool
}

// NewSessionProcessorActor creates a new actor instance.
func NewSessionProcessorActor(ctx *types.Context, session types.DeckSession, mailboxSize, flushAfterNDraw int, requestID uint64) *SessionProcessorActor {
	return &SessionProcessorActor{
		ctx:             ctx,
		session:         session,
		mailbox:         make(chan interface{}, mailboxSize),
		flushAfterNDraw: flushAfterNDraw,
		pendingLogs:     make([]types.JournalEntry, 0, flushAfterNDraw*2),
		requestID:       requestID,
	}
}

// Init performs the initial setup for the actor, like creating an initial
// snapshot if the journal is empty. It's called once when the actor starts.
func (a *SessionProcessorActor) Init() error {
	size, err := a.ctx.Journal.Size()
	if err != nil {
		return fmt.Errorf("could not determine journal size: %w", err)
	}

	if size == 0 {
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Info("journal is empty, creating initial snapshot.")
		}
		if err := a.snapshot(); err != nil {
			return fmt.Errorf("failed to create initial snapshot: %w", err)
		}
		// The snapshot marker is staged in the journal's buffer, flush it.
		return a.ctx.Journal.Flush()
	}

	return nil
}

// SetStreamChannel wires the actor to a streaming actor's mailbox.
func (a *SessionProcessorActor) SetStreamChannel(ch chan<- types.JournalEntry) {
	a.streamChan = ch
}

// Receive starts the actor's message processing loop.
// This method is expected to be called in its own goroutine.
func (a *SessionProcessorActor) Receive(ctx context.Context) {
	for {
		select {
		case msg := <-a.mailbox:
			if stop := a.handleMessage(msg); stop {
				return
			}
		case <-ctx.Done():
			// Context was cancelled, perform graceful shutdown.
			a.shutdown()
			return
		}
	}
}

func (a *SessionProcessorActor) handleMessage(msg interface{}) bool {
	switch m := msg.(type) {
	case DrawMessage:
		m.ResponseChan <- a.drawOne()
	case DrawManyMessage:
		m.ResponseChan <- a.drawMany(m.Count)
	case StopMessage:
		a.shutdown()
		close(m.ResponseChan)
		return true
	case FlushMessage:
		m.ResponseChan <- a.flush()
	case SnapshotMessage:
		m.ResponseChan <- a.handleSnapshot()
	case StateMessage:
		// Read-only, safe to answer directly from the actor goroutine.
		m.ResponseChan <- a.session.State()
	case GetRequestIDMessage:
		m.ResponseChan <- a.requestID
	case SetRequestIDMessage:
		a.requestID = m.ID
		close(m.ResponseChan)
	}
	return false
}

func (a *SessionProcessorActor) drawOne() DrawResponse {
	a.requestID++
	reqID := a.requestID

	prevRound := a.session.Round()
	pos, item, err := a.session.SelectItem(a.ctx)

	// A refilling session may have rolled into a new round; record that
	// before the draw so replay sees them in order.
	if round := a.session.Round(); round != prevRound {
		roundItem := types.JournalRoundItem{
			JournalEntryBase: types.JournalEntryBase{Type: types.LogTypeRound},
			Round:            round,
		}
		a.ctx.Journal.LogRound(roundItem)
		a.stage(&roundItem)
	}

	logItem := types.JournalDrawItem{
		JournalEntryBase: types.JournalEntryBase{Type: types.LogTypeDraw},
		RequestID:        reqID,
		Position:         pos,
		Success:          err == nil,
	}
	if logItem.Success {
		logItem.Item = item
	} else if err == types.ErrDeckDrained {
		logItem.Error = types.ErrorDeckDrained
	}

	walErr := a.ctx.Journal.LogDraw(logItem)
	a.stage(&logItem)

	if len(a.pendingLogs) >= a.flushAfterNDraw {
		a.flush()
	}

	resp := DrawResponse{RequestID: reqID, Position: pos, Err: err}
	if walErr == nil {
		resp.Item = item
	} else {
		resp.Err = walErr
	}
	return resp
}

func (a *SessionProcessorActor) drawMany(count int) DrawManyResponse {
	if count < 0 {
		return DrawManyResponse{Err: types.ErrNegativeDrawCount}
	}
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		resp := a.drawOne()
		if resp.Err != nil {
			return DrawManyResponse{Items: items, Err: resp.Err}
		}
		items = append(items, resp.Item)
	}
	return DrawManyResponse{Items: items}
}

func (a *SessionProcessorActor) stage(entry types.JournalEntry) {
	a.pendingLogs = append(a.pendingLogs, entry)
	if a.streamChan != nil {
		select {
		case a.streamChan <- entry:
		default:
			// Streaming is best-effort; never block the draw path.
		}
	}
}

func (a *SessionProcessorActor) flush() error {
	if len(a.pendingLogs) == 0 {
		return nil
	}

	flushErr := a.ctx.Journal.Flush()

	if flushErr != nil {
		if flushErr == types.ErrJournalFull {
			return a.handleJournalFull()
		}

		// Another flush error. Revert draws.
		a.session.RevertDraw()
		a.pendingLogs = a.pendingLogs[:0]
		a.ctx.Journal.Reset() // Clear the unflushed buffer
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Error("[Actor] journal flush failed, reverting draws.", "error", flushErr)
		}
		return flushErr
	}

	// Flush was successful. Commit draws.
	a.session.CommitDraw()

	if logger := a.ctx.Utils.GetLogger(); logger != nil {
		logger.Debug(fmt.Sprintf("[Actor] journal flush and commit - %d entries", len(a.pendingLogs)))
	}
	a.pendingLogs = a.pendingLogs[:0]
	return nil
}

func (a *SessionProcessorActor) handleJournalFull() error {
	if logger := a.ctx.Utils.GetLogger(); logger != nil {
		logger.Info("journal is full. Reverting draws, rotating, and re-applying entries.")
	}

	// 1. Preserve pending entries and revert in-memory state
	logsToReplay := make([]types.JournalEntry, len(a.pendingLogs))
	copy(logsToReplay, a.pendingLogs)
	a.session.RevertDraw()
	a.pendingLogs = a.pendingLogs[:0]
	a.ctx.Journal.Reset() // Clear the unflushed buffer in the journal

	// 2. Rotate the journal file
	rotatedPath := a.ctx.Utils.GenRotatedJournalPath()
	if rotatedPath != nil {
		if err := a.ctx.Journal.Rotate(*rotatedPath); err != nil {
			if logger := a.ctx.Utils.GetLogger(); logger != nil {
				logger.Error("failed to rotate journal.", "error", err)
			}
			// This is a critical failure, can't proceed.
			return err
		}
	}

	// 3. Create and record a snapshot in the new journal
	if err := a.snapshot(); err != nil {
		// Also a critical failure.
		return err
	}
	// Flush the snapshot marker immediately to secure the new journal's
	// starting state.
	if err := a.ctx.Journal.Flush(); err != nil {
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Error("CRITICAL: could not flush snapshot to new journal. State may be inconsistent.", "error", err)
		}
		return err
	}

	// 4. Re-apply and re-log the preserved operations
	a.replayAndRelog(logsToReplay)

	// 5. Final flush attempt on the new journal
	if err := a.ctx.Journal.Flush(); err != nil {
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Error("CRITICAL: flush failed even after journal rotation. Data may be lost.", "error", err)
		}
		// Recovery is difficult here; the rotation and snapshot already
		// happened. Revert the re-applied draws and report the error.
		a.session.RevertDraw()
		a.pendingLogs = a.pendingLogs[:0]
		return err
	}
	a.pendingLogs = a.pendingLogs[:0]

	return nil
}

func (a *SessionProcessorActor) replayAndRelog(logsToReplay []types.JournalEntry) {
	if logger := a.ctx.Utils.GetLogger(); logger != nil {
		logger.Info("replaying pending entries to the new journal.", "count", len(logsToReplay))
	}
	for _, entry := range logsToReplay {
		// Re-apply the operation to the in-memory session
		replay.ApplyLog(a.session, entry)

		// Re-log the operation to the new journal's buffer
		switch v := entry.(type) {
		case *types.JournalDrawItem:
			a.ctx.Journal.LogDraw(*v)
			a.pendingLogs = append(a.pendingLogs, v)
		case *types.JournalRoundItem:
			a.ctx.Journal.LogRound(*v)
			a.pendingLogs = append(a.pendingLogs, v)
		}
	}
}

func (a *SessionProcessorActor) handleSnapshot() error {
	if err := a.flush(); err != nil {
		return err
	}
	return a.snapshot()
}

func (a *SessionProcessorActor) snapshot() error {
	snapshotPath := a.ctx.Utils.GenSnapshotPath()
	if snapshotPath == nil {
		return nil // Snapshotting is disabled
	}

	if logger := a.ctx.Utils.GetLogger(); logger != nil {
		logger.Info("creating snapshot.", "path", *snapshotPath)
	}

	snap, err := a.session.CreateSnapshot()
	if err != nil {
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Error("failed to create snapshot data.", "error", err)
		}
		return err
	}

	// The actor owns the request ID, so it sets it on the snapshot.
	snap.LastRequestID = a.requestID

	file, err := os.Create(*snapshotPath)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	if err := enc.Encode(snap); err != nil {
		return err
	}

	logItem := types.JournalSnapshotItem{
		JournalEntryBase: types.JournalEntryBase{Type: types.LogTypeSnapshot},
		Path:             *snapshotPath,
	}
	if err := a.ctx.Journal.LogSnapshot(logItem); err != nil {
		if logger := a.ctx.Utils.GetLogger(); logger != nil {
			logger.Error("failed to record snapshot in journal.", "error", err)
		}
		return err
	}

	return nil
}

func (a *SessionProcessorActor) shutdown() {
	if a.stopped {
		return
	}
	a.stopped = true
	if logger := a.ctx.Utils.GetLogger(); logger != nil {
		logger.Debug("[Actor] shutdown")
	}

	// Drain mailbox and cancel pending requests
	close(a.mailbox)
	for msg := range a.mailbox {
		switch m := msg.(type) {
		case DrawMessage:
			m.ResponseChan <- DrawResponse{Err: types.ErrShutingDown}
		case DrawManyMessage:
			m.ResponseChan <- DrawManyResponse{Err: types.ErrShutingDown}
		}
	}

	a.flush()
	a.ctx.Journal.Close()
}
