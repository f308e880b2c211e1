package actor

import (
	"context"
	"sync"

	"github.com/hntran/tiny-drill-deck-go/internal/journalstream"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

const (
	defaultFlushAfterNDraw   = 10
	defaultRequestBufferSize = 100
)

// SystemOptional tunes the actor system. Zero values fall back to defaults.
type SystemOptional struct {
	// FlushAfterNDraw is the number of staged journal entries that
	// triggers an automatic flush.
	FlushAfterNDraw int

	// RequestBufferSize is the mailbox capacity of the processor actor.
	RequestBufferSize int

	// LastRequestID seeds the request counter, usually from recovery.
	LastRequestID uint64

	// Streamer receives journal entries as they are staged. Nil disables
	// streaming.
	Streamer journalstream.Streamer
}

// System owns the processor actor goroutine and exposes a synchronous API
// over its mailbox. All methods are safe for concurrent use.
type System struct {
	processorActor *SessionProcessorActor
	streamingActor *StreamingActor
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	stopOnce       sync.Once
}

// NewSystem creates the actor system, snapshots into an empty journal and
// starts the processing goroutines.
func NewSystem(appCtx *types.Context, session types.DeckSession, opt *SystemOptional) (*System, error) {
	flushN := defaultFlushAfterNDraw
	bufSize := defaultRequestBufferSize
	var lastRequestID uint64
	var streamer journalstream.Streamer

	if opt != nil {
		if opt.FlushAfterNDraw > 0 {
			flushN = opt.FlushAfterNDraw
		}
		if opt.RequestBufferSize > 0 {
			bufSize = opt.RequestBufferSize
		}
		lastRequestID = opt.LastRequestID
		streamer = opt.Streamer
	}

	processor := NewSessionProcessorActor(appCtx, session, bufSize, flushN, lastRequestID)
	if err := processor.Init(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &System{
		processorActor: processor,
		cancel:         cancel,
	}

	if streamer != nil {
		s.streamingActor = NewStreamingActor(streamer, bufSize)
		processor.SetStreamChannel(s.streamingActor.Mailbox())
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.streamingActor.Receive(ctx)
		}()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		processor.Receive(ctx)
	}()

	return s, nil
}

// Draw requests a single item and waits for the result.
func (s *System) Draw() DrawResponse {
	respChan := make(chan DrawResponse, 1)
	s.processorActor.mailbox <- DrawMessage{ResponseChan: respChan}
	return <-respChan
}

// DrawMany requests count items in one message. A negative count fails with
// types.ErrNegativeDrawCount; a drained deck returns the items drawn so far
// together with types.ErrDeckDrained.
func (s *System) DrawMany(count int) DrawManyResponse {
	respChan := make(chan DrawManyResponse, 1)
	s.processorActor.mailbox <- DrawManyMessage{Count: count, ResponseChan: respChan}
	return <-respChan
}

// Flush forces the journal buffer to storage and commits staged draws.
func (s *System) Flush() error {
	respChan := make(chan error, 1)
	s.processorActor.mailbox <- FlushMessage{ResponseChan: respChan}
	return <-respChan
}

// Snapshot flushes pending draws then writes a session snapshot.
func (s *System) Snapshot() error {
	respChan := make(chan error, 1)
	s.processorActor.mailbox <- SnapshotMessage{ResponseChan: respChan}
	return <-respChan
}

// State returns a copy of the current session state.
func (s *System) State() types.SessionState {
	respChan := make(chan types.SessionState, 1)
	s.processorActor.mailbox <- StateMessage{ResponseChan: respChan}
	return <-respChan
}

// GetRequestID returns the last issued request ID.
func (s *System) GetRequestID() uint64 {
	respChan := make(chan uint64, 1)
	s.processorActor.mailbox <- GetRequestIDMessage{ResponseChan: respChan}
	return <-respChan
}

// SetRequestID overrides the request counter, usually after recovery.
func (s *System) SetRequestID(id uint64) {
	respChan := make(chan struct{}, 1)
	s.processorActor.mailbox <- SetRequestIDMessage{ID: id, ResponseChan: respChan}
	<-respChan
}

// Stop shuts the system down gracefully: pending draws are answered with
// types.ErrShutingDown, the journal is flushed and closed.
func (s *System) Stop() {
	s.stopOnce.Do(func() {
		respChan := make(chan struct{}, 1)
		s.processorActor.mailbox <- StopMessage{ResponseChan: respChan}
		<-respChan
		s.cancel()
		s.wg.Wait()
	})
}
