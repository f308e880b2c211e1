package actor

import (
	"context"

	"github.com/hntran/tiny-drill-deck-go/internal/journalstream"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

// StreamingActor forwards staged journal entries to a Streamer without ever
// blocking the processor actor.
type StreamingActor struct {
	streamer journalstream.Streamer
	mailbox  chan types.JournalEntry
}

func NewStreamingActor(streamer journalstream.Streamer, mailboxSize int) *StreamingActor {
	return &StreamingActor{
		streamer: streamer,
		mailbox:  make(chan types.JournalEntry, mailboxSize),
	}
}

// Mailbox exposes the send side for the processor actor.
func (a *StreamingActor) Mailbox() chan<- types.JournalEntry {
	return a.mailbox
}

// Receive drains the mailbox until the context is cancelled.
func (a *StreamingActor) Receive(ctx context.Context) {
	for {
		select {
		case entry := <-a.mailbox:
			a.streamer.Stream(entry)
		case <-ctx.Done():
			// Drain what is left before exiting.
			for {
				select {
				case entry := <-a.mailbox:
					a.streamer.Stream(entry)
				default:
					return
				}
			}
		}
	}
}
