package actor

import "github.com/hntran/tiny-drill-deck-go/internal/types"

// DrawMessage is sent to the actor to request a single draw.
type DrawMessage struct {
	ResponseChan chan DrawResponse
}

// DrawResponse is the response sent back for a DrawMessage.
type DrawResponse struct {
	RequestID uint64
	Position  int
	Item      string
	Err       error
}

// DrawManyMessage is sent to the actor to request a batch of draws.
type DrawManyMessage struct {
	Count        int
	ResponseChan chan DrawManyResponse
}

// DrawManyResponse is the response sent back for a DrawManyMessage.
// Items holds the draws that succeeded before Err occurred, if any.
type DrawManyResponse struct {
	Items []string
	Err   error
}

// StopMessage is sent to the actor to request a graceful shutdown.
type StopMessage struct {
	ResponseChan chan struct{}
}

// FlushMessage is sent to the actor to manually trigger a journal flush.
type FlushMessage struct {
	ResponseChan chan error
}

// SnapshotMessage is sent to the actor to manually trigger a snapshot.
type SnapshotMessage struct {
	ResponseChan chan error
}

// StateMessage is sent to the actor to request the current session state.
type StateMessage struct {
	ResponseChan chan types.SessionState
}

// GetRequestIDMessage asks the actor for its current request ID.
type GetRequestIDMessage struct {
	ResponseChan chan uint64
}

// SetRequestIDMessage sets the actor's request ID, typically after recovery.
type SetRequestIDMessage struct {
	ID           uint64
	ResponseChan chan struct{}
}
