package types

import "log/slog"

// LogType defines the type of a session journal entry.
type LogType byte

const (
	LogTypeDraw LogType = iota + 1
	LogTypeRound
	LogTypeSnapshot
	LogTypeRotate
)

// LogError defines the error code carried by a journal entry.
type LogError byte

const (
	ErrorNone LogError = iota
	ErrorDeckDrained
)

// Journal file header constants for the mmap storage backend.
const (
	JournalMagic    uint32 = 0x444B4A4C // "DKJL"
	JournalVersion1 uint32 = 1

	JournalStatusOpen   uint32 = 0
	JournalStatusClosed uint32 = 1

	JournalHeaderSize = 32

	JournalBaseName = "session.journal"
)

// JournalHeader is the fixed-size binary header at the start of an
// mmap-backed journal file.
type JournalHeader struct {
	Magic      uint32
	Version    uint32
	Status     uint32
	_          uint32
	SeqNo      uint64
	DataLength uint64
}

// ConfigCatalog represents the deck catalog loaded from a JSON file.
type ConfigCatalog struct {
	Decks []Deck `json:"decks"`
}

// Deck is a named, ordered collection of text items. Items need not be
// unique; duplicate slots are drawn independently.
type Deck struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

// DrawMode selects how a session consumes its deck.
type DrawMode byte

const (
	// ModeRefilling starts a fresh round once every slot has been drawn.
	ModeRefilling DrawMode = iota
	// ModeShrinking removes drawn slots permanently and drains.
	ModeShrinking
)

// JournalEntry is implemented by every journal record type.
type JournalEntry interface {
	GetType() LogType
}

// JournalEntryBase carries the fields common to all journal records.
type JournalEntryBase struct {
	Type  LogType  `json:"type"`
	Error LogError `json:"error,omitempty"`
}

func (b *JournalEntryBase) GetType() LogType { return b.Type }

// JournalDrawItem records a single draw from a session.
type JournalDrawItem struct {
	JournalEntryBase
	RequestID uint64 `json:"request_id"`
	Position  int    `json:"position"`
	Item      string `json:"item,omitempty"`
	Success   bool   `json:"success"`
}

// JournalRoundItem records a refilling session starting a new round.
type JournalRoundItem struct {
	JournalEntryBase
	Round uint64 `json:"round"`
}

// JournalSnapshotItem records that a snapshot was written.
type JournalSnapshotItem struct {
	JournalEntryBase
	Path string `json:"path"`
}

// JournalRotateItem records a journal file rotation.
type JournalRotateItem struct {
	JournalEntryBase
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

// SessionSnapshot is the persisted state of a drill session.
type SessionSnapshot struct {
	Deck          Deck     `json:"deck"`
	Mode          DrawMode `json:"mode"`
	Remaining     []int    `json:"remaining"`
	Round         uint64   `json:"round"`
	LastRequestID uint64   `json:"last_request_id"`
}

// DeckSession is the stateful draw surface the actor and services run on.
type DeckSession interface {
	SelectItem(ctx *Context) (int, string, error)
	CommitDraw()
	RevertDraw()
	Exhausted() bool
	Round() uint64
	State() SessionState
	CreateSnapshot() (*SessionSnapshot, error)
	LoadSnapshot(snap *SessionSnapshot) error
	ApplyDrawLog(position int)
	ApplyRoundLog()
}

// SessionState is a point-in-time view of a session.
type SessionState struct {
	Deck      string
	Mode      DrawMode
	Remaining []string
	Drawn     int
	Round     uint64
}

// Journal is a buffered append-only log of session events.
type Journal interface {
	// LogDraw appends a draw record to the buffer (no disk write yet).
	LogDraw(item JournalDrawItem) error
	// LogRound appends a round-rollover record to the buffer.
	LogRound(item JournalRoundItem) error
	// LogSnapshot appends a snapshot marker to the buffer.
	LogSnapshot(item JournalSnapshotItem) error
	// Flush writes all buffered records to storage.
	Flush() error
	// Reset drops any buffered, unflushed records.
	Reset()
	// Size reports the bytes already written to storage.
	Size() (int64, error)
	// Rotate switches the journal to a new file.
	Rotate(path string) error
	// Close closes the underlying storage.
	Close() error
}

// LogFormatter encodes and decodes journal records.
type LogFormatter interface {
	Encode(items []JournalEntry) ([]byte, error)
	Decode(data []byte) ([]JournalEntry, error)
}

// Storage is the byte-level backend under a Journal.
type Storage interface {
	CanWrite(size int) bool
	Write(data []byte) error
	Flush() error
	Size() (int64, error)
	Rotate(path string) error
	Close() error
}

// Utils provides logging and path generation to the session machinery.
type Utils interface {
	GetLogger() *slog.Logger
	GenSnapshotPath() *string
	GenRotatedJournalPath() *string
	GetJournalFiles() ([]string, error)
}

// Context for dependency injection
type Context struct {
	Journal Journal
	Utils   Utils
}

// Error
type errString string

func (e errString) Error() string {
	return string(e)
}

const ErrEmptyDeck = errString("deck is empty")
const ErrNegativeDrawCount = errString("draw count is negative")
const ErrDeckDrained = errString("deck is drained")
const ErrJournalFull = errString("journal file is full")
const ErrPendingDrawsNotEmpty = errString("pending draws remaining. CommitDraw or RevertDraw before")
const ErrShutingDown = errString("request cancelled: processor shutting down")
