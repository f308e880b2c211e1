package deck

import (
	"encoding/json"
	"math/rand"
	"os"

	"github.com/hntran/tiny-drill-deck-go/internal/selector"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

// Session runs one deck through a selector. In ModeRefilling draws never
// run out; in ModeShrinking each slot is drawn once and the deck drains.
// Draws are staged until CommitDraw or RevertDraw, so the journal layer
// can revert state when a flush fails.
type Session struct {
	deck   types.Deck
	mode   types.DrawMode
	refill *selector.RefillingSelector[string]
	shrink *selector.ShrinkingSelector[string]

	pending []int
	drawn   int

	// Last committed round state (ModeRefilling). RevertDraw restores it,
	// which un-rolls any refill a staged draw triggered.
	committedRemaining []int
	committedRound     uint64
}

var _ types.DeckSession = (*Session)(nil)

// SessionOptional provides optional parameters for creating a Session.
type SessionOptional struct {
	Mode   types.DrawMode
	Source rand.Source
}

// NewSession creates a session over the given deck.
// It fails with types.ErrEmptyDeck when the deck has no items.
func NewSession(d types.Deck, opt *SessionOptional) (*Session, error) {
	mode := types.ModeRefilling
	var src rand.Source
	if opt != nil {
		mode = opt.Mode
		src = opt.Source
	}

	s := &Session{deck: d, mode: mode}
	selOpt := &selector.Optional{Source: src}

	var err error
	switch mode {
	case types.ModeShrinking:
		s.shrink, err = selector.NewShrinkingSelector(d.Items, selOpt)
	default:
		s.refill, err = selector.NewRefillingSelector(d.Items, selOpt)
	}
	if err != nil {
		return nil, err
	}
	s.checkpoint()
	return s, nil
}

// checkpoint records the committed selector state RevertDraw falls back to.
func (s *Session) checkpoint() {
	if s.mode == types.ModeShrinking {
		return
	}
	s.committedRemaining = s.refill.RemainingIndices()
	s.committedRound = s.refill.Round()
}

// SelectItem draws one slot and stages it. It returns the slot's position
// in the deck and its item. In ModeShrinking it fails with
// types.ErrDeckDrained once the deck has drained.
func (s *Session) SelectItem(ctx *types.Context) (int, string, error) {
	var pos int
	if s.mode == types.ModeShrinking {
		p, err := s.shrink.DrawIndex()
		if err != nil {
			return 0, "", err
		}
		pos = p
	} else {
		pos = s.refill.DrawIndex()
	}
	s.pending = append(s.pending, pos)
	s.drawn++
	return pos, s.deck.Items[pos], nil
}

// CommitDraw finalizes all staged draws.
func (s *Session) CommitDraw() {
	s.pending = s.pending[:0]
	s.checkpoint()
}

// RevertDraw discards all staged draws and restores the last committed
// state. Staged draws may have rolled the refilling selector into a new
// round; the restore un-rolls that too.
func (s *Session) RevertDraw() {
	if len(s.pending) == 0 {
		return
	}
	s.drawn -= len(s.pending)
	if s.mode == types.ModeShrinking {
		for _, pos := range s.pending {
			s.shrink.Restore(pos)
		}
	} else {
		s.refill.Reset(s.committedRemaining, s.committedRound)
	}
	s.pending = s.pending[:0]
}

// Exhausted reports whether the current round (ModeRefilling) or the whole
// deck (ModeShrinking) has been fully drawn.
func (s *Session) Exhausted() bool {
	if s.mode == types.ModeShrinking {
		return s.shrink.Drained()
	}
	return s.refill.Exhausted()
}

// Round returns how many rounds have rolled over. Always zero in
// ModeShrinking.
func (s *Session) Round() uint64 {
	if s.mode == types.ModeShrinking {
		return 0
	}
	return s.refill.Round()
}

// State returns a point-in-time view of the session.
func (s *Session) State() types.SessionState {
	var positions []int
	if s.mode == types.ModeShrinking {
		positions = s.shrink.RemainingIndices()
	} else {
		positions = s.refill.RemainingIndices()
	}
	remaining := make([]string, 0, len(positions))
	for _, pos := range positions {
		remaining = append(remaining, s.deck.Items[pos])
	}
	return types.SessionState{
		Deck:      s.deck.Name,
		Mode:      s.mode,
		Remaining: remaining,
		Drawn:     s.drawn,
		Round:     s.Round(),
	}
}

// CreateSnapshot captures the committed session state.
// It fails while draws are still staged.
func (s *Session) CreateSnapshot() (*types.SessionSnapshot, error) {
	if len(s.pending) > 0 {
		return nil, types.ErrPendingDrawsNotEmpty
	}
	var remaining []int
	if s.mode == types.ModeShrinking {
		remaining = s.shrink.RemainingIndices()
	} else {
		remaining = s.refill.RemainingIndices()
	}
	return &types.SessionSnapshot{
		Deck:      s.deck,
		Mode:      s.mode,
		Remaining: remaining,
		Round:     s.Round(),
	}, nil
}

// LoadSnapshot replaces the session state with the snapshot's.
func (s *Session) LoadSnapshot(snap *types.SessionSnapshot) error {
	fresh, err := NewSession(snap.Deck, &SessionOptional{Mode: snap.Mode})
	if err != nil {
		return err
	}
	switch snap.Mode {
	case types.ModeShrinking:
		if err := fresh.shrink.Reset(snap.Remaining); err != nil {
			return err
		}
	default:
		if err := fresh.refill.Reset(snap.Remaining, snap.Round); err != nil {
			return err
		}
	}
	fresh.drawn = len(snap.Deck.Items) - len(snap.Remaining)
	fresh.checkpoint()
	*s = *fresh
	return nil
}

// ApplyDrawLog re-applies a journaled draw at the given position.
// Replay applies committed history, so the draw is not staged.
func (s *Session) ApplyDrawLog(position int) {
	if s.mode == types.ModeShrinking {
		if s.shrink.Take(position) {
			s.drawn++
		}
		return
	}
	if s.refill.Take(position) {
		s.drawn++
	}
	s.checkpoint()
}

// ApplyRoundLog re-applies a journaled round rollover.
func (s *Session) ApplyRoundLog() {
	if s.mode == types.ModeShrinking {
		return
	}
	s.refill.Refill()
	s.checkpoint()
}

// Deck returns the deck this session runs over.
func (s *Session) Deck() types.Deck {
	return s.deck
}

// Mode returns the session's draw mode.
func (s *Session) Mode() types.DrawMode {
	return s.mode
}

// LoadCatalog reads a JSON deck catalog from disk.
func LoadCatalog(path string) (types.ConfigCatalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return types.ConfigCatalog{}, err
	}
	defer file.Close()

	var catalog types.ConfigCatalog
	if err := json.NewDecoder(file).Decode(&catalog); err != nil {
		return types.ConfigCatalog{}, err
	}
	return catalog, nil
}

// FindDeck returns the named deck from a catalog, or the first deck when
// name is empty.
func FindDeck(catalog types.ConfigCatalog, name string) (types.Deck, bool) {
	if len(catalog.Decks) == 0 {
		return types.Deck{}, false
	}
	if name == "" {
		return catalog.Decks[0], true
	}
	for _, d := range catalog.Decks {
		if d.Name == name {
			return d, true
		}
	}
	return types.Deck{}, false
}

// CreateSessionFromCatalogPath loads a catalog and opens a session over
// the named deck.
func CreateSessionFromCatalogPath(path, deckName string, opt *SessionOptional) (*Session, error) {
	catalog, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	d, ok := FindDeck(catalog, deckName)
	if !ok {
		return nil, types.ErrEmptyDeck
	}
	return NewSession(d, opt)
}
