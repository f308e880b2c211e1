package drill

import (
	"strings"
	"unicode/utf8"

	"github.com/hntran/tiny-drill-deck-go/internal/selector"
)

// WordDrill runs a memorization pass over a passage: each step hides one
// randomly chosen word that has not been hidden yet, until every word is
// hidden. Hidden words are never put back, so the drill terminates after
// exactly one word per step.
type WordDrill struct {
	words  []string
	hidden []bool
	sel    *selector.ShrinkingSelector[string]
}

// NewWordDrill creates a drill over the whitespace-separated words of
// passage. It fails with types.ErrEmptyDeck when the passage has no words.
func NewWordDrill(passage string, opt *selector.Optional) (*WordDrill, error) {
	words := strings.Fields(passage)
	sel, err := selector.NewShrinkingSelector(words, opt)
	if err != nil {
		return nil, err
	}
	return &WordDrill{
		words:  words,
		hidden: make([]bool, len(words)),
		sel:    sel,
	}, nil
}

// HideNext hides one more word and returns it.
// It fails with types.ErrDeckDrained once every word is hidden.
func (d *WordDrill) HideNext() (string, error) {
	pos, err := d.sel.DrawIndex()
	if err != nil {
		return "", err
	}
	d.hidden[pos] = true
	return d.words[pos], nil
}

// Done reports whether every word has been hidden.
func (d *WordDrill) Done() bool {
	return d.sel.Drained()
}

// HiddenCount returns how many words are hidden so far.
func (d *WordDrill) HiddenCount() int {
	return len(d.words) - d.sel.Remaining()
}

// WordCount returns the total number of words in the passage.
func (d *WordDrill) WordCount() int {
	return len(d.words)
}

// Rendered returns the passage with hidden words replaced by underscores
// of the same rune length.
func (d *WordDrill) Rendered() string {
	var sb strings.Builder
	for i, w := range d.words {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if d.hidden[i] {
			sb.WriteString(strings.Repeat("_", utf8.RuneCountInString(w)))
		} else {
			sb.WriteString(w)
		}
	}
	return sb.String()
}
