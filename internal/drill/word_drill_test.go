package drill

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

func TestNewWordDrill_EmptyPassage(t *testing.T) {
	_, err := NewWordDrill("", nil)
	assert.ErrorIs(t, err, types.ErrEmptyDeck)

	_, err = NewWordDrill("   \t\n ", nil)
	assert.ErrorIs(t, err, types.ErrEmptyDeck)
}

func TestWordDrill_HidesEveryWordOnce(t *testing.T) {
	passage := "the quick brown fox jumps"
	d, err := NewWordDrill(passage, nil)
	require.NoError(t, err)
	require.Equal(t, 5, d.WordCount())

	var hidden []string
	for !d.Done() {
		w, err := d.HideNext()
		require.NoError(t, err)
		hidden = append(hidden, w)
	}

	want := strings.Fields(passage)
	sort.Strings(want)
	sort.Strings(hidden)
	assert.Equal(t, want, hidden)
	assert.Equal(t, 5, d.HiddenCount())

	_, err = d.HideNext()
	assert.ErrorIs(t, err, types.ErrDeckDrained)
}

func TestWordDrill_RenderedBlanks(t *testing.T) {
	d, err := NewWordDrill("remember this verse", nil)
	require.NoError(t, err)

	assert.Equal(t, "remember this verse", d.Rendered())

	w, err := d.HideNext()
	require.NoError(t, err)

	rendered := d.Rendered()
	assert.NotContains(t, strings.Fields(rendered), w)
	assert.Contains(t, rendered, strings.Repeat("_", len(w)))

	for !d.Done() {
		_, err := d.HideNext()
		require.NoError(t, err)
	}
	assert.Equal(t, "________ ____ _____", d.Rendered())
}

func TestWordDrill_HiddenCountProgresses(t *testing.T) {
	d, err := NewWordDrill("a b c", nil)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		_, err := d.HideNext()
		require.NoError(t, err)
		assert.Equal(t, i, d.HiddenCount())
	}
	assert.True(t, d.Done())
}
