package journalstream

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

func TestLogStreamer_Stream(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	streamer := NewLogStreamer(logger)

	entry := &types.JournalDrawItem{
		JournalEntryBase: types.JournalEntryBase{Type: types.LogTypeDraw},
		RequestID:        1,
		Position:         4,
		Item:             "take a short walk",
		Success:          true,
	}

	streamer.Stream(entry)

	var logOutput map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logOutput)
	require.NoError(t, err)

	assert.Equal(t, "streaming journal entry", logOutput["msg"])

	entryField, ok := logOutput["entry"].(string)
	require.True(t, ok)

	var inner map[string]interface{}
	err = json.Unmarshal([]byte(entryField), &inner)
	require.NoError(t, err)

	assert.Equal(t, float64(1), inner["request_id"])
	assert.Equal(t, "take a short walk", inner["item"])
	assert.Equal(t, float64(4), inner["position"])
}
