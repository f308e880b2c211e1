package formatter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

type JSONFormatter struct{}

var _ types.LogFormatter = (*JSONFormatter)(nil)

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Encode(items []types.JournalEntry) ([]byte, error) {
	var encodedData []byte
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		encodedData = append(encodedData, data...)
		encodedData = append(encodedData, '\n') // Add newline for JSONL format
	}
	return encodedData, nil
}

func (f *JSONFormatter) Decode(data []byte) ([]types.JournalEntry, error) {
	var items []types.JournalEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var tf struct {
			Type types.LogType `json:"type"`
		}
		if err := json.Unmarshal(line, &tf); err != nil {
			return nil, fmt.Errorf("failed to find type: %w", err)
		}

		var entry types.JournalEntry
		switch tf.Type {
		case types.LogTypeDraw:
			entry = &types.JournalDrawItem{}
		case types.LogTypeRound:
			entry = &types.JournalRoundItem{}
		case types.LogTypeSnapshot:
			entry = &types.JournalSnapshotItem{}
		case types.LogTypeRotate:
			entry = &types.JournalRotateItem{}
		default:
			return nil, fmt.Errorf("unknown journal entry type: %d", tf.Type)
		}

		if err := json.Unmarshal(line, entry); err != nil {
			return nil, err
		}
		items = append(items, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
