package formatter

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/hntran/tiny-drill-deck-go/internal/types"
)

type StringLineFormatter struct{}

var _ types.LogFormatter = (*StringLineFormatter)(nil)

func NewStringLineFormatter() *StringLineFormatter {
	return &StringLineFormatter{}
}

func (f *StringLineFormatter) Encode(items []types.JournalEntry) ([]byte, error) {
	var sb strings.Builder
	for _, item := range items {
		switch v := item.(type) {
		case *types.JournalDrawItem:
			// Item text goes last: it may contain commas.
			sb.WriteString(fmt.Sprintf("%d,%d,%d,%d,%t,%s\n", item.GetType(), v.RequestID, v.Position, v.Error, v.Success, v.Item))
		case *types.JournalRoundItem:
			sb.WriteString(fmt.Sprintf("%d,%d\n", item.GetType(), v.Round))
		case *types.JournalSnapshotItem:
			sb.WriteString(fmt.Sprintf("%d,%s\n", item.GetType(), v.Path))
		case *types.JournalRotateItem:
			sb.WriteString(fmt.Sprintf("%d,%s,%s\n", item.GetType(), v.OldPath, v.NewPath))
		}
	}
	return []byte(sb.String()), nil
}

func (f *StringLineFormatter) Decode(data []byte) ([]types.JournalEntry, error) {
	var items []types.JournalEntry
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 1 {
			return nil, fmt.Errorf("invalid journal format: %s", line)
		}

		typeVal, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid type in journal: %s", parts[0])
		}

		logType := types.LogType(typeVal)

		switch logType {
		case types.LogTypeDraw:
			drawParts := strings.SplitN(line, ",", 6)
			if len(drawParts) != 6 {
				return nil, fmt.Errorf("invalid journal format for draw: %s", line)
			}
			requestID, err := strconv.ParseUint(drawParts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid request ID in journal: %s", drawParts[1])
			}
			position, err := strconv.Atoi(drawParts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid position in journal: %s", drawParts[2])
			}
			errorVal, err := strconv.Atoi(drawParts[3])
			if err != nil {
				return nil, fmt.Errorf("invalid error in journal: %s", drawParts[3])
			}
			success, err := strconv.ParseBool(drawParts[4])
			if err != nil {
				return nil, fmt.Errorf("invalid success in journal: %s", drawParts[4])
			}
			items = append(items, &types.JournalDrawItem{
				JournalEntryBase: types.JournalEntryBase{
					Type:  logType,
					Error: types.LogError(errorVal),
				},
				RequestID: requestID,
				Position:  position,
				Item:      drawParts[5],
				Success:   success,
			})
		case types.LogTypeRound:
			if len(parts) != 2 {
				return nil, fmt.Errorf("invalid journal format for round: %s", line)
			}
			round, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid round in journal: %s", parts[1])
			}
			items = append(items, &types.JournalRoundItem{
				JournalEntryBase: types.JournalEntryBase{
					Type: logType,
				},
				Round: round,
			})
		case types.LogTypeSnapshot:
			if len(parts) != 2 {
				return nil, fmt.Errorf("invalid journal format for snapshot: %s", line)
			}
			items = append(items, &types.JournalSnapshotItem{
				JournalEntryBase: types.JournalEntryBase{
					Type: logType,
				},
				Path: parts[1],
			})
		case types.LogTypeRotate:
			if len(parts) != 3 {
				return nil, fmt.Errorf("invalid journal format for rotate: %s", line)
			}
			items = append(items, &types.JournalRotateItem{
				JournalEntryBase: types.JournalEntryBase{
					Type: logType,
				},
				OldPath: parts[1],
				NewPath: parts[2],
			})
		}
	}
	return items, nil
}
