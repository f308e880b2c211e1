package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/hntran/tiny-drill-deck-go/cmd/cli/tui"
	"github.com/hntran/tiny-drill-deck-go/internal/actor"
	"github.com/hntran/tiny-drill-deck-go/internal/config"
	"github.com/hntran/tiny-drill-deck-go/internal/deck"
	"github.com/hntran/tiny-drill-deck-go/internal/journal"
	journalformatter "github.com/hntran/tiny-drill-deck-go/internal/journal/formatter"
	journalstorage "github.com/hntran/tiny-drill-deck-go/internal/journal/storage"
	"github.com/hntran/tiny-drill-deck-go/internal/journalstream"
	"github.com/hntran/tiny-drill-deck-go/internal/recovery"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
	"github.com/hntran/tiny-drill-deck-go/internal/utils"
)

func main() {
	configPath := "./samples/config.yaml"
	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "--") {
		configPath = os.Args[1]
	}

	loader := &config.ConfigImpl{}
	cfg, err := loader.LoadYAML(configPath)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	workingDir := cfg.WorkingDir
	if workingDir == "" {
		workingDir = "./tmp"
	}
	if err := os.MkdirAll(workingDir, 0755); err != nil {
		fmt.Println("Error creating working dir:", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go nowhere.
	appUtils := utils.NewDefaultUtils(workingDir, workingDir, slog.LevelDebug, io.Discard)

	mode := types.ModeRefilling
	if cfg.Mode == "shrinking" {
		mode = types.ModeShrinking
	}

	initial, err := deck.CreateSessionFromCatalogPath(cfg.Catalog, cfg.Deck, &deck.SessionOptional{Mode: mode})
	if err != nil {
		fmt.Println("Error opening deck:", err)
		os.Exit(1)
	}

	var format types.LogFormatter
	switch cfg.Journal.Formatter {
	case "json":
		format = journalformatter.NewJSONFormatter()
	default:
		format = journalformatter.NewStringLineFormatter()
	}

	var snapshotPath string
	if p := appUtils.GenSnapshotPath(); p != nil {
		snapshotPath = *p
	}

	session, lastRequestID, lastJournalPath, err := recovery.RecoverSession(snapshotPath, initial, format, appUtils)
	if err != nil {
		fmt.Println("Recovery failed:", err)
		os.Exit(1)
	}

	var seqNo uint64
	if lastJournalPath == "" {
		lastJournalPath, seqNo, err = appUtils.GenNextJournalPath()
		if err != nil {
			fmt.Println("Error generating journal path:", err)
			os.Exit(1)
		}
	} else {
		ext := strings.TrimPrefix(filepath.Ext(lastJournalPath), ".")
		seqNo, _ = strconv.ParseUint(ext, 10, 64)
	}

	var store types.Storage
	switch cfg.Journal.Storage {
	case "mmap":
		store, err = journalstorage.NewFileMMapStorage(lastJournalPath, seqNo, journalstorage.FileMMapStorageOps{
			MMapFileSizeInBytes: int64(cfg.Journal.MaxFileSize),
		})
	default:
		store, err = journalstorage.NewFileStorage(lastJournalPath, journalstorage.FileStorageOps{
			MaxFileSizeInBytes: int64(cfg.Journal.MaxFileSize),
		})
	}
	if err != nil {
		fmt.Println("Error creating journal storage:", err)
		os.Exit(1)
	}

	j, err := journal.NewJournal(lastJournalPath, seqNo, format, store)
	if err != nil {
		fmt.Println("Error opening journal:", err)
		os.Exit(1)
	}

	appCtx := &types.Context{
		Journal: j,
		Utils:   appUtils,
	}

	var streamer journalstream.Streamer = journalstream.NewNoOpStreamer()
	for _, arg := range os.Args {
		if arg == "--stream-journal" {
			streamer = journalstream.NewLogStreamer(appUtils.GetLogger())
			break
		}
	}

	sys, err := actor.NewSystem(appCtx, session, &actor.SystemOptional{
		FlushAfterNDraw: cfg.Journal.FlushAfterNDraw,
		LastRequestID:   lastRequestID,
		Streamer:        streamer,
	})
	if err != nil {
		fmt.Println("System startup error:", err)
		os.Exit(1)
	}
	defer sys.Stop()

	p := bubbletea.NewProgram(tui.NewModel(sys))
	if _, err := p.Run(); err != nil {
		fmt.Println("TUI error:", err)
		os.Exit(1)
	}
}
