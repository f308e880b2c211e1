package raft_service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hntran/tiny-drill-deck-go/internal/deck"
	"github.com/hntran/tiny-drill-deck-go/internal/replay"
	"github.com/hntran/tiny-drill-deck-go/internal/types"
	"github.com/lni/dragonboat/v4"
	"github.com/lni/dragonboat/v4/config"
	"github.com/lni/dragonboat/v4/statemachine"
)

// DeckStateMachine replicates a drill session by applying journal entries
// through the raft log. Draw positions are decided by the proposer, so
// replicas stay deterministic without sharing a random source.
type DeckStateMachine struct {
	ShardID   uint64
	ReplicaID uint64
	session   *deck.Session
}

// NewDeckStateMachine creates a state machine over the given deck.
func NewDeckStateMachine(shardID, replicaID uint64, d types.Deck, mode types.DrawMode) (statemachine.IStateMachine, error) {
	session, err := deck.NewSession(d, &deck.SessionOptional{Mode: mode})
	if err != nil {
		return nil, err
	}
	return &DeckStateMachine{
		ShardID:   shardID,
		ReplicaID: replicaID,
		session:   session,
	}, nil
}

// Update applies the committed log entries to the state machine.
func (s *DeckStateMachine) Update(entry statemachine.Entry) (statemachine.Result, error) {
	var base types.JournalEntryBase
	if err := json.Unmarshal(entry.Cmd, &base); err != nil {
		return statemachine.Result{}, err
	}

	var logEntry types.JournalEntry
	switch base.Type {
	case types.LogTypeDraw:
		var drawLog types.JournalDrawItem
		if err := json.Unmarshal(entry.Cmd, &drawLog); err != nil {
			return statemachine.Result{}, err
		}
		logEntry = &drawLog
	case types.LogTypeRound:
		var roundLog types.JournalRoundItem
		if err := json.Unmarshal(entry.Cmd, &roundLog); err != nil {
			return statemachine.Result{}, err
		}
		logEntry = &roundLog
	default:
		return statemachine.Result{Value: 0}, nil
	}

	replay.ApplyLog(s.session, logEntry)
	return statemachine.Result{Value: uint64(len(entry.Cmd))}, nil
}

// Lookup performs a read-only query on the state machine.
func (s *DeckStateMachine) Lookup(query interface{}) (interface{}, error) {
	state := s.session.State()
	data, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SaveSnapshot creates a snapshot of the state machine.
func (s *DeckStateMachine) SaveSnapshot(w io.Writer, fc statemachine.ISnapshotFileCollection, done <-chan struct{}) error {
	snap, err := s.session.CreateSnapshot()
	if err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// RecoverFromSnapshot restores the state machine from a snapshot.
func (s *DeckStateMachine) RecoverFromSnapshot(r io.Reader, files []statemachine.SnapshotFile, done <-chan struct{}) error {
	var snap types.SessionSnapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return err
	}

	return s.session.LoadSnapshot(&snap)
}

// Close closes the state machine.
func (s *DeckStateMachine) Close() error {
	return nil
}

const defaultShardID = 1

// Node is a wrapper around the dragonboat NodeHost.
type Node struct {
	nh      *dragonboat.NodeHost
	shardID uint64
	timeout time.Duration
}

// NewNode creates and starts a new dragonboat node replicating the deck.
func NewNode(replicaID uint64, raftAddress string, initialMembers map[uint64]string, d types.Deck, mode types.DrawMode) (*Node, error) {
	rc := config.Config{
		ReplicaID:          replicaID,
		ShardID:            defaultShardID,
		ElectionRTT:        10,
		HeartbeatRTT:       1,
		CheckQuorum:        true,
		SnapshotEntries:    10000,
		CompactionOverhead: 5000,
	}

	nhc := config.NodeHostConfig{
		WALDir:         "wal",
		NodeHostDir:    "dragonboat",
		RaftAddress:    raftAddress,
		RTTMillisecond: 200,
	}

	nh, err := dragonboat.NewNodeHost(nhc)
	if err != nil {
		return nil, err
	}

	createStateMachine := func(shardID uint64, replicaID uint64) statemachine.IStateMachine {
		sm, err := NewDeckStateMachine(shardID, replicaID, d, mode)
		if err != nil {
			panic(fmt.Sprintf("failed to create deck state machine: %v", err))
		}
		return sm
	}

	if err := nh.StartReplica(initialMembers, false, createStateMachine, rc); err != nil {
		return nil, err
	}

	return &Node{nh: nh, shardID: defaultShardID, timeout: 3 * time.Second}, nil
}

// Update proposes a journal entry to the raft log and waits for it to be
// committed on a quorum.
func (n *Node) Update(entry types.JournalEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	session := n.nh.GetNoOPSession(n.shardID)
	_, err = n.nh.SyncPropose(ctx, session, data)
	return err
}

// GetState performs a linearizable read of the replicated session state.
func (n *Node) GetState() (types.SessionState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	result, err := n.nh.SyncRead(ctx, n.shardID, nil)
	if err != nil {
		return types.SessionState{}, err
	}

	data, ok := result.([]byte)
	if !ok {
		return types.SessionState{}, fmt.Errorf("unexpected lookup result type %T", result)
	}

	var state types.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return types.SessionState{}, err
	}
	return state, nil
}

// GetLeaderID returns the current leader replica of the deck shard.
func (n *Node) GetLeaderID() (uint64, bool, error) {
	leaderID, _, valid, err := n.nh.GetLeaderID(n.shardID)
	return leaderID, valid, err
}

// Close stops the node host.
func (n *Node) Close() {
	n.nh.Close()
}
