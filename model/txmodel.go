// Copyright (c) 2024-2026 Neomantra Corp
//
// Indexed Transaction Model (spec §4.4), grounded on the teacher's
// per-client state + mutex-guarded dispatch idiom:
//   _examples/NimbleMarkets-dbn-go/live/live.go (Config/validate,
//   slog logging with a [Type.Method] message prefix, listener
//   dispatch loop)
//

package model

import (
	"fmt"
	"log/slog"
	"sync"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
)

// BatchMode selects when IndexedTxModel flushes a source's pending
// events to the listener (spec §4.4's "Configuration").
type BatchMode uint8

const (
	// BatchEveryCommit flushes on every commit point, the default.
	BatchEveryCommit BatchMode = iota
	// BatchOnSnapshotOnly flushes only commits that complete a snapshot.
	BatchOnSnapshotOnly
)

// TransactionListener receives a committed, non-torn batch of events
// for one source (spec §4.4's "Listener contract").
type TransactionListener func(source mdfeed.Source, events []mdfeed.IndexedEvent, isSnapshot bool)

// Config configures an IndexedTxModel. NewIndexedTxModel is the single
// validating step (spec §9's "coroutine-style fluent builders... make build() the
// single validating step").
type Config struct {
	Listener TransactionListener
	Mode     BatchMode
	Logger   *slog.Logger
}

func (c *Config) validate() error {
	if c.Listener == nil {
		return mdfeed.NewInvalidArgumentError("model.Config: Listener must not be nil")
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}

type phase uint8

const (
	phaseIdle phase = iota
	phaseInSnapshot
	phaseInTx
)

type sourceState struct {
	seen            bool
	phase           phase
	pending         []mdfeed.IndexedEvent
	snapshotPending bool
	txPending       bool

	// held accumulates committed-but-undelivered sub-batches when the
	// model is configured with BatchOnSnapshotOnly: every-commit mode
	// never uses it.
	held []mdfeed.IndexedEvent
}

// IndexedTxModel reassembles a stream of indexed events for a
// (symbol, {sources}) pair into committed batches, never exposing torn
// transactions or partially-loaded snapshots (spec §4.4).
type IndexedTxModel struct {
	mu       sync.Mutex
	states   map[int32]*sourceState
	listener TransactionListener
	mode     BatchMode
	logger   *slog.Logger
	closed   bool
}

// NewIndexedTxModel builds a model from cfg, validating it first.
func NewIndexedTxModel(cfg Config) (*IndexedTxModel, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &IndexedTxModel{
		states:   make(map[int32]*sourceState),
		listener: cfg.Listener,
		mode:     cfg.Mode,
		logger:   cfg.Logger,
	}, nil
}

// Close marks the model closed; ProcessEvents becomes a no-op after Close.
func (m *IndexedTxModel) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// ProcessEvents applies a batch of indexed events received together from
// the feed (spec §4.4's "Transitions"), grouping them by source and
// invoking the listener at most once per source.
func (m *IndexedTxModel) ProcessEvents(events []mdfeed.IndexedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	bySource := make(map[int32]mdfeed.Source)
	order := make([]int32, 0, 4)
	grouped := make(map[int32][]mdfeed.IndexedEvent)

	for _, e := range events {
		src := sourceOf(e)
		id := src.ID()
		if _, ok := grouped[id]; !ok {
			order = append(order, id)
			bySource[id] = src
		}
		grouped[id] = append(grouped[id], e)
	}

	for _, id := range order {
		m.processSource(bySource[id], grouped[id])
	}
}

func sourceOf(e mdfeed.IndexedEvent) mdfeed.Source {
	type sourced interface{ Source() mdfeed.Source }
	if s, ok := e.(sourced); ok {
		return s.Source()
	}
	return mdfeed.DefaultSource
}

func (m *IndexedTxModel) processSource(src mdfeed.Source, events []mdfeed.IndexedEvent) {
	st, ok := m.states[src.ID()]
	if !ok {
		st = &sourceState{}
		m.states[src.ID()] = st
	}

	var toCommit []mdfeed.IndexedEvent
	var commitIsSnapshot bool
	commit := false

	for _, e := range events {
		flags := e.Flags()

		// Rule 1: first sighting of this source.
		if !st.seen {
			st.seen = true
			if flags.Has(mdfeed.SnapshotBegin) {
				st.phase = phaseInSnapshot
			} else {
				st.phase = phaseIdle
			}
		}

		// Rule 4: a fresh SNAPSHOT_BEGIN arriving mid-stream restarts
		// snapshot accumulation, discarding whatever was pending.
		if flags.Has(mdfeed.SnapshotBegin) && len(st.pending) > 0 {
			st.pending = st.pending[:0]
			st.phase = phaseInSnapshot
			st.snapshotPending = true
		}
		if flags.Has(mdfeed.SnapshotBegin) {
			st.snapshotPending = true
			st.phase = phaseInSnapshot
		}

		// Rule 2: append.
		st.pending = append(st.pending, e)

		// Rule 3: track trailing TX_PENDING.
		st.txPending = flags.Has(mdfeed.TxPending)
		if st.txPending && st.phase == phaseIdle {
			st.phase = phaseInTx
		}

		// Rule 5: snapshot ends on SNAPSHOT_END or SNAPSHOT_SNIP.
		if flags.Has(mdfeed.SnapshotEnd) || flags.Has(mdfeed.SnapshotSnip) {
			st.snapshotPending = false
		}

		// Rule 6: commit iff neither a snapshot nor a transaction is
		// still pending.
		if !st.snapshotPending && !st.txPending {
			isSnapshot := flags.Has(mdfeed.SnapshotEnd) || flags.Has(mdfeed.SnapshotSnip)
			committedNow := st.pending
			st.pending = nil
			st.phase = phaseIdle

			if m.mode == BatchOnSnapshotOnly {
				// Hold every commit until one completes a snapshot, then
				// flush everything accumulated since the last delivery
				// as a single batch.
				st.held = append(st.held, committedNow...)
				if isSnapshot {
					toCommit = append(toCommit, st.held...)
					commitIsSnapshot = true
					st.held = nil
					commit = true
				}
			} else {
				toCommit = append(toCommit, committedNow...)
				commitIsSnapshot = commitIsSnapshot || isSnapshot
				commit = true
			}
		}
	}

	if commit && len(toCommit) > 0 {
		m.deliver(src, toCommit, commitIsSnapshot)
	}
}

func (m *IndexedTxModel) deliver(src mdfeed.Source, events []mdfeed.IndexedEvent, isSnapshot bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("[IndexedTxModel.deliver] listener panicked",
				"source", src.Name(), "recovered", fmt.Sprint(r))
		}
	}()
	m.listener(src, events, isSnapshot)
}
