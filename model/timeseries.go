// Copyright (c) 2024-2026 Neomantra Corp
//
// Time-Series Model (spec §4.5): a thin specialization of the Indexed
// Transaction Model with exactly one implicit source and a from_time
// subscription. Grounded on the same teacher idiom as txmodel.go.
//

package model

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
)

// TimeSeriesListener receives committed batches of time-series events,
// delivered in feed arrival order (descending index/time during the
// initial snapshot, per spec §4.5).
type TimeSeriesListener func(events []mdfeed.TimeSeriesEvent, isSnapshot bool)

// TimeSeriesConfig configures a TimeSeriesModel.
type TimeSeriesConfig struct {
	FromTime time.Time
	Listener TimeSeriesListener
	Mode     BatchMode
	Logger   *slog.Logger
}

func (c *TimeSeriesConfig) validate() error {
	if c.Listener == nil {
		return mdfeed.NewInvalidArgumentError("model.TimeSeriesConfig: Listener must not be nil")
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}

// TimeSeriesModel reassembles a single-source time-series stream into
// committed batches (spec §4.5).
type TimeSeriesModel struct {
	mu             sync.Mutex
	fromTimeMillis int64
	listener       TimeSeriesListener
	mode           BatchMode
	logger         *slog.Logger
	closed         bool

	phase           phase
	pending         []mdfeed.TimeSeriesEvent
	snapshotPending bool
	txPending       bool
	held            []mdfeed.TimeSeriesEvent
}

// NewTimeSeriesModel builds a model from cfg, validating it first.
func NewTimeSeriesModel(cfg TimeSeriesConfig) (*TimeSeriesModel, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &TimeSeriesModel{
		fromTimeMillis: mdfeed.MillisFromTime(cfg.FromTime),
		listener:       cfg.Listener,
		mode:           cfg.Mode,
		logger:         cfg.Logger,
	}, nil
}

// Close marks the model closed; ProcessEvents becomes a no-op after Close.
func (m *TimeSeriesModel) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// ProcessEvents applies a batch of time-series events received together
// from the feed. The initial snapshot arrives in descending index/time
// order; its end is delimited either by SNAPSHOT_END/SNAPSHOT_SNIP or by
// an event whose time precedes FromTime (a legal zero-sequence sentinel
// that is itself excluded from the delivered batch).
func (m *TimeSeriesModel) ProcessEvents(events []mdfeed.TimeSeriesEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	var toCommit []mdfeed.TimeSeriesEvent
	var commitIsSnapshot bool
	commit := false

	for _, e := range events {
		if m.snapshotPending && mdfeed.MillisFromTime(e.Time()) < m.fromTimeMillis {
			m.snapshotPending = false
			m.flushSnapshotEnd(&toCommit, &commitIsSnapshot, &commit)
			continue
		}

		flags := e.Flags()
		if flags.Has(mdfeed.SnapshotBegin) {
			m.pending = m.pending[:0]
			m.snapshotPending = true
			m.phase = phaseInSnapshot
		}

		m.pending = append(m.pending, e)
		m.txPending = flags.Has(mdfeed.TxPending)
		if m.txPending && m.phase == phaseIdle {
			m.phase = phaseInTx
		}

		if flags.Has(mdfeed.SnapshotEnd) || flags.Has(mdfeed.SnapshotSnip) {
			m.snapshotPending = false
		}

		if !m.snapshotPending && !m.txPending {
			isSnapshot := flags.Has(mdfeed.SnapshotEnd) || flags.Has(mdfeed.SnapshotSnip)
			committedNow := m.pending
			m.pending = nil
			m.phase = phaseIdle
			if m.mode == BatchOnSnapshotOnly {
				m.held = append(m.held, committedNow...)
				if isSnapshot {
					toCommit = append(toCommit, m.held...)
					commitIsSnapshot = true
					m.held = nil
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
		m.deliver(toCommit, commitIsSnapshot)
	}
}

func (m *TimeSeriesModel) flushSnapshotEnd(toCommit *[]mdfeed.TimeSeriesEvent, commitIsSnapshot *bool, commit *bool) {
	m.txPending = false
	committedNow := m.pending
	m.pending = nil
	m.phase = phaseIdle
	if m.mode == BatchOnSnapshotOnly {
		m.held = append(m.held, committedNow...)
		*toCommit = append(*toCommit, m.held...)
		m.held = nil
	} else {
		*toCommit = append(*toCommit, committedNow...)
	}
	*commitIsSnapshot = true
	*commit = true
}

func (m *TimeSeriesModel) deliver(events []mdfeed.TimeSeriesEvent, isSnapshot bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("[TimeSeriesModel.deliver] listener panicked", "recovered", fmt.Sprint(r))
		}
	}()
	m.listener(events, isSnapshot)
}
