// Copyright (c) 2024-2026 Neomantra Corp
//
// Market-depth / price-level engine (spec §4.6), grounded on the ITM
// listener-dispatch idiom of txmodel.go and on the teacher's timer/
// executor style in live/live.go.
//

package model

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
)

// OrderLike is the minimal surface the depth engine needs from an order
// event: any OrderBase-derived concrete type (Order, AnalyticOrder,
// OtcMarketsOrder, SpreadOrder) satisfies it.
type OrderLike interface {
	mdfeed.IndexedEvent
	GetPrice() float64
	GetSize() float64
	GetSide() mdfeed.Side
}

// PriceLevel is an aggregate of all orders at a given (source, side,
// price); Size is the sum of component sizes (spec §4.6).
type PriceLevel struct {
	Symbol string
	Source mdfeed.Source
	Side   mdfeed.Side
	Price  float64
	Size   float64
}

// DepthListener receives the current buy/sell slices, each truncated to
// DepthLimit, sorted buy-descending / sell-ascending by price.
type DepthListener func(buy, sell []PriceLevel)

// DepthConfig configures a MarketDepthModel.
type DepthConfig struct {
	Symbol     string
	Source     mdfeed.Source
	DepthLimit int   // 0 = unbounded
	AggMillis  int64 // 0 = notify immediately
	Listener   DepthListener
	Logger     *slog.Logger
}

func (c *DepthConfig) validate() error {
	if c.Symbol == "" {
		return mdfeed.NewInvalidArgumentError("model.DepthConfig: Symbol must not be empty")
	}
	if c.Listener == nil {
		return mdfeed.NewInvalidArgumentError("model.DepthConfig: Listener must not be nil")
	}
	if c.DepthLimit < 0 {
		return mdfeed.NewInvalidArgumentError("model.DepthConfig: DepthLimit must be >= 0")
	}
	if c.AggMillis < 0 {
		return mdfeed.NewInvalidArgumentError("model.DepthConfig: AggMillis must be >= 0")
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}

// MarketDepthModel aggregates a single symbol/source's order stream into
// sorted buy/sell price-level slices (spec §4.6). It is driven by an
// IndexedTxModel's committed batches via ProcessCommit.
type MarketDepthModel struct {
	mu         sync.Mutex
	symbol     string
	source     mdfeed.Source
	depthLimit int
	aggMillis  int64
	listener   DepthListener
	logger     *slog.Logger

	ordersByIndex map[int64]OrderLike
	buy           []*PriceLevel // sorted descending by price
	sell          []*PriceLevel // sorted ascending by price

	buyDirty  bool
	sellDirty bool

	timer      *time.Timer
	timerArmed bool
	closed     bool
}

// NewMarketDepthModel builds a model from cfg, validating it first.
func NewMarketDepthModel(cfg DepthConfig) (*MarketDepthModel, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &MarketDepthModel{
		symbol:        cfg.Symbol,
		source:        cfg.Source,
		depthLimit:    cfg.DepthLimit,
		aggMillis:     cfg.AggMillis,
		listener:      cfg.Listener,
		logger:        cfg.Logger,
		ordersByIndex: make(map[int64]OrderLike),
	}, nil
}

// Close cancels any pending timer and marks the model closed; no
// callback fires after Close returns (spec §5).
func (m *MarketDepthModel) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.cancelTimerLocked()
}

func (m *MarketDepthModel) cancelTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.timerArmed = false
}

// ProcessCommit applies one ITM-committed batch of order events for
// this model's source (spec §4.6's "Update algorithm").
func (m *MarketDepthModel) ProcessCommit(source mdfeed.Source, events []OrderLike, isSnapshot bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || source.ID() != m.source.ID() {
		return
	}

	if isSnapshot {
		for idx, prev := range m.ordersByIndex {
			m.eraseOrDecrement(prev)
			delete(m.ordersByIndex, idx)
		}
	}

	for _, order := range events {
		idx := order.GetIndex()
		if prev, ok := m.ordersByIndex[idx]; ok {
			delete(m.ordersByIndex, idx)
			m.eraseOrDecrement(prev)
		}
		if order.GetSize() > 0 && !order.Flags().Has(mdfeed.RemoveEvent) {
			m.ordersByIndex[idx] = order
			m.insertOrIncrement(order)
		}
	}

	m.emit(isSnapshot)
}

func (m *MarketDepthModel) levelsFor(side mdfeed.Side) *[]*PriceLevel {
	if side == mdfeed.Side_Sell {
		return &m.sell
	}
	return &m.buy
}

func less(side mdfeed.Side) func(a, b float64) bool {
	if side == mdfeed.Side_Sell {
		return func(a, b float64) bool { return a < b } // ascending
	}
	return func(a, b float64) bool { return a > b } // descending
}

// findLevel returns the index of the level at price, or -1.
func findLevel(levels []*PriceLevel, side mdfeed.Side, price float64) int {
	lt := less(side)
	i := sort.Search(len(levels), func(i int) bool {
		return !lt(levels[i].Price, price) // first i whose price is not strictly better than price
	})
	if i < len(levels) && levels[i].Price == price {
		return i
	}
	return -1
}

func (m *MarketDepthModel) insertOrIncrement(order OrderLike) {
	side := order.GetSide()
	levels := m.levelsFor(side)
	price := order.GetPrice()

	if i := findLevel(*levels, side, price); i >= 0 {
		(*levels)[i].Size += order.GetSize()
	} else {
		lt := less(side)
		i := sort.Search(len(*levels), func(i int) bool { return !lt((*levels)[i].Price, price) })
		lvl := &PriceLevel{Symbol: m.symbol, Source: m.source, Side: side, Price: price, Size: order.GetSize()}
		*levels = append(*levels, nil)
		copy((*levels)[i+1:], (*levels)[i:])
		(*levels)[i] = lvl
	}
	m.markDirty(side, m.positionOf(side, price))
}

func (m *MarketDepthModel) eraseOrDecrement(order OrderLike) {
	side := order.GetSide()
	levels := m.levelsFor(side)
	price := order.GetPrice()

	i := findLevel(*levels, side, price)
	if i < 0 {
		return
	}
	pos := i
	(*levels)[i].Size -= order.GetSize()
	if (*levels)[i].Size <= 0 {
		*levels = append((*levels)[:i], (*levels)[i+1:]...)
	}
	m.markDirty(side, pos)
}

func (m *MarketDepthModel) positionOf(side mdfeed.Side, price float64) int {
	return findLevel(*m.levelsFor(side), side, price)
}

// markDirty marks side dirty if pos falls within the currently visible
// depth window (spec §4.6: "unbounded, size under limit, or price not
// strictly worse than the last visible level").
func (m *MarketDepthModel) markDirty(side mdfeed.Side, pos int) {
	dirty := m.depthLimit == 0 || pos < 0 || pos < m.depthLimit
	if !dirty {
		return
	}
	if side == mdfeed.Side_Sell {
		m.sellDirty = true
	} else {
		m.buyDirty = true
	}
}

func (m *MarketDepthModel) emit(isSnapshot bool) {
	if !m.buyDirty && !m.sellDirty {
		return
	}
	if isSnapshot || m.aggMillis == 0 {
		m.cancelTimerLocked()
		m.deliverLocked()
		return
	}
	if !m.timerArmed {
		m.armTimerLocked()
	}
}

func (m *MarketDepthModel) armTimerLocked() {
	m.timerArmed = true
	m.timer = time.AfterFunc(time.Duration(m.aggMillis)*time.Millisecond, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed || !m.timerArmed {
			return
		}
		m.timerArmed = false
		m.timer = nil
		m.deliverLocked()
	})
}

func (m *MarketDepthModel) deliverLocked() {
	buy := truncate(m.buy, m.depthLimit)
	sell := truncate(m.sell, m.depthLimit)
	m.buyDirty = false
	m.sellDirty = false

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("[MarketDepthModel.deliverLocked] listener panicked", "recovered", fmt.Sprint(r))
		}
	}()
	m.listener(buy, sell)
}

func truncate(levels []*PriceLevel, limit int) []PriceLevel {
	n := len(levels)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]PriceLevel, n)
	for i := 0; i < n; i++ {
		out[i] = *levels[i]
	}
	return out
}

// SetDepthLimit changes the exposed depth and triggers an immediate
// emission (spec §4.6).
func (m *MarketDepthModel) SetDepthLimit(limit int) error {
	if limit < 0 {
		return mdfeed.NewInvalidArgumentError("model.MarketDepthModel.SetDepthLimit: limit must be >= 0")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.depthLimit = limit
	m.buyDirty = true
	m.sellDirty = true
	m.cancelTimerLocked()
	m.deliverLocked()
	return nil
}

// SetAggMillis changes the aggregation period, rescheduling any pending
// timer (spec §4.6).
func (m *MarketDepthModel) SetAggMillis(aggMillis int64) error {
	if aggMillis < 0 {
		return mdfeed.NewInvalidArgumentError("model.MarketDepthModel.SetAggMillis: aggMillis must be >= 0")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggMillis = aggMillis
	if m.timerArmed {
		m.cancelTimerLocked()
		m.armTimerLocked()
	}
	return nil
}
