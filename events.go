// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's sealed event-type hierarchy, reshaped per spec §9's
// redesign note ("model as capability traits... avoid deep class trees;
// prefer composition") into a single interface plus small capability
// interfaces implemented by the concrete structs in events_*.go:
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/EventType.hpp
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/IndexedEvent.hpp
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/LastingEvent.hpp
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/TimeSeriesEvent.hpp
//

package mdfeed

import "time"

// Event is implemented by every concrete event kind (spec §3.1). The
// set is sealed in practice: only the structs defined in events*.go
// implement it, via their embedded *EventHeader types.
type Event interface {
	Kind() EventKind
	Symbol() string
	Time() time.Time
}

// IndexedEvent is implemented by events carrying a packed index used
// for ordering and identity within a (symbol, source) pair (spec §3.1's
// Indexed capability).
type IndexedEvent interface {
	Event
	GetIndex() int64
	Flags() EventFlags
}

// GetIndex returns the raw packed index. Named GetIndex rather than
// Index to avoid colliding with the embedded Index field of the same name.
func (h IndexedEventHeader) GetIndex() int64 { return h.Index }

// TimeSeriesEvent is implemented by the Time-series specialization of
// Indexed: a single implicit default source, index ordering that agrees
// with (time, sequence) ordering.
type TimeSeriesEvent interface {
	IndexedEvent
	Sequence() int32
}

var (
	_ Event = Quote{}
	_ Event = Profile{}
	_ Event = Summary{}
	_ Event = Trade{}
	_ Event = TradeETH{}
	_ Event = TimeAndSale{}
	_ Event = Order{}
	_ Event = AnalyticOrder{}
	_ Event = OtcMarketsOrder{}
	_ Event = SpreadOrder{}
	_ Event = Greeks{}
	_ Event = Underlying{}
	_ Event = TheoPrice{}
	_ Event = Series{}
	_ Event = Candle{}
	_ Event = TextMessage{}
	_ Event = OptionSale{}

	_ IndexedEvent = Order{}
	_ IndexedEvent = Series{}
	_ IndexedEvent = OptionSale{}

	_ TimeSeriesEvent = TimeAndSale{}
	_ TimeSeriesEvent = Greeks{}
	_ TimeSeriesEvent = Candle{}
)
