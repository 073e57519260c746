// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's EventTypeEnum:
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/EventTypeEnum.hpp
//

package mdfeed

// EventKind identifies a concrete event variant (spec §3.1's taxonomy).
type EventKind uint8

const (
	EventKind_Quote EventKind = iota
	EventKind_Profile
	EventKind_Summary
	EventKind_Trade
	EventKind_TradeETH
	EventKind_TimeAndSale
	EventKind_Order
	EventKind_AnalyticOrder
	EventKind_OtcMarketsOrder
	EventKind_SpreadOrder
	EventKind_Greeks
	EventKind_Underlying
	EventKind_TheoPrice
	EventKind_Series
	EventKind_Candle
	EventKind_TextMessage
	EventKind_OptionSale
)

var eventKindNames = map[EventKind]string{
	EventKind_Quote:           "Quote",
	EventKind_Profile:         "Profile",
	EventKind_Summary:         "Summary",
	EventKind_Trade:           "Trade",
	EventKind_TradeETH:        "TradeETH",
	EventKind_TimeAndSale:     "TimeAndSale",
	EventKind_Order:           "Order",
	EventKind_AnalyticOrder:   "AnalyticOrder",
	EventKind_OtcMarketsOrder: "OtcMarketsOrder",
	EventKind_SpreadOrder:     "SpreadOrder",
	EventKind_Greeks:          "Greeks",
	EventKind_Underlying:      "Underlying",
	EventKind_TheoPrice:       "TheoPrice",
	EventKind_Series:          "Series",
	EventKind_Candle:          "Candle",
	EventKind_TextMessage:     "TextMessage",
	EventKind_OptionSale:      "OptionSale",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// capability bits, one per orthogonal composable capability from spec §3.1.
const (
	capLasting uint8 = 1 << iota
	capIndexed
	capTimeSeries
)

var eventKindCaps = map[EventKind]uint8{
	EventKind_Quote:           capLasting,
	EventKind_Profile:         capLasting,
	EventKind_Summary:         capLasting,
	EventKind_Trade:           capLasting,
	EventKind_TradeETH:        capLasting,
	EventKind_TimeAndSale:     capTimeSeries,
	EventKind_Order:           capIndexed,
	EventKind_AnalyticOrder:   capIndexed,
	EventKind_OtcMarketsOrder: capIndexed,
	EventKind_SpreadOrder:     capIndexed,
	EventKind_Greeks:          capLasting | capTimeSeries,
	EventKind_Underlying:      capLasting | capTimeSeries,
	EventKind_TheoPrice:       capLasting | capTimeSeries,
	EventKind_Series:          capIndexed,
	EventKind_Candle:          capLasting | capTimeSeries,
	EventKind_TextMessage:     0,
	EventKind_OptionSale:      capIndexed,
}

// IsLasting reports whether the feed conflates this kind per-symbol,
// delivering only the most recent value.
func (k EventKind) IsLasting() bool { return eventKindCaps[k]&capLasting != 0 }

// IsIndexed reports whether this kind carries an index/source/flags triple.
func (k EventKind) IsIndexed() bool { return eventKindCaps[k]&capIndexed != 0 }

// IsTimeSeries reports whether this kind is the time-series specialization
// of Indexed (single implicit source, lexicographic-index-orders-by-time).
func (k EventKind) IsTimeSeries() bool { return eventKindCaps[k]&capTimeSeries != 0 }

// IsMarket reports whether this kind carries the common MarketEvent
// fields (event symbol, event time). Every concrete kind in this model
// does; see DESIGN.md for the documented-vs-implemented divergence this
// resolves relative to the original EventTypeEnum::isMarket().
func (k EventKind) IsMarket() bool { return true }
