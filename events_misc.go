// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's candle bar and free-text notification:
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/candle/Candle.hpp
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/misc/TextMessage.hpp
//

package mdfeed

// Candle is an aggregated bar; Lasting and Time-series. Its event
// symbol itself encodes the aggregation parameters (period, price,
// session alignment, price-level bucket) parsed by candle_symbol.go.
type Candle struct {
	TimeSeriesEventHeader

	Open          float64
	High          float64
	Low           float64
	Close         float64
	Volume        float64
	VWAP          float64
	BidVolume     float64
	AskVolume     float64
	ImpVolatility float64
	OpenInterest  float64
	Count         int64
}

func (c Candle) Kind() EventKind { return EventKind_Candle }

// CandleSymbol returns the event symbol parsed as a structured candle
// symbol (spec §6's grammar). It returns an error if the symbol does
// not parse.
func (c Candle) CandleSymbol() (CandleSymbol, error) {
	return ParseCandleSymbol(c.EventSymbol)
}

// TextMessage is an unordered notification, never conflated and never
// part of a transaction (spec §3.1: Lasting=N, Indexed=N, Time-series=N).
type TextMessage struct {
	MarketEventHeader

	Text string
}

func (t TextMessage) Kind() EventKind { return EventKind_TextMessage }
