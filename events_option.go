// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's option analytics time series and option print:
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/option/{Greeks,Underlying,TheoPrice,OptionSale}.hpp
//

package mdfeed

// Greeks is a per-symbol options-analytics time series: Lasting and
// Time-series (spec §3.1).
type Greeks struct {
	TimeSeriesEventHeader

	Price      float64
	Volatility float64
	Delta      float64
	Gamma      float64
	Theta      float64
	Rho        float64
	Vega       float64
}

func (g Greeks) Kind() EventKind { return EventKind_Greeks }

// Underlying is a per-symbol implied-volatility and volume time series
// derived from the full option chain of an underlying.
type Underlying struct {
	TimeSeriesEventHeader

	Volatility      float64
	FrontVolatility float64
	BackVolatility  float64
	CallVolume      float64
	PutVolume       float64
	PutCallRatio    float64
}

func (u Underlying) Kind() EventKind { return EventKind_Underlying }

// TheoPrice is a per-symbol theoretical option price time series.
type TheoPrice struct {
	TimeSeriesEventHeader

	Price           float64
	UnderlyingPrice float64
	Delta           float64
	Gamma           float64
	Dividend        float64
	Interest        float64
}

func (t TheoPrice) Kind() EventKind { return EventKind_TheoPrice }

// OptionSale is an option-market print: Indexed but neither Lasting nor
// Time-series. Like Series, its source is carried in an unexported
// field read through Source(), not packed into Index.
type OptionSale struct {
	IndexedEventHeader

	source Source

	ExchangeCode           byte
	Price                  float64
	Size                   float64
	BidPrice               float64
	AskPrice               float64
	ExchangeSaleConditions string
	TradeThroughExempt     byte
	AggressorSide          Side
	SpreadLeg              bool
	ExtendedTradingHours   bool
	OptionSymbol           string
	UnderlyingPrice        float64
	Volatility             float64
	Delta                  float64
}

func (o OptionSale) Kind() EventKind { return EventKind_OptionSale }

// Source returns the print's originating source.
func (o OptionSale) Source() Source { return o.source }

// SetSource sets the print's originating source.
func (o *OptionSale) SetSource(src Source) { o.source = src }
