// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's market-level lasting events:
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/market/{Quote,Profile,Summary,Trade,TradeETH,TradeBase}.hpp
//

package mdfeed

import "time"

// Quote is the best bid/ask of a symbol (spec §3.1): a Lasting event,
// never Indexed or Time-series.
type Quote struct {
	MarketEventHeader

	BidTime     time.Time
	BidExchange byte
	BidPrice    float64
	BidSize     float64

	AskTime     time.Time
	AskExchange byte
	AskPrice    float64
	AskSize     float64
}

func (q Quote) Kind() EventKind { return EventKind_Quote }

// Profile carries an instrument's descriptive and trading-status fields.
type Profile struct {
	MarketEventHeader

	Description           string
	StatusReason          string
	HaltStartTime         time.Time
	HaltEndTime           time.Time
	HighLimitPrice        float64
	LowLimitPrice         float64
	High52WeekPrice       float64
	Low52WeekPrice        float64
	Beta                  float64
	EarningsPerShare      float64
	DividendFrequency     float64
	ExDividendAmount      float64
	ExDividendDayID       int32
	Shares                float64
	FreeFloat             float64
	TradingStatus         TradingStatus
	ShortSaleRestriction  ShortSaleRestriction
}

func (p Profile) Kind() EventKind { return EventKind_Profile }

// Summary carries a day's OHLC, previous close, and open interest.
type Summary struct {
	MarketEventHeader

	DayID              int32
	DayOpenPrice       float64
	DayHighPrice       float64
	DayLowPrice        float64
	DayClosePrice      float64
	PrevDayID          int32
	PrevDayClosePrice  float64
	PrevDayVolume      float64
	OpenInterest       int64
	ExchangeTradingDay bool
}

func (s Summary) Kind() EventKind { return EventKind_Summary }

// TradeBase holds the fields common to Trade and TradeETH (spec §3.1's
// "Trade/TradeETH ... ETH variant splits regular vs extended hours";
// Direction/ExtendedTradingHours are a supplemented feature, see
// SPEC_FULL.md §3 item 4).
type TradeBase struct {
	MarketEventHeader

	Price                float64
	Size                 float64
	Change               float64
	DayID                int32
	DayVolume            float64
	DayTurnover          float64
	Direction            Direction
	ExtendedTradingHours bool
	TickDirection        Direction
}

// Trade is the last regular-session trade print and cumulative day volume.
type Trade struct {
	TradeBase
}

func (t Trade) Kind() EventKind { return EventKind_Trade }

// TradeETH is the extended-trading-hours counterpart of Trade, splitting
// day volume/turnover between regular and extended hours.
type TradeETH struct {
	TradeBase
}

func (t TradeETH) Kind() EventKind { return EventKind_TradeETH }

// TimeAndSaleType distinguishes a new print from a correction or cancel.
type TimeAndSaleType uint8

const (
	TimeAndSaleType_New        TimeAndSaleType = iota
	TimeAndSaleType_Correction
	TimeAndSaleType_Cancel
)

func (t TimeAndSaleType) String() string {
	switch t {
	case TimeAndSaleType_Correction:
		return "Correction"
	case TimeAndSaleType_Cancel:
		return "Cancel"
	default:
		return "New"
	}
}

// TimeAndSale is a historical trade print: Time-series, never Lasting
// or Indexed in the ITM sense (spec §3.1).
type TimeAndSale struct {
	TimeSeriesEventHeader

	ExchangeCode           byte
	Price                  float64
	Size                   float64
	BidPrice               float64
	AskPrice               float64
	ExchangeSaleConditions string
	Type                   TimeAndSaleType
	AggressorSide          Side
	SpreadLeg              bool
	ExtendedTradingHours   bool
	TradeThroughExempt     byte
	BuyerID                string
	SellerID               string
}

func (t TimeAndSale) Kind() EventKind { return EventKind_TimeAndSale }
