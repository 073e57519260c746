// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's event model enums:
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/market/{Side,Direction,PriceType,Scope,
//     ShortSaleRestriction,TradingStatus,OrderAction}.hpp
//

package mdfeed

// Side is the side of an order or a trade aggressor.
type Side uint8

const (
	// Side_Undefined means side is not specified.
	Side_Undefined Side = 0
	// Side_Buy is the buy side of an order or a buy aggressor in a trade.
	Side_Buy Side = 1
	// Side_Sell is the sell side of an order or a sell aggressor in a trade.
	Side_Sell Side = 2
)

func (s Side) String() string {
	switch s {
	case Side_Buy:
		return "Buy"
	case Side_Sell:
		return "Sell"
	default:
		return "Undefined"
	}
}

// Direction of the last price change, carried on Trade/TradeETH.
type Direction uint8

const (
	Direction_Undefined Direction = 0
	// Direction_Down: price moved down.
	Direction_Down Direction = 1
	// Direction_ZeroDown: price unchanged, last move was down.
	Direction_ZeroDown Direction = 2
	// Direction_Zero: price unchanged, no prior move known.
	Direction_Zero Direction = 3
	// Direction_ZeroUp: price unchanged, last move was up.
	Direction_ZeroUp Direction = 4
	// Direction_Up: price moved up.
	Direction_Up Direction = 5
)

func (d Direction) String() string {
	switch d {
	case Direction_Down:
		return "Down"
	case Direction_ZeroDown:
		return "ZeroDown"
	case Direction_Zero:
		return "Zero"
	case Direction_ZeroUp:
		return "ZeroUp"
	case Direction_Up:
		return "Up"
	default:
		return "Undefined"
	}
}

// PriceType qualifies the price carried by a Quote/Trade (regular,
// indicative, preliminary, final).
type PriceType uint8

const (
	PriceType_Regular      PriceType = 0
	PriceType_Indicative   PriceType = 1
	PriceType_Preliminary  PriceType = 2
	PriceType_Final        PriceType = 3
)

func (p PriceType) String() string {
	switch p {
	case PriceType_Indicative:
		return "Indicative"
	case PriceType_Preliminary:
		return "Preliminary"
	case PriceType_Final:
		return "Final"
	default:
		return "Regular"
	}
}

// Scope distinguishes an individual resting order from a synthetic
// price-level aggregate carried on the same Order event stream.
type Scope uint8

const (
	// Scope_Composite: a composite quote aggregate (COMPOSITE_BID/ASK).
	Scope_Composite Scope = 0
	// Scope_Regional: a regional quote aggregate (REGIONAL_BID/ASK).
	Scope_Regional Scope = 1
	// Scope_Aggregate: an aggregate order book price level (AGGREGATE_BID/ASK).
	Scope_Aggregate Scope = 2
	// Scope_Order: an individual order.
	Scope_Order Scope = 3
)

func (s Scope) String() string {
	switch s {
	case Scope_Composite:
		return "Composite"
	case Scope_Regional:
		return "Regional"
	case Scope_Aggregate:
		return "Aggregate"
	default:
		return "Order"
	}
}

// ShortSaleRestriction as carried on Profile events.
type ShortSaleRestriction uint8

const (
	ShortSaleRestriction_Undefined ShortSaleRestriction = 0
	ShortSaleRestriction_Active    ShortSaleRestriction = 1
	ShortSaleRestriction_Inactive  ShortSaleRestriction = 2
)

func (r ShortSaleRestriction) String() string {
	switch r {
	case ShortSaleRestriction_Active:
		return "Active"
	case ShortSaleRestriction_Inactive:
		return "Inactive"
	default:
		return "Undefined"
	}
}

// TradingStatus as carried on Profile events.
type TradingStatus uint8

const (
	TradingStatus_Undefined TradingStatus = 0
	TradingStatus_Halted    TradingStatus = 1
	TradingStatus_Active    TradingStatus = 2
)

func (s TradingStatus) String() string {
	switch s {
	case TradingStatus_Halted:
		return "Halted"
	case TradingStatus_Active:
		return "Active"
	default:
		return "Undefined"
	}
}

// OrderAction describes the Full Order Book action of an order event,
// populated only when the owning Source has the FullOrderBook capability.
type OrderAction uint8

const (
	OrderAction_Undefined OrderAction = 0
	OrderAction_New       OrderAction = 1
	OrderAction_Replace   OrderAction = 2
	OrderAction_Modify    OrderAction = 3
	OrderAction_Delete    OrderAction = 4
	OrderAction_Partial   OrderAction = 5
	OrderAction_Execute   OrderAction = 6
	OrderAction_Trade     OrderAction = 7
	OrderAction_Bust      OrderAction = 8
)

func (a OrderAction) String() string {
	switch a {
	case OrderAction_New:
		return "New"
	case OrderAction_Replace:
		return "Replace"
	case OrderAction_Modify:
		return "Modify"
	case OrderAction_Delete:
		return "Delete"
	case OrderAction_Partial:
		return "Partial"
	case OrderAction_Execute:
		return "Execute"
	case OrderAction_Trade:
		return "Trade"
	case OrderAction_Bust:
		return "Bust"
	default:
		return "Undefined"
	}
}

// CandleType is the aggregation period unit (§6 grammar `unit`).
type CandleType uint8

const (
	CandleType_Tick    CandleType = iota // t
	CandleType_Second                    // s
	CandleType_Minute                    // m
	CandleType_Hour                      // h
	CandleType_Day                       // d
	CandleType_Week                      // w
	CandleType_Month                     // mo
	CandleType_OptExp                    // o
	CandleType_Year                      // y
	CandleType_Price                     // p
	CandleType_PriceMomentum              // pm
	CandleType_PriceRenko                 // pr
	CandleType_Volume                     // v
)

var candleTypeToString = map[CandleType]string{
	CandleType_Tick:           "t",
	CandleType_Second:         "s",
	CandleType_Minute:         "m",
	CandleType_Hour:           "h",
	CandleType_Day:            "d",
	CandleType_Week:           "w",
	CandleType_Month:          "mo",
	CandleType_OptExp:         "o",
	CandleType_Year:           "y",
	CandleType_Price:          "p",
	CandleType_PriceMomentum:  "pm",
	CandleType_PriceRenko:     "pr",
	CandleType_Volume:         "v",
}

var stringToCandleType = func() map[string]CandleType {
	m := make(map[string]CandleType, len(candleTypeToString))
	for k, v := range candleTypeToString {
		m[v] = k
	}
	return m
}()

func (t CandleType) String() string {
	if s, ok := candleTypeToString[t]; ok {
		return s
	}
	return "s"
}

// CandlePrice selects which price of a period is aggregated (attribute
// key "price" in §6's grammar).
type CandlePrice uint8

const (
	CandlePrice_Last       CandlePrice = iota // last (default)
	CandlePrice_Bid                           // bid
	CandlePrice_Ask                            // ask
	CandlePrice_Mark                           // mark
	CandlePrice_Settlement                     // s
)

var candlePriceToString = map[CandlePrice]string{
	CandlePrice_Last:       "last",
	CandlePrice_Bid:        "bid",
	CandlePrice_Ask:        "ask",
	CandlePrice_Mark:       "mark",
	CandlePrice_Settlement: "s",
}

func (p CandlePrice) String() string {
	if s, ok := candlePriceToString[p]; ok {
		return s
	}
	return "last"
}

// CandleAlignment is the attribute key "a" of §6's grammar: whether
// candle boundaries align to midnight or to the trading session.
type CandleAlignment uint8

const (
	CandleAlignment_Midnight CandleAlignment = iota // m (default)
	CandleAlignment_Session                         // s
)

func (a CandleAlignment) String() string {
	if a == CandleAlignment_Session {
		return "s"
	}
	return "m"
}

// CandleSession is the attribute key "tho" of §6's grammar: whether the
// candle only covers regular trading hours.
type CandleSession uint8

const (
	CandleSession_Any          CandleSession = iota // false (default)
	CandleSession_RegularOnly                       // true
)

func (s CandleSession) String() string {
	if s == CandleSession_RegularOnly {
		return "true"
	}
	return "false"
}
