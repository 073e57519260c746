// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from dxFeed's order-book family:
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/market/{OrderBase,Order,AnalyticOrder,OtcMarketsOrder,SpreadOrder,Series}.hpp
//   _examples/original_source/include/dxfeed_graal_cpp_api/event/market/OrderAction.hpp
//

package mdfeed

// OrderBase holds the fields common to every order-book event kind
// (spec §3.1's "OrderBase (Order, AnalyticOrder, OtcMarketsOrder,
// SpreadOrder)"). The source is not a plain field: it is packed into
// Index and read via OrderBaseHeader.Source()/SetSource().
//
// Action, OrderID, AuxOrderID, TradeID, TradePrice and TradeSize are
// only meaningful when Source().HasFullOrderBook() is true (see
// SPEC_FULL.md §3 item 1). The mapping layer carries them as-is for
// every source; nothing checks the source's capability.
type OrderBase struct {
	OrderBaseHeader

	Price        float64
	Size         float64
	Side         Side
	Scope        Scope
	ExchangeCode byte
	MarketMaker  string

	Action     OrderAction
	OrderID    int64
	AuxOrderID int64
	TradeID    int64
	TradePrice float64
	TradeSize  float64
}

// GetPrice returns the order's price (depth-engine accessor; named to
// avoid colliding with the embedded Price field).
func (o OrderBase) GetPrice() float64 { return o.Price }

// GetSize returns the order's size.
func (o OrderBase) GetSize() float64 { return o.Size }

// GetSide returns the order's side.
func (o OrderBase) GetSide() Side { return o.Side }

// Order is a single level of a multi-source order book.
type Order struct {
	OrderBase
}

func (o Order) Kind() EventKind { return EventKind_Order }

// AnalyticOrder augments Order with iceberg-order visibility fields
// (SPEC_FULL.md §3 item 3); the depth engine aggregates only
// the visible Size, never the iceberg fields.
type AnalyticOrder struct {
	OrderBase

	IcebergPeakSize     float64
	IcebergHiddenSize   float64
	IcebergExecutedSize float64
}

func (o AnalyticOrder) Kind() EventKind { return EventKind_AnalyticOrder }

// OtcMarketsOrder augments Order with OTC Markets quote-access-payment
// and saturation fields.
type OtcMarketsOrder struct {
	OrderBase

	QuoteAccessPayment   int32
	SaturatedMarketMaker bool
	AutoExecution        bool
	NMSConditional       bool
}

func (o OtcMarketsOrder) Kind() EventKind { return EventKind_OtcMarketsOrder }

// SpreadOrder augments Order with the textual spread-leg symbol it prices.
type SpreadOrder struct {
	OrderBase

	SpreadSymbol string
}

func (o SpreadOrder) Kind() EventKind { return EventKind_SpreadOrder }

// Series carries per-expiration option-series statistics. It is Indexed
// but not part of the order-book family, so its source is an explicit
// field rather than packed into Index (spec §9's IndexedEventSource
// value-type contract, SPEC_FULL.md §3 item 6). The field itself is
// unexported so that Source() is the one way to read it, the same
// accessor shape OrderBaseHeader exposes, letting model.sourceOf
// recognize either kind uniformly.
type Series struct {
	IndexedEventHeader

	source Source

	Expiration   int32
	Volatility   float64
	CallVolume   float64
	PutVolume    float64
	PutCallRatio float64
	ForwardPrice float64
	Dividend     float64
	Interest     float64
}

func (s Series) Kind() EventKind { return EventKind_Series }

// Source returns the series' originating source.
func (s Series) Source() Source { return s.source }

// SetSource sets the series' originating source.
func (s *Series) SetSource(src Source) { s.source = src }
