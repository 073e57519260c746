// Copyright (c) 2024-2026 Neomantra Corp
//
// Wire-layout records for the event mapping layer (spec §4.3), adapted
// field-for-field from the teacher's DBN record layout idiom:
//   _examples/NimbleMarkets-dbn-go/structs.go (RHeader, Mbp0, Ohlcv, Imbalance:
//   fixed binary.LittleEndian layout with a price scaled 1e-9, and a
//   parallel Fill_Json(val *fastjson.Value, header) reading the same
//   fields from a flat JSON object).
//
// Prices are carried on the wire as int64 fixed-point, 1 unit = 1e-9,
// the same convention as the teacher's Mbp0.Price / Ohlcv.Open.

package mdfeed

import (
	"encoding/binary"
	"math"

	"github.com/valyala/fastjson"
	"github.com/valyala/fastjson/fastfloat"
)

const priceScale = 1e9

func scalePrice(p float64) int64 {
	if math.IsNaN(p) {
		return math.MinInt64
	}
	return int64(math.Round(p * priceScale))
}

func unscalePrice(v int64) float64 {
	if v == math.MinInt64 {
		return math.NaN()
	}
	return float64(v) / priceScale
}

// WireHeader is the common prefix of every on-wire event record: the
// fields common to every indexed/time-series event plus the discriminant
// kind byte. The event symbol travels out-of-band (it is known from the
// subscription the record arrived on), exactly as the teacher's RHeader
// does not itself carry the instrument symbol string.
type WireHeader struct {
	Kind            EventKind
	Flags           EventFlags
	SourceID        int32
	Index           int64
	EventTimeMillis int64
}

const WireHeaderSize = 1 + 1 + 4 + 8 + 8 // 22 bytes

func (h *WireHeader) fillRaw(b []byte) error {
	if len(b) < WireHeaderSize {
		return unexpectedWireBytesError(len(b), WireHeaderSize)
	}
	h.Kind = EventKind(b[0])
	h.Flags = EventFlags(b[1])
	h.SourceID = int32(binary.LittleEndian.Uint32(b[2:6]))
	h.Index = int64(binary.LittleEndian.Uint64(b[6:14]))
	h.EventTimeMillis = int64(binary.LittleEndian.Uint64(b[14:22]))
	return nil
}

func (h WireHeader) putRaw(b []byte) {
	b[0] = byte(h.Kind)
	b[1] = byte(h.Flags)
	binary.LittleEndian.PutUint32(b[2:6], uint32(h.SourceID))
	binary.LittleEndian.PutUint64(b[6:14], uint64(h.Index))
	binary.LittleEndian.PutUint64(b[14:22], uint64(h.EventTimeMillis))
}

func (h *WireHeader) fillJSON(val *fastjson.Value) {
	h.Kind = EventKind(val.GetUint("kind"))
	h.Flags = EventFlags(val.GetUint("flags"))
	h.SourceID = int32(val.GetInt("source"))
	h.Index = fastjson_GetInt64FromString(val, "index")
	h.EventTimeMillis = fastjson_GetInt64FromString(val, "event_time")
}

func fastjson_GetInt64FromString(val *fastjson.Value, key string) int64 {
	return fastfloat.ParseInt64BestEffort(string(val.GetStringBytes(key)))
}

// WireQuote is the fixed-size body following WireHeader for EventKind_Quote.
type WireQuote struct {
	BidTimeMillis int64
	BidExchange   byte
	BidPrice      int64
	BidSize       int64
	AskTimeMillis int64
	AskExchange   byte
	AskPrice      int64
	AskSize       int64
}

const wireQuoteSize = 8 + 1 + 8 + 8 + 8 + 1 + 8 + 8

func (w *WireQuote) fillRaw(b []byte) error {
	if len(b) < wireQuoteSize {
		return unexpectedWireBytesError(len(b), wireQuoteSize)
	}
	w.BidTimeMillis = int64(binary.LittleEndian.Uint64(b[0:8]))
	w.BidExchange = b[8]
	w.BidPrice = int64(binary.LittleEndian.Uint64(b[9:17]))
	w.BidSize = int64(binary.LittleEndian.Uint64(b[17:25]))
	w.AskTimeMillis = int64(binary.LittleEndian.Uint64(b[25:33]))
	w.AskExchange = b[33]
	w.AskPrice = int64(binary.LittleEndian.Uint64(b[34:42]))
	w.AskSize = int64(binary.LittleEndian.Uint64(b[42:50]))
	return nil
}

func (w WireQuote) putRaw(b []byte) {
	binary.LittleEndian.PutUint64(b[0:8], uint64(w.BidTimeMillis))
	b[8] = w.BidExchange
	binary.LittleEndian.PutUint64(b[9:17], uint64(w.BidPrice))
	binary.LittleEndian.PutUint64(b[17:25], uint64(w.BidSize))
	binary.LittleEndian.PutUint64(b[25:33], uint64(w.AskTimeMillis))
	b[33] = w.AskExchange
	binary.LittleEndian.PutUint64(b[34:42], uint64(w.AskPrice))
	binary.LittleEndian.PutUint64(b[42:50], uint64(w.AskSize))
}

func (w *WireQuote) fillJSON(val *fastjson.Value) {
	w.BidTimeMillis = fastjson_GetInt64FromString(val, "bid_time")
	w.BidExchange = byte(val.GetUint("bid_exchange"))
	w.BidPrice = scalePrice(val.GetFloat64("bid_price"))
	w.BidSize = scalePrice(val.GetFloat64("bid_size"))
	w.AskTimeMillis = fastjson_GetInt64FromString(val, "ask_time")
	w.AskExchange = byte(val.GetUint("ask_exchange"))
	w.AskPrice = scalePrice(val.GetFloat64("ask_price"))
	w.AskSize = scalePrice(val.GetFloat64("ask_size"))
}

// WireTrade is the fixed-size body for EventKind_Trade / EventKind_TradeETH.
type WireTrade struct {
	Price                int64
	Size                 int64
	Change               int64
	DayID                int32
	DayVolume            int64
	DayTurnover          int64
	Direction            uint8
	ExtendedTradingHours uint8
	TickDirection        uint8
}

const wireTradeSize = 8 + 8 + 8 + 4 + 8 + 8 + 1 + 1 + 1

func (w *WireTrade) fillRaw(b []byte) error {
	if len(b) < wireTradeSize {
		return unexpectedWireBytesError(len(b), wireTradeSize)
	}
	w.Price = int64(binary.LittleEndian.Uint64(b[0:8]))
	w.Size = int64(binary.LittleEndian.Uint64(b[8:16]))
	w.Change = int64(binary.LittleEndian.Uint64(b[16:24]))
	w.DayID = int32(binary.LittleEndian.Uint32(b[24:28]))
	w.DayVolume = int64(binary.LittleEndian.Uint64(b[28:36]))
	w.DayTurnover = int64(binary.LittleEndian.Uint64(b[36:44]))
	w.Direction = b[44]
	w.ExtendedTradingHours = b[45]
	w.TickDirection = b[46]
	return nil
}

func (w WireTrade) putRaw(b []byte) {
	binary.LittleEndian.PutUint64(b[0:8], uint64(w.Price))
	binary.LittleEndian.PutUint64(b[8:16], uint64(w.Size))
	binary.LittleEndian.PutUint64(b[16:24], uint64(w.Change))
	binary.LittleEndian.PutUint32(b[24:28], uint32(w.DayID))
	binary.LittleEndian.PutUint64(b[28:36], uint64(w.DayVolume))
	binary.LittleEndian.PutUint64(b[36:44], uint64(w.DayTurnover))
	b[44] = w.Direction
	b[45] = w.ExtendedTradingHours
	b[46] = w.TickDirection
}

func (w *WireTrade) fillJSON(val *fastjson.Value) {
	w.Price = scalePrice(val.GetFloat64("price"))
	w.Size = scalePrice(val.GetFloat64("size"))
	w.Change = scalePrice(val.GetFloat64("change"))
	w.DayID = int32(val.GetInt("day_id"))
	w.DayVolume = scalePrice(val.GetFloat64("day_volume"))
	w.DayTurnover = scalePrice(val.GetFloat64("day_turnover"))
	w.Direction = uint8(val.GetUint("direction"))
	w.ExtendedTradingHours = uint8(val.GetUint("eth"))
	w.TickDirection = uint8(val.GetUint("tick_direction"))
}

// WireOrder is the body for the OrderBase family (Order, AnalyticOrder,
// OtcMarketsOrder, SpreadOrder); the kind byte in WireHeader picks the
// concrete Go type. Every field below is always present on the wire,
// zero-valued for kinds that do not carry it (AnalyticOrder's iceberg
// fields, OtcMarketsOrder's four fields, SpreadOrder's SpreadSymbol),
// so that Encode/Decode round-trip every concrete order kind without
// a per-kind wire variant. MarketMaker and SpreadSymbol are the only
// variable-length fields, so the body is length-prefixed rather than
// fixed-size like the other Wire* records.
type WireOrder struct {
	Price        int64
	Size         int64
	Side         uint8
	Scope        uint8
	ExchangeCode byte
	Action       uint8
	OrderID      int64
	AuxOrderID   int64
	TradeID      int64
	TradePrice   int64
	TradeSize    int64

	IcebergPeakSize     int64
	IcebergHiddenSize   int64
	IcebergExecutedSize int64

	QuoteAccessPayment   int32
	SaturatedMarketMaker uint8
	AutoExecution        uint8
	NMSConditional       uint8

	MarketMaker  string
	SpreadSymbol string
}

const wireOrderFixedSize = 8 + 8 + 1 + 1 + 1 + 1 + 8 + 8 + 8 + 8 + 8 +
	8 + 8 + 8 +
	4 + 1 + 1 + 1

// wireSize returns the total on-wire size of w, including its
// length-prefixed string tail.
func (w WireOrder) wireSize() int {
	return wireOrderFixedSize + 2 + len(w.MarketMaker) + 2 + len(w.SpreadSymbol)
}

func (w *WireOrder) fillRaw(b []byte) error {
	if len(b) < wireOrderFixedSize+4 {
		return unexpectedWireBytesError(len(b), wireOrderFixedSize+4)
	}
	w.Price = int64(binary.LittleEndian.Uint64(b[0:8]))
	w.Size = int64(binary.LittleEndian.Uint64(b[8:16]))
	w.Side = b[16]
	w.Scope = b[17]
	w.ExchangeCode = b[18]
	w.Action = b[19]
	w.OrderID = int64(binary.LittleEndian.Uint64(b[20:28]))
	w.AuxOrderID = int64(binary.LittleEndian.Uint64(b[28:36]))
	w.TradeID = int64(binary.LittleEndian.Uint64(b[36:44]))
	w.TradePrice = int64(binary.LittleEndian.Uint64(b[44:52]))
	w.TradeSize = int64(binary.LittleEndian.Uint64(b[52:60]))
	w.IcebergPeakSize = int64(binary.LittleEndian.Uint64(b[60:68]))
	w.IcebergHiddenSize = int64(binary.LittleEndian.Uint64(b[68:76]))
	w.IcebergExecutedSize = int64(binary.LittleEndian.Uint64(b[76:84]))
	w.QuoteAccessPayment = int32(binary.LittleEndian.Uint32(b[84:88]))
	w.SaturatedMarketMaker = b[88]
	w.AutoExecution = b[89]
	w.NMSConditional = b[90]

	off := wireOrderFixedSize
	mmLen := int(binary.LittleEndian.Uint16(b[off : off+2]))
	off += 2
	if len(b) < off+mmLen+2 {
		return unexpectedWireBytesError(len(b), off+mmLen+2)
	}
	w.MarketMaker = string(b[off : off+mmLen])
	off += mmLen

	ssLen := int(binary.LittleEndian.Uint16(b[off : off+2]))
	off += 2
	if len(b) < off+ssLen {
		return unexpectedWireBytesError(len(b), off+ssLen)
	}
	w.SpreadSymbol = string(b[off : off+ssLen])
	return nil
}

func (w WireOrder) putRaw(b []byte) {
	binary.LittleEndian.PutUint64(b[0:8], uint64(w.Price))
	binary.LittleEndian.PutUint64(b[8:16], uint64(w.Size))
	b[16] = w.Side
	b[17] = w.Scope
	b[18] = w.ExchangeCode
	b[19] = w.Action
	binary.LittleEndian.PutUint64(b[20:28], uint64(w.OrderID))
	binary.LittleEndian.PutUint64(b[28:36], uint64(w.AuxOrderID))
	binary.LittleEndian.PutUint64(b[36:44], uint64(w.TradeID))
	binary.LittleEndian.PutUint64(b[44:52], uint64(w.TradePrice))
	binary.LittleEndian.PutUint64(b[52:60], uint64(w.TradeSize))
	binary.LittleEndian.PutUint64(b[60:68], uint64(w.IcebergPeakSize))
	binary.LittleEndian.PutUint64(b[68:76], uint64(w.IcebergHiddenSize))
	binary.LittleEndian.PutUint64(b[76:84], uint64(w.IcebergExecutedSize))
	binary.LittleEndian.PutUint32(b[84:88], uint32(w.QuoteAccessPayment))
	b[88] = w.SaturatedMarketMaker
	b[89] = w.AutoExecution
	b[90] = w.NMSConditional

	off := wireOrderFixedSize
	binary.LittleEndian.PutUint16(b[off:off+2], uint16(len(w.MarketMaker)))
	off += 2
	off += copy(b[off:], w.MarketMaker)
	binary.LittleEndian.PutUint16(b[off:off+2], uint16(len(w.SpreadSymbol)))
	off += 2
	copy(b[off:], w.SpreadSymbol)
}

func (w *WireOrder) fillJSON(val *fastjson.Value) {
	w.Price = scalePrice(val.GetFloat64("price"))
	w.Size = scalePrice(val.GetFloat64("size"))
	w.Side = uint8(val.GetUint("side"))
	w.Scope = uint8(val.GetUint("scope"))
	w.ExchangeCode = byte(val.GetUint("exchange_code"))
	w.Action = uint8(val.GetUint("action"))
	w.OrderID = fastjson_GetInt64FromString(val, "order_id")
	w.AuxOrderID = fastjson_GetInt64FromString(val, "aux_order_id")
	w.TradeID = fastjson_GetInt64FromString(val, "trade_id")
	w.TradePrice = scalePrice(val.GetFloat64("trade_price"))
	w.TradeSize = scalePrice(val.GetFloat64("trade_size"))
	w.IcebergPeakSize = scalePrice(val.GetFloat64("iceberg_peak_size"))
	w.IcebergHiddenSize = scalePrice(val.GetFloat64("iceberg_hidden_size"))
	w.IcebergExecutedSize = scalePrice(val.GetFloat64("iceberg_executed_size"))
	w.QuoteAccessPayment = int32(val.GetInt("quote_access_payment"))
	w.SaturatedMarketMaker = uint8(val.GetUint("saturated_market_maker"))
	w.AutoExecution = uint8(val.GetUint("auto_execution"))
	w.NMSConditional = uint8(val.GetUint("nms_conditional"))
	w.MarketMaker = string(val.GetStringBytes("market_maker"))
	w.SpreadSymbol = string(val.GetStringBytes("spread_symbol"))
}

// WireTimeAndSale is the fixed-size body for EventKind_TimeAndSale. It
// has no fields for TimeAndSale's ExchangeSaleConditions, BuyerID and
// SellerID strings, so those are not carried over the wire.
type WireTimeAndSale struct {
	ExchangeCode           byte
	Price                  int64
	Size                   int64
	BidPrice               int64
	AskPrice               int64
	Type                   uint8
	AggressorSide          uint8
	SpreadLeg              uint8
	ExtendedTradingHours   uint8
	TradeThroughExempt     byte
}

const wireTimeAndSaleSize = 1 + 8 + 8 + 8 + 8 + 1 + 1 + 1 + 1 + 1

func (w *WireTimeAndSale) fillRaw(b []byte) error {
	if len(b) < wireTimeAndSaleSize {
		return unexpectedWireBytesError(len(b), wireTimeAndSaleSize)
	}
	w.ExchangeCode = b[0]
	w.Price = int64(binary.LittleEndian.Uint64(b[1:9]))
	w.Size = int64(binary.LittleEndian.Uint64(b[9:17]))
	w.BidPrice = int64(binary.LittleEndian.Uint64(b[17:25]))
	w.AskPrice = int64(binary.LittleEndian.Uint64(b[25:33]))
	w.Type = b[33]
	w.AggressorSide = b[34]
	w.SpreadLeg = b[35]
	w.ExtendedTradingHours = b[36]
	w.TradeThroughExempt = b[37]
	return nil
}

func (w WireTimeAndSale) putRaw(b []byte) {
	b[0] = w.ExchangeCode
	binary.LittleEndian.PutUint64(b[1:9], uint64(w.Price))
	binary.LittleEndian.PutUint64(b[9:17], uint64(w.Size))
	binary.LittleEndian.PutUint64(b[17:25], uint64(w.BidPrice))
	binary.LittleEndian.PutUint64(b[25:33], uint64(w.AskPrice))
	b[33] = w.Type
	b[34] = w.AggressorSide
	b[35] = w.SpreadLeg
	b[36] = w.ExtendedTradingHours
	b[37] = w.TradeThroughExempt
}

func (w *WireTimeAndSale) fillJSON(val *fastjson.Value) {
	w.ExchangeCode = byte(val.GetUint("exchange_code"))
	w.Price = scalePrice(val.GetFloat64("price"))
	w.Size = scalePrice(val.GetFloat64("size"))
	w.BidPrice = scalePrice(val.GetFloat64("bid_price"))
	w.AskPrice = scalePrice(val.GetFloat64("ask_price"))
	w.Type = uint8(val.GetUint("type"))
	w.AggressorSide = uint8(val.GetUint("aggressor_side"))
	w.SpreadLeg = uint8(val.GetUint("spread_leg"))
	w.ExtendedTradingHours = uint8(val.GetUint("eth"))
	w.TradeThroughExempt = byte(val.GetUint("ttx"))
}

// WireCandle is the fixed-size body for EventKind_Candle.
type WireCandle struct {
	Open          int64
	High          int64
	Low           int64
	Close         int64
	Volume        int64
	VWAP          int64
	BidVolume     int64
	AskVolume     int64
	ImpVolatility int64
	OpenInterest  int64
	Count         int64
}

const wireCandleSize = 8 * 11

func (w *WireCandle) fillRaw(b []byte) error {
	if len(b) < wireCandleSize {
		return unexpectedWireBytesError(len(b), wireCandleSize)
	}
	fields := []*int64{&w.Open, &w.High, &w.Low, &w.Close, &w.Volume, &w.VWAP,
		&w.BidVolume, &w.AskVolume, &w.ImpVolatility, &w.OpenInterest, &w.Count}
	for i, f := range fields {
		*f = int64(binary.LittleEndian.Uint64(b[i*8 : i*8+8]))
	}
	return nil
}

func (w WireCandle) putRaw(b []byte) {
	fields := []int64{w.Open, w.High, w.Low, w.Close, w.Volume, w.VWAP,
		w.BidVolume, w.AskVolume, w.ImpVolatility, w.OpenInterest, w.Count}
	for i, f := range fields {
		binary.LittleEndian.PutUint64(b[i*8:i*8+8], uint64(f))
	}
}

func (w *WireCandle) fillJSON(val *fastjson.Value) {
	w.Open = scalePrice(val.GetFloat64("open"))
	w.High = scalePrice(val.GetFloat64("high"))
	w.Low = scalePrice(val.GetFloat64("low"))
	w.Close = scalePrice(val.GetFloat64("close"))
	w.Volume = scalePrice(val.GetFloat64("volume"))
	w.VWAP = scalePrice(val.GetFloat64("vwap"))
	w.BidVolume = scalePrice(val.GetFloat64("bid_volume"))
	w.AskVolume = scalePrice(val.GetFloat64("ask_volume"))
	w.ImpVolatility = scalePrice(val.GetFloat64("imp_volatility"))
	w.OpenInterest = scalePrice(val.GetFloat64("open_interest"))
	w.Count = fastjson_GetInt64FromString(val, "count")
}

func unexpectedWireBytesError(got, want int) error {
	return invalidArgumentError("wire buffer too short: got %d bytes, need %d", got, want)
}
