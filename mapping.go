// Copyright (c) 2024-2026 Neomantra Corp
//
// Event mapping layer (spec §4.3): decode/encode between wire records
// and the typed Event model. Grounded on the teacher's RType-dispatched
// Fill_Raw/Fill_Json pattern:
//   _examples/NimbleMarkets-dbn-go/structs.go
//   _examples/NimbleMarkets-dbn-go/dbn_scanner.go (lazy list decode)
//

package mdfeed

import "github.com/valyala/fastjson"

// Decode converts a raw wire record into a typed Event. symbol is
// supplied by the caller (the subscription's symbol), since it travels
// out-of-band of WireHeader. Decode never retains body: all data is copied.
func Decode(symbol string, header WireHeader, body []byte) (Event, error) {
	switch header.Kind {
	case EventKind_Quote:
		var w WireQuote
		if err := w.fillRaw(body); err != nil {
			return nil, err
		}
		return Quote{
			MarketEventHeader: MarketEventHeader{EventSymbol: symbol, EventTime: TimeFromMillis(header.EventTimeMillis)},
			BidTime:           TimeFromMillis(w.BidTimeMillis),
			BidExchange:       w.BidExchange,
			BidPrice:          unscalePrice(w.BidPrice),
			BidSize:           unscalePrice(w.BidSize),
			AskTime:           TimeFromMillis(w.AskTimeMillis),
			AskExchange:       w.AskExchange,
			AskPrice:          unscalePrice(w.AskPrice),
			AskSize:           unscalePrice(w.AskSize),
		}, nil

	case EventKind_Trade, EventKind_TradeETH:
		var w WireTrade
		if err := w.fillRaw(body); err != nil {
			return nil, err
		}
		base := tradeBaseFromWire(symbol, header, w)
		if header.Kind == EventKind_TradeETH {
			return TradeETH{TradeBase: base}, nil
		}
		return Trade{TradeBase: base}, nil

	case EventKind_TimeAndSale:
		var w WireTimeAndSale
		if err := w.fillRaw(body); err != nil {
			return nil, err
		}
		return TimeAndSale{
			TimeSeriesEventHeader: TimeSeriesEventHeader{IndexedEventHeader: IndexedEventHeader{
				EventSymbol: symbol,
				EventTime:   TimeFromMillis(header.EventTimeMillis),
				Index:       header.Index,
				EventFlags:  header.Flags,
			}},
			ExchangeCode:         w.ExchangeCode,
			Price:                unscalePrice(w.Price),
			Size:                 unscalePrice(w.Size),
			BidPrice:             unscalePrice(w.BidPrice),
			AskPrice:             unscalePrice(w.AskPrice),
			Type:                 TimeAndSaleType(w.Type),
			AggressorSide:        Side(w.AggressorSide),
			SpreadLeg:            w.SpreadLeg != 0,
			ExtendedTradingHours: w.ExtendedTradingHours != 0,
			TradeThroughExempt:   w.TradeThroughExempt,
		}, nil

	case EventKind_Order, EventKind_AnalyticOrder, EventKind_OtcMarketsOrder, EventKind_SpreadOrder:
		var w WireOrder
		if err := w.fillRaw(body); err != nil {
			return nil, err
		}
		return orderEventFromWire(symbol, header, w), nil

	case EventKind_Candle:
		var w WireCandle
		if err := w.fillRaw(body); err != nil {
			return nil, err
		}
		return Candle{
			TimeSeriesEventHeader: TimeSeriesEventHeader{IndexedEventHeader: IndexedEventHeader{
				EventSymbol: symbol,
				EventTime:   TimeFromMillis(header.EventTimeMillis),
				Index:       header.Index,
				EventFlags:  header.Flags,
			}},
			Open:          unscalePrice(w.Open),
			High:          unscalePrice(w.High),
			Low:           unscalePrice(w.Low),
			Close:         unscalePrice(w.Close),
			Volume:        unscalePrice(w.Volume),
			VWAP:          unscalePrice(w.VWAP),
			BidVolume:     unscalePrice(w.BidVolume),
			AskVolume:     unscalePrice(w.AskVolume),
			ImpVolatility: unscalePrice(w.ImpVolatility),
			OpenInterest:  unscalePrice(w.OpenInterest),
			Count:         w.Count,
		}, nil

	default:
		return nil, unsupportedEventError(header.Kind)
	}
}

func tradeBaseFromWire(symbol string, header WireHeader, w WireTrade) TradeBase {
	return TradeBase{
		MarketEventHeader:    MarketEventHeader{EventSymbol: symbol, EventTime: TimeFromMillis(header.EventTimeMillis)},
		Price:                unscalePrice(w.Price),
		Size:                 unscalePrice(w.Size),
		Change:               unscalePrice(w.Change),
		DayID:                w.DayID,
		DayVolume:            unscalePrice(w.DayVolume),
		DayTurnover:          unscalePrice(w.DayTurnover),
		Direction:            Direction(w.Direction),
		ExtendedTradingHours: w.ExtendedTradingHours != 0,
		TickDirection:        Direction(w.TickDirection),
	}
}

func orderBaseFromWire(symbol string, header WireHeader, w WireOrder) OrderBase {
	return OrderBase{
		OrderBaseHeader: OrderBaseHeader{IndexedEventHeader: IndexedEventHeader{
			EventSymbol: symbol,
			EventTime:   TimeFromMillis(header.EventTimeMillis),
			Index:       header.Index,
			EventFlags:  header.Flags,
		}},
		Price:        unscalePrice(w.Price),
		Size:         unscalePrice(w.Size),
		Side:         Side(w.Side),
		Scope:        Scope(w.Scope),
		ExchangeCode: w.ExchangeCode,
		MarketMaker:  w.MarketMaker,
		Action:       OrderAction(w.Action),
		OrderID:      w.OrderID,
		AuxOrderID:   w.AuxOrderID,
		TradeID:      w.TradeID,
		TradePrice:   unscalePrice(w.TradePrice),
		TradeSize:    unscalePrice(w.TradeSize),
	}
}

// orderEventFromWire builds the concrete order-family Go type named by
// header.Kind, carrying over that kind's own fields from w in addition
// to the common OrderBase fields (spec §8's round-trip law covers every
// concrete kind, not just OrderBase's common fields).
func orderEventFromWire(symbol string, header WireHeader, w WireOrder) Event {
	base := orderBaseFromWire(symbol, header, w)
	switch header.Kind {
	case EventKind_AnalyticOrder:
		return AnalyticOrder{
			OrderBase:           base,
			IcebergPeakSize:     unscalePrice(w.IcebergPeakSize),
			IcebergHiddenSize:   unscalePrice(w.IcebergHiddenSize),
			IcebergExecutedSize: unscalePrice(w.IcebergExecutedSize),
		}
	case EventKind_OtcMarketsOrder:
		return OtcMarketsOrder{
			OrderBase:            base,
			QuoteAccessPayment:   w.QuoteAccessPayment,
			SaturatedMarketMaker: w.SaturatedMarketMaker != 0,
			AutoExecution:        w.AutoExecution != 0,
			NMSConditional:       w.NMSConditional != 0,
		}
	case EventKind_SpreadOrder:
		return SpreadOrder{OrderBase: base, SpreadSymbol: w.SpreadSymbol}
	default:
		return Order{OrderBase: base}
	}
}

// Encode converts a typed Event back into a wire record. Unsupported
// kinds (not yet carried over the raw binary wire, see DESIGN.md) fail
// with UnknownEvent.
func Encode(e Event) (WireHeader, []byte, error) {
	header := WireHeader{Kind: e.Kind(), EventTimeMillis: MillisFromTime(e.Time())}

	switch ev := e.(type) {
	case Quote:
		b := make([]byte, wireQuoteSize)
		WireQuote{
			BidTimeMillis: MillisFromTime(ev.BidTime),
			BidExchange:   ev.BidExchange,
			BidPrice:      scalePrice(ev.BidPrice),
			BidSize:       scalePrice(ev.BidSize),
			AskTimeMillis: MillisFromTime(ev.AskTime),
			AskExchange:   ev.AskExchange,
			AskPrice:      scalePrice(ev.AskPrice),
			AskSize:       scalePrice(ev.AskSize),
		}.putRaw(b)
		return header, b, nil

	case Trade:
		return encodeTrade(header, ev.TradeBase), nil
	case TradeETH:
		return encodeTrade(header, ev.TradeBase), nil

	case TimeAndSale:
		header.EventTimeMillis = MillisFromTime(ev.EventTime)
		header.Index = ev.Index
		header.Flags = ev.EventFlags
		b := make([]byte, wireTimeAndSaleSize)
		WireTimeAndSale{
			ExchangeCode:         ev.ExchangeCode,
			Price:                scalePrice(ev.Price),
			Size:                 scalePrice(ev.Size),
			BidPrice:             scalePrice(ev.BidPrice),
			AskPrice:             scalePrice(ev.AskPrice),
			Type:                 uint8(ev.Type),
			AggressorSide:        uint8(ev.AggressorSide),
			SpreadLeg:            boolToByte(ev.SpreadLeg),
			ExtendedTradingHours: boolToByte(ev.ExtendedTradingHours),
			TradeThroughExempt:   ev.TradeThroughExempt,
		}.putRaw(b)
		return header, b, nil

	case Order:
		return encodeOrder(header, ev.OrderBase, WireOrder{}), nil
	case AnalyticOrder:
		return encodeOrder(header, ev.OrderBase, WireOrder{
			IcebergPeakSize:     scalePrice(ev.IcebergPeakSize),
			IcebergHiddenSize:   scalePrice(ev.IcebergHiddenSize),
			IcebergExecutedSize: scalePrice(ev.IcebergExecutedSize),
		}), nil
	case OtcMarketsOrder:
		return encodeOrder(header, ev.OrderBase, WireOrder{
			QuoteAccessPayment:   ev.QuoteAccessPayment,
			SaturatedMarketMaker: boolToByte(ev.SaturatedMarketMaker),
			AutoExecution:        boolToByte(ev.AutoExecution),
			NMSConditional:       boolToByte(ev.NMSConditional),
		}), nil
	case SpreadOrder:
		return encodeOrder(header, ev.OrderBase, WireOrder{SpreadSymbol: ev.SpreadSymbol}), nil

	case Candle:
		header.EventTimeMillis = MillisFromTime(ev.EventTime)
		header.Index = ev.Index
		header.Flags = ev.EventFlags
		b := make([]byte, wireCandleSize)
		WireCandle{
			Open:          scalePrice(ev.Open),
			High:          scalePrice(ev.High),
			Low:           scalePrice(ev.Low),
			Close:         scalePrice(ev.Close),
			Volume:        scalePrice(ev.Volume),
			VWAP:          scalePrice(ev.VWAP),
			BidVolume:     scalePrice(ev.BidVolume),
			AskVolume:     scalePrice(ev.AskVolume),
			ImpVolatility: scalePrice(ev.ImpVolatility),
			OpenInterest:  scalePrice(ev.OpenInterest),
			Count:         ev.Count,
		}.putRaw(b)
		return header, b, nil

	default:
		return WireHeader{}, nil, unsupportedEventError(e.Kind())
	}
}

func encodeTrade(header WireHeader, t TradeBase) (WireHeader, []byte) {
	b := make([]byte, wireTradeSize)
	WireTrade{
		Price:                scalePrice(t.Price),
		Size:                 scalePrice(t.Size),
		Change:               scalePrice(t.Change),
		DayID:                t.DayID,
		DayVolume:            scalePrice(t.DayVolume),
		DayTurnover:          scalePrice(t.DayTurnover),
		Direction:            uint8(t.Direction),
		ExtendedTradingHours: boolToByte(t.ExtendedTradingHours),
		TickDirection:        uint8(t.TickDirection),
	}.putRaw(b)
	return header, b
}

// encodeOrder merges o's common fields into tail (which the caller has
// pre-populated with whatever kind-specific fields that concrete order
// type carries) and serializes the result.
func encodeOrder(header WireHeader, o OrderBase, tail WireOrder) (WireHeader, []byte) {
	header.Index = o.Index
	header.Flags = o.EventFlags
	w := tail
	w.Price = scalePrice(o.Price)
	w.Size = scalePrice(o.Size)
	w.Side = uint8(o.Side)
	w.Scope = uint8(o.Scope)
	w.ExchangeCode = o.ExchangeCode
	w.Action = uint8(o.Action)
	w.OrderID = o.OrderID
	w.AuxOrderID = o.AuxOrderID
	w.TradeID = o.TradeID
	w.TradePrice = scalePrice(o.TradePrice)
	w.TradeSize = scalePrice(o.TradeSize)
	w.MarketMaker = o.MarketMaker
	b := make([]byte, w.wireSize())
	w.putRaw(b)
	return header, b
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// DecodeJSON is the JSON-wire counterpart of Decode, mirroring the
// teacher's Fill_Json(val *fastjson.Value, header) pattern: every field,
// including the header, is read from one flat JSON object.
func DecodeJSON(symbol string, val *fastjson.Value) (Event, error) {
	var header WireHeader
	header.fillJSON(val)

	switch header.Kind {
	case EventKind_Quote:
		var w WireQuote
		w.fillJSON(val)
		return Quote{
			MarketEventHeader: MarketEventHeader{EventSymbol: symbol, EventTime: TimeFromMillis(header.EventTimeMillis)},
			BidTime:           TimeFromMillis(w.BidTimeMillis),
			BidExchange:       w.BidExchange,
			BidPrice:          unscalePrice(w.BidPrice),
			BidSize:           unscalePrice(w.BidSize),
			AskTime:           TimeFromMillis(w.AskTimeMillis),
			AskExchange:       w.AskExchange,
			AskPrice:          unscalePrice(w.AskPrice),
			AskSize:           unscalePrice(w.AskSize),
		}, nil

	case EventKind_Trade, EventKind_TradeETH:
		var w WireTrade
		w.fillJSON(val)
		base := tradeBaseFromWire(symbol, header, w)
		if header.Kind == EventKind_TradeETH {
			return TradeETH{TradeBase: base}, nil
		}
		return Trade{TradeBase: base}, nil

	case EventKind_Order, EventKind_AnalyticOrder, EventKind_OtcMarketsOrder, EventKind_SpreadOrder:
		var w WireOrder
		w.fillJSON(val)
		return orderEventFromWire(symbol, header, w), nil

	case EventKind_TimeAndSale:
		var w WireTimeAndSale
		w.fillJSON(val)
		return TimeAndSale{
			TimeSeriesEventHeader: TimeSeriesEventHeader{IndexedEventHeader: IndexedEventHeader{
				EventSymbol: symbol,
				EventTime:   TimeFromMillis(header.EventTimeMillis),
				Index:       header.Index,
				EventFlags:  header.Flags,
			}},
			ExchangeCode:         w.ExchangeCode,
			Price:                unscalePrice(w.Price),
			Size:                 unscalePrice(w.Size),
			BidPrice:             unscalePrice(w.BidPrice),
			AskPrice:             unscalePrice(w.AskPrice),
			Type:                 TimeAndSaleType(w.Type),
			AggressorSide:        Side(w.AggressorSide),
			SpreadLeg:            w.SpreadLeg != 0,
			ExtendedTradingHours: w.ExtendedTradingHours != 0,
			TradeThroughExempt:   w.TradeThroughExempt,
		}, nil

	case EventKind_Candle:
		var w WireCandle
		w.fillJSON(val)
		return Candle{
			TimeSeriesEventHeader: TimeSeriesEventHeader{IndexedEventHeader: IndexedEventHeader{
				EventSymbol: symbol,
				EventTime:   TimeFromMillis(header.EventTimeMillis),
				Index:       header.Index,
				EventFlags:  header.Flags,
			}},
			Open:          unscalePrice(w.Open),
			High:          unscalePrice(w.High),
			Low:           unscalePrice(w.Low),
			Close:         unscalePrice(w.Close),
			Volume:        unscalePrice(w.Volume),
			VWAP:          unscalePrice(w.VWAP),
			BidVolume:     unscalePrice(w.BidVolume),
			AskVolume:     unscalePrice(w.AskVolume),
			ImpVolatility: unscalePrice(w.ImpVolatility),
			OpenInterest:  unscalePrice(w.OpenInterest),
			Count:         w.Count,
		}, nil

	default:
		return nil, unsupportedEventError(header.Kind)
	}
}

// DecodeAllJSON lazily decodes a JSON array of event objects into typed
// events, preserving order; a per-element decode error is returned
// immediately (spec §4.3's "a list of wire events decodes lazily into a
// vector of typed events preserving order").
func DecodeAllJSON(symbol string, arr []*fastjson.Value) ([]Event, error) {
	events := make([]Event, 0, len(arr))
	for _, v := range arr {
		e, err := DecodeJSON(symbol, v)
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}
	return events, nil
}
