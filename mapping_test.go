// Copyright (c) 2024-2026 Neomantra Corp

package mdfeed_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/valyala/fastjson"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
)

var _ = Describe("Decode/Encode round trip", func() {
	roundTrip := func(e mdfeed.Event) mdfeed.Event {
		header, body, err := mdfeed.Encode(e)
		Expect(err).NotTo(HaveOccurred())
		got, err := mdfeed.Decode(e.Symbol(), header, body)
		Expect(err).NotTo(HaveOccurred())
		return got
	}

	It("round-trips a Quote", func() {
		q := mdfeed.Quote{}
		q.EventSymbol = "AAPL"
		q.BidPrice = 100.25
		q.BidSize = 10
		q.AskPrice = 100.5
		q.AskSize = 5
		q.BidExchange = 'N'
		q.AskExchange = 'Q'

		got := roundTrip(q)
		Expect(got).To(Equal(q))
	})

	It("round-trips a Trade, including TickDirection", func() {
		tr := mdfeed.Trade{}
		tr.EventSymbol = "AAPL"
		tr.Price = 123.45
		tr.Size = 7
		tr.Direction = mdfeed.Direction_Up
		tr.TickDirection = mdfeed.Direction_Down
		tr.ExtendedTradingHours = true

		got := roundTrip(tr)
		Expect(got).To(Equal(tr))
	})

	It("round-trips a TradeETH, including TickDirection", func() {
		tr := mdfeed.TradeETH{}
		tr.EventSymbol = "AAPL"
		tr.Price = 123.45
		tr.TickDirection = mdfeed.Direction_Up

		got := roundTrip(tr)
		Expect(got).To(Equal(tr))
	})

	It("round-trips an Order, preserving the packed source and MarketMaker", func() {
		o := mdfeed.Order{}
		o.EventSymbol = "AAPL"
		o.Index = 99
		o.SetSource(mdfeed.NTV)
		o.Price = 50
		o.Size = 3
		o.Side = mdfeed.Side_Buy
		o.MarketMaker = "NITE"

		got := roundTrip(o)
		Expect(got).To(Equal(o))
		Expect(got.(mdfeed.Order).Source()).To(Equal(mdfeed.NTV))
	})

	It("round-trips an AnalyticOrder's iceberg fields", func() {
		a := mdfeed.AnalyticOrder{}
		a.EventSymbol = "AAPL"
		a.SetSource(mdfeed.GLBX)
		a.Price = 10
		a.Size = 2
		a.MarketMaker = "NITE"
		a.IcebergPeakSize = 100
		a.IcebergHiddenSize = 900
		a.IcebergExecutedSize = 50

		got := roundTrip(a)
		Expect(got).To(Equal(a))
	})

	It("round-trips an OtcMarketsOrder's fields", func() {
		o := mdfeed.OtcMarketsOrder{}
		o.EventSymbol = "AAPL"
		o.SetSource(mdfeed.Pink)
		o.Price = 1.25
		o.Size = 500
		o.QuoteAccessPayment = -25
		o.SaturatedMarketMaker = true
		o.AutoExecution = true
		o.NMSConditional = true

		got := roundTrip(o)
		Expect(got).To(Equal(o))
	})

	It("round-trips a SpreadOrder's SpreadSymbol", func() {
		s := mdfeed.SpreadOrder{}
		s.EventSymbol = "AAPL"
		s.SetSource(mdfeed.ARCA)
		s.Price = 0.02
		s.Size = 10
		s.SpreadSymbol = "AAPL-MSFT"

		got := roundTrip(s)
		Expect(got).To(Equal(s))
	})

	It("round-trips a TimeAndSale", func() {
		ts := mdfeed.TimeAndSale{}
		ts.EventSymbol = "AAPL"
		ts.SetTime(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		ts.Price = 42
		ts.Size = 1

		got := roundTrip(ts)
		Expect(got).To(Equal(ts))
	})

	It("round-trips a Candle", func() {
		c := mdfeed.Candle{}
		c.EventSymbol = "AAPL{=5m}"
		c.Open, c.High, c.Low, c.Close = 1, 2, 0.5, 1.5
		c.Volume = 1000
		c.Count = 12

		got := roundTrip(c)
		Expect(got).To(Equal(c))
	})

	It("rejects an unsupported kind", func() {
		p := mdfeed.Profile{}
		_, _, err := mdfeed.Encode(p)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("DecodeJSON", func() {
	It("decodes a Quote from a flat JSON object", func() {
		var p fastjson.Parser
		val, err := p.Parse(`{
			"kind": 0, "flags": 0, "source": 0, "index": "0", "event_time": "0",
			"bid_time": "0", "bid_exchange": 78, "bid_price": 100.25, "bid_size": 10,
			"ask_time": "0", "ask_exchange": 81, "ask_price": 100.5, "ask_size": 5
		}`)
		Expect(err).NotTo(HaveOccurred())

		e, err := mdfeed.DecodeJSON("AAPL", val)
		Expect(err).NotTo(HaveOccurred())
		q, ok := e.(mdfeed.Quote)
		Expect(ok).To(BeTrue())
		Expect(q.BidPrice).To(Equal(100.25))
		Expect(q.AskSize).To(Equal(5.0))
	})

	It("decodes a list of events lazily, preserving order", func() {
		var p fastjson.Parser
		arr, err := p.Parse(`[
			{"kind":0,"flags":0,"source":0,"index":"0","event_time":"0","bid_time":"0","bid_exchange":78,"bid_price":1,"bid_size":1,"ask_time":"0","ask_exchange":81,"ask_price":2,"ask_size":2},
			{"kind":3,"flags":0,"source":0,"index":"0","event_time":"0","price":9,"size":1,"change":0,"day_id":0,"day_volume":0,"day_turnover":0,"direction":0,"eth":0}
		]`)
		Expect(err).NotTo(HaveOccurred())

		events, err := mdfeed.DecodeAllJSON("AAPL", arr.GetArray())
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(HaveLen(2))
		Expect(events[0].Kind()).To(Equal(mdfeed.EventKind_Quote))
		Expect(events[1].Kind()).To(Equal(mdfeed.EventKind_Trade))
	})

	It("stops at the first decode error", func() {
		var p fastjson.Parser
		arr, err := p.Parse(`[
			{"kind":0,"flags":0,"source":0,"index":"0","event_time":"0","bid_time":"0","bid_exchange":78,"bid_price":1,"bid_size":1,"ask_time":"0","ask_exchange":81,"ask_price":2,"ask_size":2},
			{"kind":250,"flags":0,"source":0,"index":"0","event_time":"0"}
		]`)
		Expect(err).NotTo(HaveOccurred())

		_, err = mdfeed.DecodeAllJSON("AAPL", arr.GetArray())
		Expect(err).To(HaveOccurred())
	})
})
