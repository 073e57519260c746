// Copyright (c) 2024-2026 Neomantra Corp

package mdfeed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
)

var _ = Describe("Candle", func() {
	It("parses its own event symbol as a CandleSymbol", func() {
		c := mdfeed.Candle{}
		c.EventSymbol = "IBM{=5m}"
		cs, err := c.CandleSymbol()
		Expect(err).NotTo(HaveOccurred())
		Expect(cs.BaseSymbol).To(Equal("IBM"))
		Expect(cs.PeriodValue).To(Equal(5))
		Expect(cs.PeriodType).To(Equal(mdfeed.CandleType_Minute))
	})

	It("satisfies the TimeSeriesEvent capability", func() {
		var ts mdfeed.TimeSeriesEvent = mdfeed.Candle{}
		Expect(ts.Kind()).To(Equal(mdfeed.EventKind_Candle))
	})
})

var _ = Describe("Event kinds", func() {
	It("names every kind through its String()", func() {
		for k := mdfeed.EventKind_Quote; k <= mdfeed.EventKind_OptionSale; k++ {
			Expect(k.String()).NotTo(Equal("Unknown"))
		}
	})
})

var _ = Describe("OrderBase family", func() {
	It("exposes depth-engine accessors distinct from the underlying fields", func() {
		o := mdfeed.Order{}
		o.Price = 10
		o.Size = 2
		o.Side = mdfeed.Side_Sell
		Expect(o.GetPrice()).To(Equal(10.0))
		Expect(o.GetSize()).To(Equal(2.0))
		Expect(o.GetSide()).To(Equal(mdfeed.Side_Sell))
	})
})
