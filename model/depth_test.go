// Copyright (c) 2024-2026 Neomantra Corp

package model_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
	"github.com/NimbleMarkets/mdfeed-go/model"
)

func newDepthOrder(source mdfeed.Source, index int64, flags mdfeed.EventFlags, side mdfeed.Side, price, size float64) mdfeed.Order {
	o := mdfeed.Order{}
	o.EventSymbol = "AAPL"
	o.Index = index
	o.EventFlags = flags
	o.Side = side
	o.Price = price
	o.Size = size
	o.SetSource(source)
	return o
}

func asOrderLike(orders ...mdfeed.Order) []model.OrderLike {
	out := make([]model.OrderLike, len(orders))
	for i, o := range orders {
		out[i] = o
	}
	return out
}

var _ = Describe("MarketDepthModel", func() {
	ntv, err := mdfeed.SourceByName("NTV")
	if err != nil {
		panic(err)
	}

	It("aggregates by price, sorts and truncates to depth_limit after the aggregation window", func() {
		var buy, sell []model.PriceLevel
		calls := 0

		m, err := model.NewMarketDepthModel(model.DepthConfig{
			Symbol:     "AAPL",
			Source:     ntv,
			DepthLimit: 2,
			AggMillis:  10,
			Listener: func(b, s []model.PriceLevel) {
				calls++
				buy, sell = b, s
			},
		})
		Expect(err).NotTo(HaveOccurred())
		defer m.Close()

		e1 := newDepthOrder(ntv, 1, 0, mdfeed.Side_Buy, 100, 1)
		e2 := newDepthOrder(ntv, 2, 0, mdfeed.Side_Buy, 101, 2)
		e3 := newDepthOrder(ntv, 3, 0, mdfeed.Side_Buy, 99, 5)

		m.ProcessCommit(ntv, asOrderLike(e1, e2, e3), false)
		Expect(calls).To(Equal(0), "must not deliver before the aggregation window elapses")

		Eventually(func() int { return calls }, 200*time.Millisecond, 5*time.Millisecond).Should(Equal(1))

		Expect(buy).To(HaveLen(2))
		Expect(buy[0].Price).To(Equal(101.0))
		Expect(buy[0].Size).To(Equal(2.0))
		Expect(buy[1].Price).To(Equal(100.0))
		Expect(sell).To(BeEmpty())
	})

	It("removes an order by REMOVE_EVENT and decrements the level", func() {
		var buy []model.PriceLevel
		m, err := model.NewMarketDepthModel(model.DepthConfig{
			Symbol: "AAPL",
			Source: ntv,
			Listener: func(b, s []model.PriceLevel) {
				buy = b
			},
		})
		Expect(err).NotTo(HaveOccurred())
		defer m.Close()

		e1 := newDepthOrder(ntv, 1, 0, mdfeed.Side_Buy, 100, 3)
		m.ProcessCommit(ntv, asOrderLike(e1), false)
		Expect(buy).To(HaveLen(1))
		Expect(buy[0].Size).To(Equal(3.0))

		removal := newDepthOrder(ntv, 1, mdfeed.RemoveEvent, mdfeed.Side_Buy, 100, 0)
		m.ProcessCommit(ntv, asOrderLike(removal), false)
		Expect(buy).To(BeEmpty())
	})

	It("aggregates two orders at the same price into one level", func() {
		var buy []model.PriceLevel
		m, err := model.NewMarketDepthModel(model.DepthConfig{
			Symbol: "AAPL",
			Source: ntv,
			Listener: func(b, s []model.PriceLevel) {
				buy = b
			},
		})
		Expect(err).NotTo(HaveOccurred())
		defer m.Close()

		e1 := newDepthOrder(ntv, 1, 0, mdfeed.Side_Buy, 100, 3)
		e2 := newDepthOrder(ntv, 2, 0, mdfeed.Side_Buy, 100, 4)
		m.ProcessCommit(ntv, asOrderLike(e1, e2), false)

		Expect(buy).To(HaveLen(1))
		Expect(buy[0].Size).To(Equal(7.0))
	})
})
