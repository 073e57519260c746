// Copyright (c) 2024-2026 Neomantra Corp

package feed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
	"github.com/NimbleMarkets/mdfeed-go/feed"
)

var _ = Describe("LocalFeed", func() {
	It("dispatches only to subscriptions whose kind and symbol match", func() {
		lf := feed.NewLocalFeed()

		sub, err := lf.CreateSubscription(feed.SubscriptionConfig{
			EventKinds: []mdfeed.EventKind{mdfeed.EventKind_Quote},
			Executor:   feed.InlineExecutor{},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(sub.AddSymbols("AAPL")).To(Succeed())
		Expect(lf.Attach(sub)).To(Succeed())

		var got []mdfeed.Event
		_, err = sub.AddEventListener(func(events []mdfeed.Event) { got = events })
		Expect(err).NotTo(HaveOccurred())

		aapl := mdfeed.Quote{}
		aapl.EventSymbol = "AAPL"
		msft := mdfeed.Quote{}
		msft.EventSymbol = "MSFT"
		trade := mdfeed.Trade{}
		trade.EventSymbol = "AAPL"

		Expect(lf.Publish([]mdfeed.Event{aapl, msft, trade})).To(Succeed())

		Expect(got).To(HaveLen(1))
		Expect(got[0].Symbol()).To(Equal("AAPL"))
		Expect(got[0].Kind()).To(Equal(mdfeed.EventKind_Quote))
	})

	It("caches the last event per (kind, symbol)", func() {
		lf := feed.NewLocalFeed()

		q1 := mdfeed.Quote{}
		q1.EventSymbol = "AAPL"
		q1.BidPrice = 100
		q2 := mdfeed.Quote{}
		q2.EventSymbol = "AAPL"
		q2.BidPrice = 101

		_, ok := lf.GetLastEvent(mdfeed.EventKind_Quote, "AAPL")
		Expect(ok).To(BeFalse())

		Expect(lf.Publish([]mdfeed.Event{q1, q2})).To(Succeed())

		last, ok := lf.GetLastEvent(mdfeed.EventKind_Quote, "AAPL")
		Expect(ok).To(BeTrue())
		Expect(last.(mdfeed.Quote).BidPrice).To(Equal(101.0))
	})

	It("detaches a subscription when it is closed", func() {
		lf := feed.NewLocalFeed()
		sub, err := lf.CreateSubscription(feed.SubscriptionConfig{
			EventKinds: []mdfeed.EventKind{mdfeed.EventKind_Quote},
			Executor:   feed.InlineExecutor{},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(sub.AddSymbols("AAPL")).To(Succeed())
		Expect(lf.Attach(sub)).To(Succeed())

		calls := 0
		_, err = sub.AddEventListener(func(events []mdfeed.Event) { calls++ })
		Expect(err).NotTo(HaveOccurred())

		Expect(sub.Close()).To(Succeed())

		q := mdfeed.Quote{}
		q.EventSymbol = "AAPL"
		Expect(lf.Publish([]mdfeed.Event{q})).To(Succeed())

		Expect(calls).To(Equal(0))
	})

	It("rejects Publish after Close", func() {
		lf := feed.NewLocalFeed()
		Expect(lf.Close()).To(Succeed())
		Expect(lf.Publish(nil)).To(MatchError(mdfeed.ErrPublisherClosed))
	})
})
