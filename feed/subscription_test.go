// Copyright (c) 2024-2026 Neomantra Corp

package feed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
	"github.com/NimbleMarkets/mdfeed-go/feed"
)

func mustSub(exec feed.Executor, kinds ...mdfeed.EventKind) *feed.Subscription {
	sub, err := feed.NewSubscription(feed.SubscriptionConfig{EventKinds: kinds, Executor: exec})
	Expect(err).NotTo(HaveOccurred())
	return sub
}

var _ = Describe("Subscription", func() {
	It("dispatches to every attached listener via its executor", func() {
		exec := feed.NewInPlaceExecutor()
		sub := mustSub(exec, mdfeed.EventKind_Quote)
		Expect(sub.AddSymbols("AAPL")).To(Succeed())

		var got []mdfeed.Event
		_, err := sub.AddEventListener(func(events []mdfeed.Event) { got = events })
		Expect(err).NotTo(HaveOccurred())

		q := mdfeed.Quote{}
		q.EventSymbol = "AAPL"
		sub.Dispatch([]mdfeed.Event{q})

		Expect(got).To(BeEmpty(), "InPlaceExecutor must defer delivery")
		exec.ProcessAllPendingTasks()
		Expect(got).To(HaveLen(1))
	})

	It("never invokes a listener after Close returns", func() {
		exec := feed.NewInPlaceExecutor()
		sub := mustSub(exec, mdfeed.EventKind_Quote)

		calls := 0
		_, err := sub.AddEventListener(func(events []mdfeed.Event) { calls++ })
		Expect(err).NotTo(HaveOccurred())

		Expect(sub.Close()).To(Succeed())
		Expect(sub.IsClosed()).To(BeTrue())

		q := mdfeed.Quote{}
		sub.Dispatch([]mdfeed.Event{q})
		exec.ProcessAllPendingTasks()

		Expect(calls).To(Equal(0))
	})

	It("is idempotent under repeated Close", func() {
		sub := mustSub(feed.InlineExecutor{}, mdfeed.EventKind_Quote)
		Expect(sub.Close()).To(Succeed())
		Expect(sub.Close()).To(Succeed())
	})

	It("rejects symbol mutation after Close", func() {
		sub := mustSub(feed.InlineExecutor{}, mdfeed.EventKind_Quote)
		Expect(sub.Close()).To(Succeed())
		Expect(sub.AddSymbols("MSFT")).To(MatchError(mdfeed.ErrSubscriptionClosed))
	})

	It("notifies observers of symbol changes and close", func() {
		sub := mustSub(feed.InlineExecutor{}, mdfeed.EventKind_Quote)
		rec := &recordingObserver{}
		_, err := sub.AddObservableListener(rec)
		Expect(err).NotTo(HaveOccurred())

		Expect(sub.AddSymbols("AAPL", "MSFT")).To(Succeed())
		Expect(sub.RemoveSymbols("MSFT")).To(Succeed())
		Expect(sub.Close()).To(Succeed())

		Expect(rec.added).To(HaveLen(1))
		Expect(rec.added[0]).To(ConsistOf("AAPL", "MSFT"))
		Expect(rec.removed).To(HaveLen(1))
		Expect(rec.removed[0]).To(ConsistOf("MSFT"))
		Expect(rec.closed).To(BeTrue())
	})
})

type recordingObserver struct {
	added   [][]string
	removed [][]string
	closed  bool
}

func (r *recordingObserver) SymbolsAdded(symbols []string)   { r.added = append(r.added, symbols) }
func (r *recordingObserver) SymbolsRemoved(symbols []string) { r.removed = append(r.removed, symbols) }
func (r *recordingObserver) SubscriptionClosed()             { r.closed = true }
