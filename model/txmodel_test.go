// Copyright (c) 2024-2026 Neomantra Corp

package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
	"github.com/NimbleMarkets/mdfeed-go/model"
)

func newTestOrder(source mdfeed.Source, index int64, flags mdfeed.EventFlags, price, size float64) mdfeed.Order {
	o := mdfeed.Order{}
	o.EventSymbol = "AAPL"
	o.Index = index
	o.EventFlags = flags
	o.Price = price
	o.Size = size
	o.SetSource(source)
	return o
}

func asIndexed(orders ...mdfeed.Order) []mdfeed.IndexedEvent {
	out := make([]mdfeed.IndexedEvent, len(orders))
	for i, o := range orders {
		out[i] = o
	}
	return out
}

var _ = Describe("IndexedTxModel", func() {
	ntv, err := mdfeed.SourceByName("NTV")
	if err != nil {
		panic(err)
	}

	It("delivers exactly one commit for a snapshot with a transaction inside", func() {
		var got []mdfeed.IndexedEvent
		var gotSnapshot bool
		commits := 0

		m, err := model.NewIndexedTxModel(model.Config{
			Listener: func(src mdfeed.Source, events []mdfeed.IndexedEvent, isSnapshot bool) {
				commits++
				got = events
				gotSnapshot = isSnapshot
			},
		})
		Expect(err).NotTo(HaveOccurred())

		e1 := newTestOrder(ntv, 5, mdfeed.SnapshotBegin|mdfeed.TxPending, 100, 10)
		e2 := newTestOrder(ntv, 4, mdfeed.TxPending, 99, 5)
		e3 := newTestOrder(ntv, 3, mdfeed.SnapshotEnd, 98, 3)

		m.ProcessEvents(asIndexed(e1, e2, e3))

		Expect(commits).To(Equal(1))
		Expect(gotSnapshot).To(BeTrue())
		Expect(got).To(HaveLen(3))
		Expect(got[0].GetIndex()).To(Equal(e1.GetIndex()))
		Expect(got[1].GetIndex()).To(Equal(e2.GetIndex()))
		Expect(got[2].GetIndex()).To(Equal(e3.GetIndex()))
	})

	It("never delivers a torn transaction, even across a close", func() {
		commits := 0
		m, err := model.NewIndexedTxModel(model.Config{
			Listener: func(src mdfeed.Source, events []mdfeed.IndexedEvent, isSnapshot bool) {
				commits++
			},
		})
		Expect(err).NotTo(HaveOccurred())

		e1 := newTestOrder(ntv, 2, mdfeed.TxPending, 100, 1)
		e2 := newTestOrder(ntv, 1, mdfeed.TxPending, 101, 1)

		m.ProcessEvents(asIndexed(e1, e2))
		Expect(commits).To(Equal(0))

		m.Close()
		m.ProcessEvents(asIndexed(e1, e2))
		Expect(commits).To(Equal(0))
	})

	It("holds commits until a snapshot completes in BatchOnSnapshotOnly mode", func() {
		var batches [][]mdfeed.IndexedEvent
		m, err := model.NewIndexedTxModel(model.Config{
			Mode: model.BatchOnSnapshotOnly,
			Listener: func(src mdfeed.Source, events []mdfeed.IndexedEvent, isSnapshot bool) {
				batches = append(batches, events)
			},
		})
		Expect(err).NotTo(HaveOccurred())

		e1 := newTestOrder(ntv, 3, mdfeed.SnapshotBegin, 100, 1)
		e2 := newTestOrder(ntv, 2, 0, 101, 1)
		e3 := newTestOrder(ntv, 1, mdfeed.SnapshotEnd, 102, 1)

		m.ProcessEvents(asIndexed(e1))
		Expect(batches).To(BeEmpty())
		m.ProcessEvents(asIndexed(e2))
		Expect(batches).To(BeEmpty())
		m.ProcessEvents(asIndexed(e3))
		Expect(batches).To(HaveLen(1))
		Expect(batches[0]).To(HaveLen(3))
	})

	It("groups events by source within one ProcessEvents call", func() {
		nfx, err := mdfeed.SourceByName("NFX")
		Expect(err).NotTo(HaveOccurred())

		seenSources := map[int32]int{}
		m, err := model.NewIndexedTxModel(model.Config{
			Listener: func(src mdfeed.Source, events []mdfeed.IndexedEvent, isSnapshot bool) {
				seenSources[src.ID()] = len(events)
			},
		})
		Expect(err).NotTo(HaveOccurred())

		a := newTestOrder(ntv, 1, mdfeed.SnapshotBegin|mdfeed.SnapshotEnd, 10, 1)
		b := newTestOrder(nfx, 1, mdfeed.SnapshotBegin|mdfeed.SnapshotEnd, 20, 2)

		m.ProcessEvents(asIndexed(a, b))

		Expect(seenSources).To(HaveLen(2))
		Expect(seenSources[ntv.ID()]).To(Equal(1))
		Expect(seenSources[nfx.ID()]).To(Equal(1))
	})

	It("recovers a Series event's real source instead of falling back to DefaultSource", func() {
		nfx, err := mdfeed.SourceByName("NFX")
		Expect(err).NotTo(HaveOccurred())

		var gotSource mdfeed.Source
		m, err := model.NewIndexedTxModel(model.Config{
			Listener: func(src mdfeed.Source, events []mdfeed.IndexedEvent, isSnapshot bool) {
				gotSource = src
			},
		})
		Expect(err).NotTo(HaveOccurred())

		s := mdfeed.Series{}
		s.EventSymbol = "AAPL"
		s.EventFlags = mdfeed.SnapshotBegin | mdfeed.SnapshotEnd
		s.SetSource(nfx)

		m.ProcessEvents([]mdfeed.IndexedEvent{s})

		Expect(gotSource.ID()).To(Equal(nfx.ID()))
	})
})
