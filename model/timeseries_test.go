// Copyright (c) 2024-2026 Neomantra Corp

package model_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
	"github.com/NimbleMarkets/mdfeed-go/model"
)

func newTestTimeAndSale(t time.Time, seq int32, flags mdfeed.EventFlags, price float64) mdfeed.TimeAndSale {
	ts := mdfeed.TimeAndSale{}
	ts.EventSymbol = "AAPL"
	ts.Index = mdfeed.IndexFromMillis(mdfeed.MillisFromTime(t), seq)
	ts.EventFlags = flags
	ts.Price = price
	return ts
}

func asTimeSeries(events ...mdfeed.TimeAndSale) []mdfeed.TimeSeriesEvent {
	out := make([]mdfeed.TimeSeriesEvent, len(events))
	for i, e := range events {
		out[i] = e
	}
	return out
}

var _ = Describe("TimeSeriesModel", func() {
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	It("delivers a descending snapshot as one commit", func() {
		var got []mdfeed.TimeSeriesEvent
		var isSnap bool
		m, err := model.NewTimeSeriesModel(model.TimeSeriesConfig{
			FromTime: base.Add(-time.Hour),
			Listener: func(events []mdfeed.TimeSeriesEvent, isSnapshot bool) {
				got = events
				isSnap = isSnapshot
			},
		})
		Expect(err).NotTo(HaveOccurred())

		e1 := newTestTimeAndSale(base.Add(3*time.Second), 0, mdfeed.SnapshotBegin, 100)
		e2 := newTestTimeAndSale(base.Add(2*time.Second), 0, 0, 99)
		e3 := newTestTimeAndSale(base.Add(1*time.Second), 0, mdfeed.SnapshotEnd, 98)

		m.ProcessEvents(asTimeSeries(e1, e2, e3))

		Expect(isSnap).To(BeTrue())
		Expect(got).To(HaveLen(3))
	})

	It("ends the snapshot at an event preceding from_time, excluding the sentinel", func() {
		var got []mdfeed.TimeSeriesEvent
		commits := 0
		m, err := model.NewTimeSeriesModel(model.TimeSeriesConfig{
			FromTime: base,
			Listener: func(events []mdfeed.TimeSeriesEvent, isSnapshot bool) {
				commits++
				got = events
			},
		})
		Expect(err).NotTo(HaveOccurred())

		e1 := newTestTimeAndSale(base.Add(2*time.Second), 0, mdfeed.SnapshotBegin, 100)
		e2 := newTestTimeAndSale(base.Add(1*time.Second), 0, 0, 99)
		sentinel := newTestTimeAndSale(base.Add(-time.Second), 0, 0, 0)

		m.ProcessEvents(asTimeSeries(e1, e2, sentinel))

		Expect(commits).To(Equal(1))
		Expect(got).To(HaveLen(2))
	})
})
