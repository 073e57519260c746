// Copyright (c) 2024-2026 Neomantra Corp

package mdfeed_test

import (
	"time"

	"github.com/NimbleMarkets/mdfeed-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Helpers", func() {
	Context("packed index", func() {
		It("packs and unpacks a millisecond timestamp and sequence", func() {
			millis := time.Date(2024, 4, 12, 9, 30, 0, 123000000, time.UTC).UnixMilli()
			idx := mdfeed.IndexFromMillis(millis, 42)
			Expect(mdfeed.MillisFromIndex(idx)).To(Equal(millis))
			Expect(mdfeed.SequenceFromIndex(idx)).To(Equal(int32(42)))
		})
		It("agrees on ordering of index with ordering of (time, sequence)", func() {
			base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
			earlier := mdfeed.IndexFromMillis(base, 100)
			later := mdfeed.IndexFromMillis(base+1, 0)
			Expect(earlier < later).To(BeTrue())

			sameMsLow := mdfeed.IndexFromMillis(base, 1)
			sameMsHigh := mdfeed.IndexFromMillis(base, 2)
			Expect(sameMsLow < sameMsHigh).To(BeTrue())
		})
	})
	Context("time conversion", func() {
		It("round-trips through TimeFromMillis/MillisFromTime", func() {
			Expect(mdfeed.MillisFromTime(time.Time{})).To(Equal(int64(0)))
			Expect(mdfeed.TimeFromMillis(0)).To(Equal(time.Time{}))

			t := time.Date(2024, 4, 12, 1, 2, 3, 0, time.UTC)
			Expect(mdfeed.TimeFromMillis(mdfeed.MillisFromTime(t))).To(Equal(t))
		})
	})
})
