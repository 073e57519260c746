// Copyright (c) 2024-2026 Neomantra Corp

package mdfeed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
)

var _ = Describe("CandleSymbol", func() {
	It("normalizes attribute order per the spec grammar", func() {
		cs, err := mdfeed.ParseCandleSymbol("IBM{a=s,=5m,price=bid,tho=true}")
		Expect(err).NotTo(HaveOccurred())
		Expect(cs.String()).To(Equal("IBM{=5m,a=s,price=bid,tho=true}"))
	})

	It("satisfies parse(normalize(s)) = parse(s)", func() {
		for _, s := range []string{
			"IBM",
			"IBM&Q",
			"IBM{=5m}",
			"IBM{a=s,=5m,price=bid,tho=true}",
			"AAPL{price=mark,pl=0.5}",
		} {
			norm, err := mdfeed.NormalizeCandleSymbol(s)
			Expect(err).NotTo(HaveOccurred())

			want, err := mdfeed.ParseCandleSymbol(s)
			Expect(err).NotTo(HaveOccurred())
			got, err := mdfeed.ParseCandleSymbol(norm)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		}
	})

	It("satisfies normalize(normalize(s)) = normalize(s)", func() {
		s := "IBM{a=s,=5m,price=bid,tho=true}"
		once, err := mdfeed.NormalizeCandleSymbol(s)
		Expect(err).NotTo(HaveOccurred())
		twice, err := mdfeed.NormalizeCandleSymbol(once)
		Expect(err).NotTo(HaveOccurred())
		Expect(twice).To(Equal(once))
	})

	It("defaults period to 1 tick and omits default attributes", func() {
		cs, err := mdfeed.ParseCandleSymbol("IBM")
		Expect(err).NotTo(HaveOccurred())
		Expect(cs.PeriodValue).To(Equal(1))
		Expect(cs.PeriodType).To(Equal(mdfeed.CandleType_Tick))
		Expect(cs.String()).To(Equal("IBM"))
	})

	It("parses the year period unit", func() {
		cs, err := mdfeed.ParseCandleSymbol("IBM{=2y}")
		Expect(err).NotTo(HaveOccurred())
		Expect(cs.PeriodValue).To(Equal(2))
		Expect(cs.PeriodType).To(Equal(mdfeed.CandleType_Year))
	})

	It("rejects an unterminated attribute list", func() {
		_, err := mdfeed.ParseCandleSymbol("IBM{a=s")
		Expect(err).To(HaveOccurred())
	})

	It("rejects an empty base symbol", func() {
		_, err := mdfeed.ParseCandleSymbol("&Q")
		Expect(err).To(HaveOccurred())
	})
})
