// Copyright (c) 2024-2026 Neomantra Corp

package mdfeed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
)

var _ = Describe("Source", func() {
	It("composes NTV's id as 'N'<<16 | 'T'<<8 | 'V'", func() {
		ntv, err := mdfeed.SourceByName("NTV")
		Expect(err).NotTo(HaveOccurred())
		Expect(ntv.ID()).To(Equal(int32('N')<<16 | int32('T')<<8 | int32('V')))
	})

	It("round-trips source_by_id(source_by_name(n).id).name = n", func() {
		for _, name := range []string{"NTV", "NFX", "ISE", "GLBX", "ARCA", "pink", "iex", "ABCD", "Z"} {
			s, err := mdfeed.SourceByName(name)
			Expect(err).NotTo(HaveOccurred())
			back, err := mdfeed.SourceByID(s.ID())
			Expect(err).NotTo(HaveOccurred())
			Expect(back.Name()).To(Equal(name))
		}
	})

	It("rejects non-alphanumeric or over-length names", func() {
		_, err := mdfeed.SourceByName("TOOLONG")
		Expect(err).To(HaveOccurred())
		_, err = mdfeed.SourceByName("N!")
		Expect(err).To(HaveOccurred())
		_, err = mdfeed.SourceByName("")
		Expect(err).To(HaveOccurred())
	})

	It("reports publish capability per source", func() {
		Expect(mdfeed.NTV.Publishes(mdfeed.EventKind_Order)).To(BeTrue())
		Expect(mdfeed.NTV.HasFullOrderBook()).To(BeTrue())
		Expect(mdfeed.NFX.HasFullOrderBook()).To(BeFalse())
		Expect(mdfeed.ISE.Publishes(mdfeed.EventKind_SpreadOrder)).To(BeTrue())
		Expect(mdfeed.ISE.Publishes(mdfeed.EventKind_AnalyticOrder)).To(BeFalse())
	})

	It("identifies the special source id range 1-9", func() {
		Expect(mdfeed.IsSpecialSourceID(mdfeed.Composite.ID())).To(BeTrue())
		Expect(mdfeed.IsSpecialSourceID(mdfeed.NTV.ID())).To(BeFalse())
		Expect(mdfeed.IsSpecialSourceID(0)).To(BeFalse())
	})

	It("interns user-defined sources consistently", func() {
		a, err := mdfeed.SourceByName("XYZ")
		Expect(err).NotTo(HaveOccurred())
		b, err := mdfeed.SourceByID(a.ID())
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(Equal(a))
	})
})
