// Copyright (c) 2024-2026 Neomantra Corp

package feed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/NimbleMarkets/mdfeed-go/feed"
)

var _ = Describe("InPlaceExecutor", func() {
	It("defers submitted tasks until ProcessAllPendingTasks is called", func() {
		e := feed.NewInPlaceExecutor()
		ran := 0
		e.Submit(func() { ran++ })
		e.Submit(func() { ran++ })

		Expect(e.PendingCount()).To(Equal(2))
		Expect(ran).To(Equal(0))

		n := e.ProcessAllPendingTasks()
		Expect(n).To(Equal(2))
		Expect(ran).To(Equal(2))
		Expect(e.PendingCount()).To(Equal(0))
	})

	It("drains tasks submitted by a task while draining", func() {
		e := feed.NewInPlaceExecutor()
		order := []int{}
		e.Submit(func() {
			order = append(order, 1)
			e.Submit(func() { order = append(order, 2) })
		})

		n := e.ProcessAllPendingTasks()
		Expect(n).To(Equal(2))
		Expect(order).To(Equal([]int{1, 2}))
	})
})

var _ = Describe("InlineExecutor", func() {
	It("runs tasks synchronously on Submit", func() {
		var e feed.InlineExecutor
		ran := false
		e.Submit(func() { ran = true })
		Expect(ran).To(BeTrue())
	})
})
