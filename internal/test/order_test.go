package test_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/DrGermanius/Reconciler/internal"
	"github.com/DrGermanius/Reconciler/internal/model"
)

var _ = Describe("Order state machine", func() {
	const id = "3f1c9a52-7d1e-4b7a-9c55-0d2f6a8b1e01"

	Context("ApplyPaymentConfirmed", func() {
		It("confirms a pending unpaid order", func() {
			o := newOrder(id, "1001", internal.StateInitial)

			next, changed, err := internal.ApplyPaymentConfirmed(o)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(changed).Should(BeTrue())
			Expect(next.State()).Should(Equal(internal.StateConfirmed))
			Expect(o.State()).Should(Equal(internal.StateInitial))
		})
		It("confirms a paid order still processing", func() {
			o := newOrder(id, "1001", model.State{Status: model.StatusProcessing, Payment: model.PaymentPaid})

			next, changed, err := internal.ApplyPaymentConfirmed(o)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(changed).Should(BeTrue())
			Expect(next.State()).Should(Equal(internal.StateConfirmed))
		})
		It("leaves a confirmed order alone", func() {
			o := newOrder(id, "1001", internal.StateConfirmed)

			next, changed, err := internal.ApplyPaymentConfirmed(o)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(changed).Should(BeFalse())
			Expect(next).Should(Equal(o))
		})
		It("is idempotent", func() {
			o := newOrder(id, "1001", internal.StateInitial)

			once, _, err := internal.ApplyPaymentConfirmed(o)
			Expect(err).ShouldNot(HaveOccurred())
			twice, changed, err := internal.ApplyPaymentConfirmed(once)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(changed).Should(BeFalse())
			Expect(twice.State()).Should(Equal(once.State()))
		})
		DescribeTable("never overrides a terminal state",
			func(s model.State) {
				o := newOrder(id, "1001", s)

				next, changed, err := internal.ApplyPaymentConfirmed(o)
				Expect(err).Should(HaveOccurred())
				Expect(errors.Is(err, internal.ErrTerminalConflict)).Should(BeTrue())

				var conflict *internal.TerminalConflictError
				Expect(errors.As(err, &conflict)).Should(BeTrue())
				Expect(conflict.State).Should(Equal(s))
				Expect(conflict.OrderID).Should(Equal(id))

				Expect(changed).Should(BeFalse())
				Expect(next.State()).Should(Equal(s))
			},
			Entry("cancelled before payment", model.State{Status: model.StatusCancelled, Payment: model.PaymentUnpaid}),
			Entry("cancelled after payment", model.State{Status: model.StatusCancelled, Payment: model.PaymentPaid}),
			Entry("refunded", model.State{Status: model.StatusRefunded, Payment: model.PaymentRefunded}),
		)
	})
	Context("IsLegalState", func() {
		It("accepts exactly the six persisted pairs", func() {
			statuses := []model.Status{model.StatusPending, model.StatusProcessing, model.StatusConfirmed, model.StatusCancelled, model.StatusRefunded}
			payments := []model.PaymentStatus{model.PaymentUnpaid, model.PaymentPaid, model.PaymentRefunded}

			legal := 0
			for _, s := range statuses {
				for _, p := range payments {
					if internal.IsLegalState(model.State{Status: s, Payment: p}) {
						legal++
					}
				}
			}
			Expect(legal).Should(Equal(6))
		})
		It("rejects a confirmed order without payment", func() {
			Expect(internal.IsLegalState(model.State{Status: model.StatusConfirmed, Payment: model.PaymentUnpaid})).Should(BeFalse())
			Expect(internal.IsLegalState(model.State{Status: model.StatusPending, Payment: model.PaymentPaid})).Should(BeFalse())
		})
	})
})
