package test_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/mock/gomock"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/DrGermanius/Reconciler/internal"
	mock_internal "github.com/DrGermanius/Reconciler/internal/mock"
	"github.com/DrGermanius/Reconciler/internal/model"
	"github.com/DrGermanius/Reconciler/internal/retry"
)

const orderID = "0b7e3c1a-6a0e-4b43-9a52-0f3c1d2e4a11"

func newTestEngine(slept *[]time.Duration, mu *sync.Mutex) *retry.Engine {
	return retry.New(
		retry.Policy{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: time.Minute, Jitter: 0.2},
		retry.WithRandom(func() float64 { return 0.5 }),
		retry.WithSleep(func(_ context.Context, d time.Duration) error {
			mu.Lock()
			defer mu.Unlock()
			*slept = append(*slept, d)
			return nil
		}),
	)
}

func confirmation(ids model.Identifiers) model.Notification {
	return model.Notification{
		Identifiers:  ids,
		TargetStatus: "CONFIRMED",
		EventType:    internal.EventPaymentConfirmed,
		Source:       internal.SourceWebhook,
		Payload:      map[string]string{"orderNumber": ids.OrderNumber, "paymentReference": ids.PaymentReference},
	}
}

var _ = Describe("Service", func() {
	var (
		ctrl   *gomock.Controller
		repo   *internal.MemoryRepository
		acc    *mock_internal.MockIAccounting
		wh     *mock_internal.MockIWarehouse
		srv    internal.IService
		ctx    context.Context
		caps   internal.Capabilities
		probes int32
		slept  []time.Duration
		mu     sync.Mutex

		n model.Notification
	)

	expectAccounting := func(ref string) {
		acc.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ao model.AccountingOrder) (string, error) {
			Expect(ao.OrderNumber).Should(Equal("1001"))
			Expect(ao.LineItems).Should(HaveLen(2))
			return ref, nil
		})
	}
	expectWarehouse := func() {
		wh.EXPECT().CreateOrUpdateArticle(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		wh.EXPECT().CreateFulfillment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f model.FulfillmentOrder) error {
			Expect(f.OrderNumber).Should(Equal("1001"))
			Expect(f.Lines).Should(HaveLen(2))
			return nil
		})
	}
	attemptsOf := func(t model.Target) []model.SyncAttempt {
		all, err := repo.GetSyncAttempts(ctx, orderID)
		if errors.Is(err, internal.ErrNoRecords) {
			return nil
		}
		Expect(err).ShouldNot(HaveOccurred())

		var out []model.SyncAttempt
		for _, a := range all {
			if a.Target == t {
				out = append(out, a)
			}
		}
		return out
	}
	stored := func() model.Order {
		o, err := repo.GetOrderByID(ctx, orderID)
		Expect(err).ShouldNot(HaveOccurred())
		return o
	}
	seed := func(s model.State) {
		o := newOrder(orderID, "1001", s)
		o.PaymentReference = "pay_abc"
		Expect(repo.AddOrder(o, newItems()...)).Should(Succeed())
	}

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		repo = internal.NewMemoryRepository()
		acc = mock_internal.NewMockIAccounting(ctrl)
		wh = mock_internal.NewMockIWarehouse(ctrl)
		ctx = context.Background()
		caps = internal.Capabilities{Accounting: true, Warehouse: true}
		atomic.StoreInt32(&probes, 0)
		slept = nil

		logger := newLogger()
		clock := internal.NewFixedClock(now)
		downstream := internal.Downstream{
			Accounting: acc,
			Warehouse:  wh,
			Probe: func() internal.Capabilities {
				atomic.AddInt32(&probes, 1)
				return caps
			},
		}
		audit := internal.NewAuditLog(repo, logger, clock, internal.DefaultMaxPayloadBytes)
		srv = internal.NewService(repo, downstream, newTestEngine(&slept, &mu), audit, clock, logger)

		n = confirmation(model.Identifiers{OrderNumber: "1001", PaymentReference: "pay_abc"})
	})
	AfterEach(func() {
		ctrl.Finish()
	})
	Context("HandleNotification", func() {
		It("confirms a pending order and syncs every configured target", func() {
			seed(internal.StateInitial)
			expectAccounting("ACC-1")
			expectWarehouse()

			res := srv.HandleNotification(ctx, n)
			Expect(res.Success).Should(BeTrue())
			Expect(res.Outcome).Should(Equal(model.OutcomeConfirmed))
			Expect(res.OrderID).Should(Equal(orderID))
			Expect(res.DownstreamReference).Should(Equal("ACC-1"))
			Expect(res.ReconciliationRequired).Should(BeFalse())

			o := stored()
			Expect(o.State()).Should(Equal(internal.StateConfirmed))
			Expect(o.AccountingReference).Should(Equal("ACC-1"))
			Expect(o.Synced(model.TargetAccounting)).Should(BeTrue())
			Expect(o.Synced(model.TargetWarehouse)).Should(BeTrue())

			Expect(attemptsOf(model.TargetAccounting)).Should(HaveLen(1))
			Expect(attemptsOf(model.TargetWarehouse)).Should(HaveLen(1))
			Expect(attemptsOf(model.TargetAccounting)[0].Outcome).Should(Equal(model.AttemptSuccess))
			Expect(attemptsOf(model.TargetAccounting)[0].Operation).Should(Equal("submitOrder"))
			Expect(attemptsOf(model.TargetWarehouse)[0].Operation).Should(Equal("createFulfillment"))

			Expect(atomic.LoadInt32(&probes)).Should(Equal(int32(1)))

			events := repo.Events()
			Expect(events).Should(HaveLen(1))
			Expect(events[0].Status).Should(Equal("confirmed"))
			Expect(events[0].Result).Should(Equal(model.ResultSuccess))
			Expect(events[0].OrderID).Should(Equal(orderID))
			Expect(events[0].Metadata).Should(HaveKey("episodeId"))
			Expect(events[0].Metadata).Should(HaveKeyWithValue("accounting", "synced"))
		})
		It("treats a redelivered notification as a no-op", func() {
			seed(internal.StateInitial)
			expectAccounting("ACC-1")
			expectWarehouse()

			first := srv.HandleNotification(ctx, n)
			Expect(first.Success).Should(BeTrue())
			before := stored()

			second := srv.HandleNotification(ctx, n)
			Expect(second.Success).Should(BeTrue())
			Expect(second.Outcome).Should(Equal(model.OutcomeAlreadyConfirmed))
			Expect(second.DownstreamReference).Should(Equal("ACC-1"))
			Expect(second.Targets).Should(BeEmpty())

			Expect(stored()).Should(Equal(before))
			Expect(attemptsOf(model.TargetAccounting)).Should(HaveLen(1))
			Expect(attemptsOf(model.TargetWarehouse)).Should(HaveLen(1))
			Expect(repo.Events()).Should(HaveLen(2))
		})
		It("refuses to confirm a refunded order", func() {
			refunded := model.State{Status: model.StatusRefunded, Payment: model.PaymentRefunded}
			seed(refunded)

			res := srv.HandleNotification(ctx, n)
			Expect(res.Success).Should(BeFalse())
			Expect(res.Retryable).Should(BeFalse())
			Expect(res.Outcome).Should(Equal(model.OutcomeTerminalConflict))
			Expect(res.Class()).Should(Equal(model.ResultPermanentFailure))

			Expect(stored().State()).Should(Equal(refunded))
			Expect(attemptsOf(model.TargetAccounting)).Should(BeEmpty())

			events := repo.Events()
			Expect(events).Should(HaveLen(1))
			Expect(events[0].Result).Should(Equal(model.ResultPermanentFailure))
		})
		It("refuses to confirm a cancelled order", func() {
			cancelled := model.State{Status: model.StatusCancelled, Payment: model.PaymentPaid}
			seed(cancelled)

			res := srv.HandleNotification(ctx, n)
			Expect(res.Outcome).Should(Equal(model.OutcomeTerminalConflict))
			Expect(stored().State()).Should(Equal(cancelled))
		})
		It("flags the order when accounting keeps failing", func() {
			seed(internal.StateInitial)
			acc.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).
				Return("", &retry.StatusError{Code: 503}).Times(3)
			expectWarehouse()

			res := srv.HandleNotification(ctx, n)
			Expect(res.Success).Should(BeTrue())
			Expect(res.ReconciliationRequired).Should(BeTrue())
			Expect(res.Targets).Should(HaveLen(2))
			Expect(res.Targets[0].Target).Should(Equal(model.TargetAccounting))
			Expect(res.Targets[0].Status).Should(Equal(model.TargetFailed))
			Expect(res.Targets[0].Attempts).Should(Equal(3))
			Expect(res.Targets[0].Retryable).Should(BeTrue())
			Expect(res.Targets[1].Status).Should(Equal(model.TargetSynced))

			o := stored()
			Expect(o.State()).Should(Equal(internal.StateConfirmed))
			Expect(o.AccountingNeedsReview).Should(BeTrue())
			Expect(o.Synced(model.TargetAccounting)).Should(BeFalse())
			Expect(o.Notes).Should(ContainSubstring("accounting sync failed after 3 attempt(s)"))

			attempts := attemptsOf(model.TargetAccounting)
			Expect(attempts).Should(HaveLen(3))
			for i, a := range attempts {
				Expect(a.Attempt).Should(Equal(i + 1))
				Expect(a.Outcome).Should(Equal(model.AttemptRetryableFailure))
				Expect(a.EpisodeID).Should(Equal(attempts[0].EpisodeID))
			}
			Expect(attempts[0].Delay).Should(BeZero())
			Expect(attempts[1].Delay).Should(Equal(time.Second))
			Expect(attempts[2].Delay).Should(Equal(2 * time.Second))
			Expect(slept).Should(Equal([]time.Duration{time.Second, 2 * time.Second}))

			events := repo.Events()
			Expect(events).Should(HaveLen(1))
			Expect(events[0].Metadata).Should(HaveKeyWithValue("reconciliationRequired", "true"))
			Expect(events[0].Metadata).Should(HaveKeyWithValue("accountingAttempts", "3"))
		})
		It("stops at the first permanent downstream failure", func() {
			seed(internal.StateInitial)
			acc.EXPECT().SubmitOrder(gomock.Any(), gomock.Any()).
				Return("", &retry.StatusError{Code: 422, Body: "invalid customer"})
			expectWarehouse()

			res := srv.HandleNotification(ctx, n)
			Expect(res.Success).Should(BeTrue())
			Expect(res.ReconciliationRequired).Should(BeTrue())
			Expect(res.Targets[0].Retryable).Should(BeFalse())

			attempts := attemptsOf(model.TargetAccounting)
			Expect(attempts).Should(HaveLen(1))
			Expect(attempts[0].Outcome).Should(Equal(model.AttemptPermanentFailure))
			Expect(attempts[0].Error).Should(ContainSubstring("invalid customer"))
		})
		It("confirms without downstream calls when nothing is configured", func() {
			caps = internal.Capabilities{}
			seed(internal.StateInitial)

			res := srv.HandleNotification(ctx, n)
			Expect(res.Success).Should(BeTrue())
			Expect(res.Outcome).Should(Equal(model.OutcomeConfirmed))
			Expect(res.ReconciliationRequired).Should(BeFalse())
			Expect(res.Targets).Should(ConsistOf(
				model.TargetResult{Target: model.TargetAccounting, Status: model.TargetSkipped},
				model.TargetResult{Target: model.TargetWarehouse, Status: model.TargetSkipped},
			))

			Expect(stored().State()).Should(Equal(internal.StateConfirmed))
			Expect(attemptsOf(model.TargetAccounting)).Should(BeEmpty())
			Expect(attemptsOf(model.TargetWarehouse)).Should(BeEmpty())
		})
		It("skips only the unconfigured target", func() {
			caps = internal.Capabilities{Accounting: true}
			seed(internal.StateInitial)
			expectAccounting("ACC-9")

			res := srv.HandleNotification(ctx, n)
			Expect(res.Success).Should(BeTrue())
			Expect(res.DownstreamReference).Should(Equal("ACC-9"))
			Expect(res.Targets[1].Status).Should(Equal(model.TargetSkipped))
			Expect(stored().Synced(model.TargetWarehouse)).Should(BeFalse())
		})
		It("reports unknown orders as not found", func() {
			seed(internal.StateInitial)

			res := srv.HandleNotification(ctx, confirmation(model.Identifiers{OrderNumber: "9999"}))
			Expect(res.Success).Should(BeFalse())
			Expect(res.Retryable).Should(BeFalse())
			Expect(res.Outcome).Should(Equal(model.OutcomeNotFound))

			events := repo.Events()
			Expect(events).Should(HaveLen(1))
			Expect(events[0].OrderID).Should(BeEmpty())
			Expect(events[0].Status).Should(Equal("not_found"))
		})
		It("rejects notifications without identifiers", func() {
			res := srv.HandleNotification(ctx, confirmation(model.Identifiers{}))
			Expect(res.Outcome).Should(Equal(model.OutcomeInvalid))
			Expect(res.Retryable).Should(BeFalse())
			Expect(atomic.LoadInt32(&probes)).Should(Equal(int32(1)))
		})
		It("audits a body that could not be decoded", func() {
			res := srv.HandleNotification(ctx, model.Notification{
				Source:      internal.SourceWebhook,
				Payload:     json.RawMessage(`{"note":"card 4111111111111111","orderNumber":`),
				DecodeError: "unexpected end of JSON input",
			})
			Expect(res.Success).Should(BeFalse())
			Expect(res.Outcome).Should(Equal(model.OutcomeInvalid))
			Expect(res.Retryable).Should(BeFalse())
			Expect(res.Error).Should(ContainSubstring(internal.ErrMalformedBody.Error()))

			events := repo.Events()
			Expect(events).Should(HaveLen(1))
			Expect(events[0].Status).Should(Equal(string(model.OutcomeInvalid)))
			Expect(events[0].Result).Should(Equal(model.ResultPermanentFailure))
			Expect(events[0].Source).Should(Equal(internal.SourceWebhook))
			Expect(events[0].Payload).ShouldNot(ContainSubstring("4111"))
			Expect(events[0].Payload).Should(ContainSubstring(internal.RedactedMask))
		})
		It("rejects unsupported target statuses", func() {
			seed(internal.StateInitial)
			n.TargetStatus = "REFUNDED"

			res := srv.HandleNotification(ctx, n)
			Expect(res.Outcome).Should(Equal(model.OutcomeInvalid))
			Expect(stored().State()).Should(Equal(internal.StateInitial))
		})
		It("accepts the payment status as target", func() {
			seed(internal.StateInitial)
			caps = internal.Capabilities{}
			n.TargetStatus = "paid"

			res := srv.HandleNotification(ctx, n)
			Expect(res.Outcome).Should(Equal(model.OutcomeConfirmed))
		})
		It("syncs once under concurrent duplicates", func() {
			seed(internal.StateInitial)
			expectAccounting("ACC-1")
			expectWarehouse()

			var (
				wg      sync.WaitGroup
				resMu   sync.Mutex
				results []model.WebhookProcessingResult
			)
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					res := srv.HandleNotification(ctx, n)
					resMu.Lock()
					results = append(results, res)
					resMu.Unlock()
				}()
			}
			wg.Wait()

			confirmed := 0
			for _, r := range results {
				Expect(r.Success).Should(BeTrue())
				if r.Outcome == model.OutcomeConfirmed {
					confirmed++
				}
			}
			Expect(confirmed).Should(Equal(1))
			Expect(attemptsOf(model.TargetAccounting)).Should(HaveLen(1))
			Expect(attemptsOf(model.TargetWarehouse)).Should(HaveLen(1))
			Expect(repo.Events()).Should(HaveLen(16))
		})
	})
	Context("Reconcile", func() {
		It("retries only targets that are not yet synced", func() {
			seed(internal.StateConfirmed)
			Expect(repo.MarkSynced(ctx, orderID, model.TargetAccounting, "ACC-1", now)).Should(Succeed())
			expectWarehouse()

			results := srv.ReconcileOrders(ctx, []string{orderID})
			Expect(results).Should(HaveLen(1))
			Expect(results[0].Success).Should(BeTrue())
			Expect(results[0].Outcome).Should(Equal(model.OutcomeAlreadyConfirmed))
			Expect(results[0].DownstreamReference).Should(Equal("ACC-1"))
			Expect(results[0].Targets[0].Status).Should(Equal(model.TargetAlreadySynced))
			Expect(results[0].Targets[1].Status).Should(Equal(model.TargetSynced))

			Expect(attemptsOf(model.TargetAccounting)).Should(BeEmpty())
			Expect(stored().Synced(model.TargetWarehouse)).Should(BeTrue())

			events := repo.Events()
			Expect(events).Should(HaveLen(1))
			Expect(events[0].EventType).Should(Equal(internal.EventAdminReconcile))
			Expect(events[0].Source).Should(Equal(internal.SourceAdmin))
		})
		It("picks up pending orders", func() {
			seed(model.State{Status: model.StatusProcessing, Payment: model.PaymentPaid})
			caps = internal.Capabilities{}

			results, err := srv.ReconcilePending(ctx, 10)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(results).Should(HaveLen(1))
			Expect(results[0].Outcome).Should(Equal(model.OutcomeConfirmed))
			Expect(stored().State()).Should(Equal(internal.StateConfirmed))
		})
	})
})

var _ = Describe("Service with a failing store", func() {
	var (
		ctrl *gomock.Controller
		rep  *mock_internal.MockIRepository
		srv  *internal.Service
		ctx  context.Context
		o    model.Order
	)
	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		rep = mock_internal.NewMockIRepository(ctrl)
		ctx = context.Background()
		o = newOrder(orderID, "1001", internal.StateInitial)

		logger := newLogger()
		clock := internal.NewFixedClock(now)
		audit := internal.NewAuditLog(rep, logger, clock, 0)
		srv = internal.NewService(rep, internal.Downstream{}, retry.New(retry.DefaultPolicy()), audit, clock, logger)
	})
	AfterEach(func() {
		ctrl.Finish()
	})
	It("reports a store outage as retryable", func() {
		rep.EXPECT().GetOrderByNumber(gomock.Any(), "1001").Return(model.Order{}, errors.New("connection refused"))
		rep.EXPECT().AddWebhookEvent(gomock.Any(), gomock.Any()).Return(nil)

		res := srv.HandleNotification(ctx, confirmation(model.Identifiers{OrderNumber: "1001"}))
		Expect(res.Success).Should(BeFalse())
		Expect(res.Retryable).Should(BeTrue())
		Expect(res.Outcome).Should(Equal(model.OutcomeStoreFailure))
		Expect(res.Class()).Should(Equal(model.ResultRetryableFailure))
	})
	It("re-reads the order after losing the conditional write", func() {
		confirmed := o.WithState(internal.StateConfirmed)
		gomock.InOrder(
			rep.EXPECT().GetOrderByNumber(gomock.Any(), "1001").Return(o, nil),
			rep.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(o, nil),
			rep.EXPECT().UpdateOrderState(gomock.Any(), orderID, internal.StateInitial, internal.StateConfirmed, now).Return(false, nil),
			rep.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(confirmed, nil),
			rep.EXPECT().AddWebhookEvent(gomock.Any(), gomock.Any()).Return(nil),
		)

		res := srv.HandleNotification(ctx, confirmation(model.Identifiers{OrderNumber: "1001"}))
		Expect(res.Success).Should(BeTrue())
		Expect(res.Outcome).Should(Equal(model.OutcomeAlreadyConfirmed))
	})
	It("gives up when the order keeps changing", func() {
		rep.EXPECT().GetOrderByNumber(gomock.Any(), "1001").Return(o, nil)
		rep.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(o, nil).Times(4)
		rep.EXPECT().UpdateOrderState(gomock.Any(), orderID, internal.StateInitial, internal.StateConfirmed, now).Return(false, nil).Times(3)
		rep.EXPECT().AddWebhookEvent(gomock.Any(), gomock.Any()).Return(nil)

		res := srv.HandleNotification(ctx, confirmation(model.Identifiers{OrderNumber: "1001"}))
		Expect(res.Success).Should(BeFalse())
		Expect(res.Retryable).Should(BeTrue())
		Expect(res.Error).Should(ContainSubstring(internal.ErrConcurrentUpdate.Error()))
	})
	It("keeps the resolved order when the re-read fails", func() {
		rep.EXPECT().GetOrderByNumber(gomock.Any(), "1001").Return(o, nil)
		rep.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(model.Order{}, errors.New("connection reset"))
		rep.EXPECT().AddWebhookEvent(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e model.WebhookEvent) error {
			Expect(e.OrderID).Should(Equal(orderID))
			return nil
		})

		res := srv.HandleNotification(ctx, confirmation(model.Identifiers{OrderNumber: "1001"}))
		Expect(res.Outcome).Should(Equal(model.OutcomeStoreFailure))
		Expect(res.Retryable).Should(BeTrue())
		Expect(res.OrderID).Should(Equal(orderID))
		Expect(res.OrderNumber).Should(Equal("1001"))
	})
	It("keeps the resolved order when a re-read after a lost write fails", func() {
		gomock.InOrder(
			rep.EXPECT().GetOrderByNumber(gomock.Any(), "1001").Return(o, nil),
			rep.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(o, nil),
			rep.EXPECT().UpdateOrderState(gomock.Any(), orderID, internal.StateInitial, internal.StateConfirmed, now).Return(false, nil),
			rep.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(model.Order{}, errors.New("connection reset")),
			rep.EXPECT().AddWebhookEvent(gomock.Any(), gomock.Any()).Return(nil),
		)

		res := srv.HandleNotification(ctx, confirmation(model.Identifiers{OrderNumber: "1001"}))
		Expect(res.Outcome).Should(Equal(model.OutcomeStoreFailure))
		Expect(res.OrderID).Should(Equal(orderID))
		Expect(res.OrderNumber).Should(Equal("1001"))
	})
	It("keeps the result when the audit write fails", func() {
		rep.EXPECT().GetOrderByNumber(gomock.Any(), "1001").Return(o, nil)
		rep.EXPECT().GetOrderByID(gomock.Any(), orderID).Return(o, nil)
		rep.EXPECT().UpdateOrderState(gomock.Any(), orderID, internal.StateInitial, internal.StateConfirmed, now).Return(true, nil)
		rep.EXPECT().AddWebhookEvent(gomock.Any(), gomock.Any()).Return(errors.New("audit table locked"))

		res := srv.HandleNotification(ctx, confirmation(model.Identifiers{OrderNumber: "1001"}))
		Expect(res.Success).Should(BeTrue())
		Expect(res.Outcome).Should(Equal(model.OutcomeConfirmed))
	})
})
