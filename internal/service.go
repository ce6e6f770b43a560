package internal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DrGermanius/Reconciler/internal/model"
	"github.com/DrGermanius/Reconciler/internal/retry"
)

const (
	EventPaymentConfirmed = "payment.confirmed"
	EventAdminReconcile   = "admin.reconcile"
	SourceAdmin           = "admin"

	operationSubmitOrder       = "submitOrder"
	operationCreateFulfillment = "createFulfillment"

	maxStateWrites = 3
)

//go:generate mockgen -destination=mock/mock_service.go -package=mock_internal . IService

type IService interface {
	HandleNotification(context.Context, model.Notification) model.WebhookProcessingResult
	ReconcileOrders(context.Context, []string) []model.WebhookProcessingResult
	ReconcilePending(context.Context, int) ([]model.WebhookProcessingResult, error)
	GetSyncAttempts(context.Context, string) ([]model.SyncAttempt, error)
	GetWebhookEvents(context.Context, string) ([]model.WebhookEvent, error)
}

// Downstream groups the external systems an order is pushed to after confirmation.
type Downstream struct {
	Accounting IAccounting
	Warehouse  IWarehouse
	// Probe reports which of them are configured. It must not do network calls.
	Probe func() Capabilities
}

type Service struct {
	Repository IRepository
	downstream Downstream
	validator  *Validator
	engine     *retry.Engine
	audit      *AuditLog
	clock      Clock
	locks      *keyedMutex
	logger     *zap.SugaredLogger
}

func NewService(repo IRepository, downstream Downstream, engine *retry.Engine, audit *AuditLog, clock Clock, logger *zap.SugaredLogger) *Service {
	if downstream.Probe == nil {
		downstream.Probe = func() Capabilities { return Capabilities{} }
	}
	return &Service{
		Repository: repo,
		downstream: downstream,
		validator:  NewValidator(repo, logger),
		engine:     engine,
		audit:      audit,
		clock:      clock,
		locks:      newKeyedMutex(),
		logger:     logger,
	}
}

// HandleNotification reconciles one payment notification. Resolution and transition
// failures are reported in the result; downstream failures only flag the order for
// manual reconciliation. Exactly one audit event is written per call.
func (s *Service) HandleNotification(ctx context.Context, n model.Notification) model.WebhookProcessingResult {
	caps := s.downstream.Probe()
	episode := uuid.NewString()

	res := s.process(ctx, n, caps, episode)

	eventType := n.EventType
	if eventType == "" {
		eventType = EventPaymentConfirmed
	}
	s.audit.Record(ctx, eventType, n.Payload, string(res.Outcome), res.Class(), AuditMetadata{
		OrderID: res.OrderID,
		Source:  n.Source,
		Error:   res.Error,
		Extra:   auditExtra(episode, n, res),
	})

	return res
}

func (s *Service) process(ctx context.Context, n model.Notification, caps Capabilities, episode string) model.WebhookProcessingResult {
	if n.DecodeError != "" {
		return failed(model.OutcomeInvalid, fmt.Errorf("%w: %s", ErrMalformedBody, n.DecodeError), false)
	}
	if !isConfirmation(n.TargetStatus) {
		return failed(model.OutcomeInvalid, fmt.Errorf("%w: %q", ErrUnsupportedStatus, n.TargetStatus), false)
	}

	order, err := s.validator.Resolve(ctx, n.Identifiers)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidIdentifiers):
			return failed(model.OutcomeInvalid, err, false)
		case errors.Is(err, ErrOrderNotFound):
			s.logger.Warnw("notification for unknown order",
				"orderId", n.OrderID, "orderNumber", n.OrderNumber, "paymentReference", n.PaymentReference)
			return failed(model.OutcomeNotFound, err, false)
		default:
			s.logger.Errorf("HandleNotification resolve error: %s", err.Error())
			return failed(model.OutcomeStoreFailure, err, true)
		}
	}

	unlock := s.locks.Lock(order.ID)
	defer unlock()

	order, changed, err := s.confirm(ctx, order)

	res := model.WebhookProcessingResult{OrderID: order.ID, OrderNumber: order.Number}
	if err != nil {
		var conflict *TerminalConflictError
		if errors.As(err, &conflict) {
			s.logger.Errorw("payment confirmation conflicts with terminal order state, review required",
				"orderId", order.ID, "orderNumber", order.Number, "state", conflict.State.String(), "episode", episode)
			res.Outcome = model.OutcomeTerminalConflict
			res.Error = err.Error()
			return res
		}

		s.logger.Errorf("HandleNotification transition error: %s", err.Error())
		res.Outcome = model.OutcomeStoreFailure
		res.Error = err.Error()
		res.Retryable = true
		return res
	}

	res.Success = true
	res.Outcome = model.OutcomeConfirmed
	if !changed {
		res.Outcome = model.OutcomeAlreadyConfirmed
	}
	res.DownstreamReference = order.AccountingReference

	if !changed && !n.Resync {
		s.logger.Infow("duplicate payment notification ignored", "orderId", order.ID, "episode", episode)
		return res
	}

	items := s.itemLoader(order.ID)
	for _, t := range model.Targets {
		tr := s.syncTarget(ctx, order, t, caps, episode, items)
		if tr.Target == model.TargetAccounting && tr.Reference != "" {
			res.DownstreamReference = tr.Reference
		}
		if tr.Status == model.TargetFailed {
			res.ReconciliationRequired = true
		}
		res.Targets = append(res.Targets, tr)
	}

	return res
}

// confirm re-reads the order and applies the payment confirmation with a conditional
// write. A lost write means another writer got there first, so the order is read again
// and the machine decides anew.
func (s *Service) confirm(ctx context.Context, order model.Order) (model.Order, bool, error) {
	order, err := s.reread(ctx, order)
	if err != nil {
		return order, false, err
	}

	for i := 0; i < maxStateWrites; i++ {
		next, changed, err := ApplyPaymentConfirmed(order)
		if err != nil || !changed {
			return order, false, err
		}

		now := s.clock.Now()
		ok, err := s.Repository.UpdateOrderState(ctx, order.ID, order.State(), next.State(), now)
		if err != nil {
			return order, false, err
		}
		if ok {
			next.UpdatedAt = now
			s.logger.Infow("order confirmed", "orderId", order.ID, "from", order.State().String())
			return next, true, nil
		}

		order, err = s.reread(ctx, order)
		if err != nil {
			return order, false, err
		}
	}

	return order, false, ErrConcurrentUpdate
}

// reread fetches the current version of order. On failure the resolved order is kept so
// the caller can still report which order it was.
func (s *Service) reread(ctx context.Context, order model.Order) (model.Order, error) {
	current, err := s.Repository.GetOrderByID(ctx, order.ID)
	if err != nil {
		return order, err
	}
	return current, nil
}

func (s *Service) itemLoader(orderID string) func(context.Context) ([]model.OrderItem, error) {
	var items []model.OrderItem
	loaded := false

	return func(ctx context.Context) ([]model.OrderItem, error) {
		if loaded {
			return items, nil
		}
		var err error
		items, err = s.Repository.GetOrderItems(ctx, orderID)
		if err != nil {
			return nil, err
		}
		loaded = true
		return items, nil
	}
}

func (s *Service) syncTarget(ctx context.Context, order model.Order, t model.Target, caps Capabilities, episode string,
	items func(context.Context) ([]model.OrderItem, error)) model.TargetResult {
	tr := model.TargetResult{Target: t}

	if !caps.Has(t) {
		s.logger.Infow("downstream target not configured, skipping", "target", t, "orderId", order.ID)
		tr.Status = model.TargetSkipped
		return tr
	}
	if order.Synced(t) {
		tr.Status = model.TargetAlreadySynced
		if t == model.TargetAccounting {
			tr.Reference = order.AccountingReference
		}
		return tr
	}

	var (
		ref       string
		operation string
		op        retry.Operation
	)
	switch t {
	case model.TargetAccounting:
		operation = operationSubmitOrder
		op = func(ctx context.Context, _ int) error {
			list, err := items(ctx)
			if err != nil {
				return err
			}
			ref, err = s.downstream.Accounting.SubmitOrder(ctx, NewAccountingOrder(order, list))
			return err
		}
	case model.TargetWarehouse:
		operation = operationCreateFulfillment
		op = func(ctx context.Context, _ int) error {
			list, err := items(ctx)
			if err != nil {
				return err
			}
			for _, i := range list {
				if err = s.downstream.Warehouse.CreateOrUpdateArticle(ctx, articleOf(i)); err != nil {
					return err
				}
			}
			return s.downstream.Warehouse.CreateFulfillment(ctx, NewFulfillmentOrder(order, list, order.UpdatedAt))
		}
	}

	result := s.engine.Execute(ctx, op, func(a retry.Attempt) {
		s.recordAttempt(ctx, episode, order.ID, t, operation, a)
	})
	tr.Attempts = result.Attempts

	now := s.clock.Now()
	if result.Success() {
		tr.Status = model.TargetSynced
		tr.Reference = ref
		if err := s.Repository.MarkSynced(ctx, order.ID, t, ref, now); err != nil {
			s.logger.Errorf("MarkSynced %s for order %s error: %s", t, order.ID, err.Error())
		}
		return tr
	}

	tr.Status = model.TargetFailed
	tr.Error = result.Err.Error()
	tr.Retryable = result.Retryable
	s.logger.Errorw("downstream sync failed, manual reconciliation required",
		"target", t, "orderId", order.ID, "attempts", result.Attempts, "retryable", result.Retryable, "error", result.Err)

	note := fmt.Sprintf("%s %s sync failed after %d attempt(s): %s; manual reconciliation required",
		now.Format(time.RFC3339), t, result.Attempts, result.Err)
	if err := s.Repository.FlagForReconciliation(ctx, order.ID, t, note, now); err != nil {
		s.logger.Errorf("FlagForReconciliation %s for order %s error: %s", t, order.ID, err.Error())
	}
	return tr
}

func (s *Service) recordAttempt(ctx context.Context, episode, orderID string, t model.Target, operation string, a retry.Attempt) {
	sa := model.SyncAttempt{
		ID:        uuid.NewString(),
		EpisodeID: episode,
		OrderID:   orderID,
		Target:    t,
		Operation: operation,
		Attempt:   a.Number,
		Outcome:   model.AttemptSuccess,
		Delay:     a.Delay,
		CreatedAt: s.clock.Now(),
	}
	if a.Err != nil {
		sa.Error = a.Err.Error()
		sa.Outcome = model.AttemptPermanentFailure
		if a.Retryable {
			sa.Outcome = model.AttemptRetryableFailure
		}
	}

	if err := s.Repository.AddSyncAttempt(ctx, sa); err != nil {
		s.logger.Errorf("AddSyncAttempt for order %s error: %s", orderID, err.Error())
	}
}

// ReconcileOrders re-runs the notification flow for the given orders, retrying only
// the downstream targets that are not yet synced.
func (s *Service) ReconcileOrders(ctx context.Context, ids []string) []model.WebhookProcessingResult {
	results := make([]model.WebhookProcessingResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, s.HandleNotification(ctx, model.Notification{
			Identifiers:  model.Identifiers{OrderID: id},
			TargetStatus: string(model.StatusConfirmed),
			EventType:    EventAdminReconcile,
			Source:       SourceAdmin,
			Payload:      map[string]string{"orderId": id},
			Resync:       true,
		}))
	}
	return results
}

// ReconcilePending reconciles up to limit orders that are paid but not synced everywhere.
func (s *Service) ReconcilePending(ctx context.Context, limit int) ([]model.WebhookProcessingResult, error) {
	orders, err := s.Repository.GetOrdersAwaitingSync(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return s.ReconcileOrders(ctx, ids), nil
}

func (s *Service) GetSyncAttempts(ctx context.Context, orderID string) ([]model.SyncAttempt, error) {
	return s.Repository.GetSyncAttempts(ctx, orderID)
}

func (s *Service) GetWebhookEvents(ctx context.Context, orderID string) ([]model.WebhookEvent, error) {
	return s.Repository.GetWebhookEvents(ctx, orderID)
}

func isConfirmation(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case string(model.StatusConfirmed), string(model.PaymentPaid):
		return true
	}
	return false
}

func failed(outcome model.Outcome, err error, retryable bool) model.WebhookProcessingResult {
	return model.WebhookProcessingResult{
		Outcome:   outcome,
		Error:     err.Error(),
		Retryable: retryable,
	}
}

func auditExtra(episode string, n model.Notification, res model.WebhookProcessingResult) map[string]string {
	extra := map[string]string{
		"episodeId":    episode,
		"targetStatus": n.TargetStatus,
	}
	if res.ReconciliationRequired {
		extra["reconciliationRequired"] = "true"
	}
	for _, t := range res.Targets {
		extra[string(t.Target)] = string(t.Status)
		if t.Attempts > 0 {
			extra[string(t.Target)+"Attempts"] = strconv.Itoa(t.Attempts)
		}
	}
	return extra
}
