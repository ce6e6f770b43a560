package internal

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/DrGermanius/Reconciler/internal/model"
)

// MemoryRepository is an IRepository kept in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	orders   map[string]model.Order
	items    map[string][]model.OrderItem
	attempts []model.SyncAttempt
	events   []model.WebhookEvent
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[string]model.Order),
		items:  make(map[string][]model.OrderItem),
	}
}

// AddOrder stores an order as the checkout flow would create it.
func (r *MemoryRepository) AddOrder(o model.Order, items ...model.OrderItem) error {
	if !IsLegalState(o.State()) {
		return fmt.Errorf("%w: %s", ErrIllegalState, o.State())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; ok {
		return fmt.Errorf("order %s already exists", o.ID)
	}
	r.orders[o.ID] = o
	for _, i := range items {
		i.OrderID = o.ID
		r.items[o.ID] = append(r.items[o.ID], i)
	}
	return nil
}

func (r *MemoryRepository) GetOrderByID(_ context.Context, id string) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return model.Order{}, ErrNoRecords
	}
	return o, nil
}

func (r *MemoryRepository) GetOrderByNumber(_ context.Context, number string) (model.Order, error) {
	return r.find(func(o model.Order) bool { return o.Number == number })
}

func (r *MemoryRepository) GetOrderByPaymentOrderCode(_ context.Context, code string) (model.Order, error) {
	return r.find(func(o model.Order) bool { return o.PaymentOrderCode == code })
}

func (r *MemoryRepository) GetOrderByPaymentReference(_ context.Context, ref string) (model.Order, error) {
	return r.find(func(o model.Order) bool { return o.PaymentReference == ref })
}

func (r *MemoryRepository) find(match func(model.Order) bool) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if match(o) {
			return o, nil
		}
	}
	return model.Order{}, ErrNoRecords
}

func (r *MemoryRepository) GetOrderItems(_ context.Context, orderID string) ([]model.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]model.OrderItem, len(r.items[orderID]))
	copy(items, r.items[orderID])
	return items, nil
}

func (r *MemoryRepository) GetOrdersAwaitingSync(_ context.Context, limit int) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []model.Order
	for _, o := range r.orders {
		if o.PaymentStatus != model.PaymentPaid {
			continue
		}
		if o.Status != model.StatusProcessing && o.Status != model.StatusConfirmed {
			continue
		}
		if o.AccountingSyncedAt != nil && o.WarehouseSyncedAt != nil {
			continue
		}
		orders = append(orders, o)
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].UpdatedAt.Before(orders[j].UpdatedAt) })
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (r *MemoryRepository) UpdateOrderState(_ context.Context, orderID string, from, to model.State, at time.Time) (bool, error) {
	if !IsLegalState(to) {
		return false, fmt.Errorf("%w: %s", ErrIllegalState, to)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok || o.State() != from {
		return false, nil
	}
	o = o.WithState(to)
	o.UpdatedAt = at
	r.orders[orderID] = o
	return true, nil
}

func (r *MemoryRepository) MarkSynced(_ context.Context, orderID string, target model.Target, reference string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok || o.Synced(target) {
		return nil
	}

	t := at
	switch target {
	case model.TargetAccounting:
		o.AccountingReference = reference
		o.AccountingSyncedAt = &t
		o.AccountingNeedsReview = false
	case model.TargetWarehouse:
		o.WarehouseSyncedAt = &t
		o.WarehouseNeedsReview = false
	default:
		return fmt.Errorf("unknown sync target %q", target)
	}
	o.UpdatedAt = at
	r.orders[orderID] = o
	return nil
}

func (r *MemoryRepository) FlagForReconciliation(_ context.Context, orderID string, target model.Target, note string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return nil
	}

	switch target {
	case model.TargetAccounting:
		o.AccountingNeedsReview = true
	case model.TargetWarehouse:
		o.WarehouseNeedsReview = true
	default:
		return fmt.Errorf("unknown sync target %q", target)
	}
	if o.Notes == "" {
		o.Notes = note
	} else {
		o.Notes += "\n" + note
	}
	o.UpdatedAt = at
	r.orders[orderID] = o
	return nil
}

func (r *MemoryRepository) AddSyncAttempt(_ context.Context, a model.SyncAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attempts = append(r.attempts, a)
	return nil
}

func (r *MemoryRepository) GetSyncAttempts(_ context.Context, orderID string) ([]model.SyncAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.SyncAttempt
	for _, a := range r.attempts {
		if a.OrderID == orderID {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoRecords
	}
	return out, nil
}

func (r *MemoryRepository) AddWebhookEvent(_ context.Context, e model.WebhookEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	return nil
}

func (r *MemoryRepository) GetWebhookEvents(_ context.Context, orderID string) ([]model.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.WebhookEvent
	for _, e := range r.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoRecords
	}
	return out, nil
}

// Events returns every recorded webhook event, resolved or not.
func (r *MemoryRepository) Events() []model.WebhookEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.WebhookEvent, len(r.events))
	copy(out, r.events)
	return out
}
