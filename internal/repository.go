package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v4/stdlib"
	"go.uber.org/zap"

	"github.com/DrGermanius/Reconciler/internal/migrations"
	"github.com/DrGermanius/Reconciler/internal/model"
)

const (
	orderFields = "id, number, COALESCE(payment_order_code, ''), COALESCE(payment_reference, ''), " +
		"status, payment_status, total, shipping_cost, currency, customer_name, customer_email, " +
		"shipping_address, billing_address, notes, accounting_reference, accounting_synced_at, " +
		"accounting_needs_review, warehouse_synced_at, warehouse_needs_review, created_at, updated_at"
	itemFields    = "id, order_id, sku, name, quantity, unit_price, weight_grams, length_cm, width_cm, height_cm"
	attemptFields = "id, episode_id, order_id, target, operation, attempt, outcome, error, delay_ms, created_at"
	eventFields   = "id, event_type, source, payload, COALESCE(order_id::text, ''), status, result, error, metadata, created_at"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=mock_internal . IRepository

// IRepository is the order store. Every order mutation is conditional.
type IRepository interface {
	GetOrderByID(context.Context, string) (model.Order, error)
	GetOrderByNumber(context.Context, string) (model.Order, error)
	GetOrderByPaymentOrderCode(context.Context, string) (model.Order, error)
	GetOrderByPaymentReference(context.Context, string) (model.Order, error)
	GetOrderItems(context.Context, string) ([]model.OrderItem, error)
	GetOrdersAwaitingSync(context.Context, int) ([]model.Order, error)

	// UpdateOrderState moves the order from one state to another and reports false
	// when the stored state no longer equals from.
	UpdateOrderState(ctx context.Context, orderID string, from, to model.State, at time.Time) (bool, error)
	MarkSynced(ctx context.Context, orderID string, target model.Target, reference string, at time.Time) error
	FlagForReconciliation(ctx context.Context, orderID string, target model.Target, note string, at time.Time) error

	AddSyncAttempt(context.Context, model.SyncAttempt) error
	GetSyncAttempts(context.Context, string) ([]model.SyncAttempt, error)
	AddWebhookEvent(context.Context, model.WebhookEvent) error
	GetWebhookEvents(context.Context, string) ([]model.WebhookEvent, error)
}

type Repository struct {
	Conn   *sql.DB
	Logger *zap.SugaredLogger
}

func NewRepository(connString string, logger *zap.SugaredLogger) (*Repository, error) {
	conn, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err = migrations.Up(conn); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Repository{Conn: conn, Logger: logger}, nil
}

func (r Repository) Close() error {
	return r.Conn.Close()
}

func (r Repository) GetOrderByID(ctx context.Context, id string) (model.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Order{}, ErrNoRecords
	}
	return r.getOrder(ctx, "id", id)
}

func (r Repository) GetOrderByNumber(ctx context.Context, number string) (model.Order, error) {
	return r.getOrder(ctx, "number", number)
}

func (r Repository) GetOrderByPaymentOrderCode(ctx context.Context, code string) (model.Order, error) {
	return r.getOrder(ctx, "payment_order_code", code)
}

func (r Repository) GetOrderByPaymentReference(ctx context.Context, ref string) (model.Order, error) {
	return r.getOrder(ctx, "payment_reference", ref)
}

// getOrder is only called with column names from this file.
func (r Repository) getOrder(ctx context.Context, column, value string) (model.Order, error) {
	row := r.Conn.QueryRowContext(ctx, "SELECT "+orderFields+" FROM orders WHERE "+column+" = $1 LIMIT 1", value)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, ErrNoRecords
		}
		return model.Order{}, fmt.Errorf("get order by %s: %w", column, err)
	}
	return o, nil
}

func (r Repository) GetOrderItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	rows, err := r.Conn.QueryContext(ctx, "SELECT "+itemFields+" FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var i model.OrderItem
		err = rows.Scan(&i.ID, &i.OrderID, &i.SKU, &i.Name, &i.Quantity, &i.UnitPrice, &i.WeightGrams,
			&i.Dimensions.LengthCM, &i.Dimensions.WidthCM, &i.Dimensions.HeightCM)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

func (r Repository) GetOrdersAwaitingSync(ctx context.Context, limit int) ([]model.Order, error) {
	rows, err := r.Conn.QueryContext(ctx, "SELECT "+orderFields+" FROM orders "+
		"WHERE payment_status = 'PAID' AND status IN ('PROCESSING', 'CONFIRMED') "+
		"AND (accounting_synced_at IS NULL OR warehouse_synced_at IS NULL) "+
		"ORDER BY updated_at LIMIT $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (r Repository) UpdateOrderState(ctx context.Context, orderID string, from, to model.State, at time.Time) (bool, error) {
	if !IsLegalState(to) {
		return false, fmt.Errorf("%w: %s", ErrIllegalState, to)
	}

	res, err := r.Conn.ExecContext(ctx, "UPDATE orders SET status = $1, payment_status = $2, updated_at = $3 "+
		"WHERE id = $4 AND status = $5 AND payment_status = $6",
		to.Status, to.Payment, at, orderID, from.Status, from.Payment)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r Repository) MarkSynced(ctx context.Context, orderID string, target model.Target, reference string, at time.Time) error {
	var err error
	switch target {
	case model.TargetAccounting:
		_, err = r.Conn.ExecContext(ctx, "UPDATE orders SET accounting_reference = $1, accounting_synced_at = $2, "+
			"accounting_needs_review = FALSE, updated_at = $2 WHERE id = $3 AND accounting_synced_at IS NULL",
			reference, at, orderID)
	case model.TargetWarehouse:
		_, err = r.Conn.ExecContext(ctx, "UPDATE orders SET warehouse_synced_at = $1, "+
			"warehouse_needs_review = FALSE, updated_at = $1 WHERE id = $2 AND warehouse_synced_at IS NULL",
			at, orderID)
	default:
		return fmt.Errorf("unknown sync target %q", target)
	}
	return err
}

func (r Repository) FlagForReconciliation(ctx context.Context, orderID string, target model.Target, note string, at time.Time) error {
	var column string
	switch target {
	case model.TargetAccounting:
		column = "accounting_needs_review"
	case model.TargetWarehouse:
		column = "warehouse_needs_review"
	default:
		return fmt.Errorf("unknown sync target %q", target)
	}

	_, err := r.Conn.ExecContext(ctx, "UPDATE orders SET "+column+" = TRUE, "+
		"notes = CASE WHEN notes = '' THEN $1 ELSE notes || E'\\n' || $1 END, updated_at = $2 WHERE id = $3",
		note, at, orderID)
	return err
}

func (r Repository) AddSyncAttempt(ctx context.Context, a model.SyncAttempt) error {
	_, err := r.Conn.ExecContext(ctx, "INSERT INTO sync_attempts ("+attemptFields+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
		a.ID, a.EpisodeID, a.OrderID, a.Target, a.Operation, a.Attempt, a.Outcome, a.Error, a.Delay.Milliseconds(), a.CreatedAt)
	return err
}

func (r Repository) GetSyncAttempts(ctx context.Context, orderID string) ([]model.SyncAttempt, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, ErrNoRecords
	}

	rows, err := r.Conn.QueryContext(ctx, "SELECT "+attemptFields+" FROM sync_attempts WHERE order_id = $1 ORDER BY created_at, attempt", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.SyncAttempt
	for rows.Next() {
		var (
			a       model.SyncAttempt
			delayMS int64
		)
		err = rows.Scan(&a.ID, &a.EpisodeID, &a.OrderID, &a.Target, &a.Operation, &a.Attempt, &a.Outcome, &a.Error, &delayMS, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		a.Delay = time.Duration(delayMS) * time.Millisecond
		attempts = append(attempts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(attempts) == 0 {
		return nil, ErrNoRecords
	}
	return attempts, nil
}

func (r Repository) AddWebhookEvent(ctx context.Context, e model.WebhookEvent) error {
	meta, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}

	orderID := sql.NullString{String: e.OrderID, Valid: e.OrderID != ""}
	_, err = r.Conn.ExecContext(ctx, "INSERT INTO webhook_events (id, event_type, source, payload, order_id, status, result, error, metadata, created_at) "+
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
		e.ID, e.EventType, e.Source, e.Payload, orderID, e.Status, e.Result, e.Error, meta, e.CreatedAt)
	return err
}

func (r Repository) GetWebhookEvents(ctx context.Context, orderID string) ([]model.WebhookEvent, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, ErrNoRecords
	}

	rows, err := r.Conn.QueryContext(ctx, "SELECT "+eventFields+" FROM webhook_events WHERE order_id = $1 ORDER BY created_at", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.WebhookEvent
	for rows.Next() {
		var (
			e    model.WebhookEvent
			meta []byte
		)
		err = rows.Scan(&e.ID, &e.EventType, &e.Source, &e.Payload, &e.OrderID, &e.Status, &e.Result, &e.Error, &meta, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err = json.Unmarshal(meta, &e.Metadata); err != nil {
				return nil, err
			}
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, ErrNoRecords
	}
	return events, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s scanner) (model.Order, error) {
	var (
		o                   model.Order
		shipping, billing   []byte
		accSynced, whSynced sql.NullTime
	)

	err := s.Scan(&o.ID, &o.Number, &o.PaymentOrderCode, &o.PaymentReference, &o.Status, &o.PaymentStatus,
		&o.Total, &o.ShippingCost, &o.Currency, &o.CustomerName, &o.CustomerEmail, &shipping, &billing,
		&o.Notes, &o.AccountingReference, &accSynced, &o.AccountingNeedsReview, &whSynced,
		&o.WarehouseNeedsReview, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return model.Order{}, err
	}

	if len(shipping) > 0 {
		o.ShippingAddress = json.RawMessage(shipping)
	}
	if len(billing) > 0 {
		o.BillingAddress = json.RawMessage(billing)
	}
	if accSynced.Valid {
		t := accSynced.Time
		o.AccountingSyncedAt = &t
	}
	if whSynced.Valid {
		t := whSynced.Time
		o.WarehouseSyncedAt = &t
	}
	return o, nil
}
