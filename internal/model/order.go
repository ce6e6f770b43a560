package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCancelled  Status = "CANCELLED"
	StatusRefunded   Status = "REFUNDED"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// State is the combined fulfillment/payment position of an order.
type State struct {
	Status  Status        `json:"status"`
	Payment PaymentStatus `json:"paymentStatus"`
}

func (s State) String() string {
	return "(" + string(s.Status) + ", " + string(s.Payment) + ")"
}

type Order struct {
	ID               string          `json:"id"`
	Number           string          `json:"number"`
	PaymentOrderCode string          `json:"paymentOrderCode,omitempty"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	Status           Status          `json:"status"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	Total            decimal.Decimal `json:"total"`
	ShippingCost     decimal.Decimal `json:"shippingCost"`
	Currency         string          `json:"currency"`
	CustomerName     string          `json:"customerName"`
	CustomerEmail    string          `json:"customerEmail"`
	ShippingAddress  json.RawMessage `json:"shippingAddress,omitempty"`
	BillingAddress   json.RawMessage `json:"billingAddress,omitempty"`
	Notes            string          `json:"notes,omitempty"`

	AccountingReference   string     `json:"accountingReference,omitempty"`
	AccountingSyncedAt    *time.Time `json:"accountingSyncedAt,omitempty"`
	AccountingNeedsReview bool       `json:"accountingNeedsReview"`
	WarehouseSyncedAt     *time.Time `json:"warehouseSyncedAt,omitempty"`
	WarehouseNeedsReview  bool       `json:"warehouseNeedsReview"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o Order) State() State {
	return State{Status: o.Status, Payment: o.PaymentStatus}
}

func (o Order) WithState(s State) Order {
	o.Status = s.Status
	o.PaymentStatus = s.Payment
	return o
}

// Synced reports whether the order was already delivered to the target.
func (o Order) Synced(t Target) bool {
	switch t {
	case TargetAccounting:
		return o.AccountingSyncedAt != nil
	case TargetWarehouse:
		return o.WarehouseSyncedAt != nil
	}
	return false
}

type Dimensions struct {
	LengthCM decimal.Decimal `json:"length"`
	WidthCM  decimal.Decimal `json:"width"`
	HeightCM decimal.Decimal `json:"height"`
}

type OrderItem struct {
	ID          int             `json:"id"`
	OrderID     string          `json:"orderId"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	WeightGrams int             `json:"weightGrams"`
	Dimensions  Dimensions      `json:"dimensions"`
}

// Identifiers are the order keys a notification may carry. Any subset may be set.
type Identifiers struct {
	OrderID          string `json:"orderId,omitempty"`
	OrderNumber      string `json:"orderNumber,omitempty"`
	PaymentReference string `json:"paymentReference,omitempty"`
}

func (i Identifiers) Empty() bool {
	return i.OrderID == "" && i.OrderNumber == "" && i.PaymentReference == ""
}
