package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Target string

const (
	TargetAccounting Target = "accounting"
	TargetWarehouse  Target = "warehouse"
)

// Targets lists the downstream systems in the order they are synchronized.
var Targets = []Target{TargetAccounting, TargetWarehouse}

type AttemptOutcome string

const (
	AttemptSuccess          AttemptOutcome = "success"
	AttemptRetryableFailure AttemptOutcome = "retryable-failure"
	AttemptPermanentFailure AttemptOutcome = "permanent-failure"
)

// SyncAttempt is one call against a downstream system. Rows are never updated.
type SyncAttempt struct {
	ID        string         `json:"id"`
	EpisodeID string         `json:"episodeId"`
	OrderID   string         `json:"orderId"`
	Target    Target         `json:"target"`
	Operation string         `json:"operation"`
	Attempt   int            `json:"attempt"`
	Outcome   AttemptOutcome `json:"outcome"`
	Error     string         `json:"error,omitempty"`
	Delay     time.Duration  `json:"delay"`
	CreatedAt time.Time      `json:"createdAt"`
}

type Customer struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	ShippingAddress json.RawMessage `json:"shippingAddress,omitempty"`
	BillingAddress  json.RawMessage `json:"billingAddress,omitempty"`
}

type LineItem struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// AccountingOrder is the invoice payload submitted to the accounting system.
type AccountingOrder struct {
	Customer     Customer        `json:"customer"`
	LineItems    []LineItem      `json:"lineItems"`
	OrderNumber  string          `json:"orderNumber"`
	Total        decimal.Decimal `json:"total"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Currency     string          `json:"currency"`
	OrderDate    time.Time       `json:"orderDate"`
}

type Article struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	WeightGrams int             `json:"weight"`
	Dimensions  Dimensions      `json:"dimensions"`
	Price       decimal.Decimal `json:"price"`
}

type FulfillmentLine struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// FulfillmentOrder asks the warehouse to ship a confirmed order.
type FulfillmentOrder struct {
	OrderNumber string            `json:"orderNumber"`
	Customer    Customer          `json:"customer"`
	Lines       []FulfillmentLine `json:"lines"`
	ConfirmedAt time.Time         `json:"confirmedAt"`
}
