package internal

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/DrGermanius/Reconciler/internal/model"
	"github.com/DrGermanius/Reconciler/internal/retry"
)

//go:generate mockgen -destination=mock/mock_accounting.go -package=mock_internal . IAccounting

type IAccounting interface {
	// SubmitOrder books the order and returns the accounting system's order number.
	// The order number doubles as idempotency key.
	SubmitOrder(context.Context, model.AccountingOrder) (string, error)
}

type AccountingService struct {
	client jsonClient
	logger *zap.SugaredLogger
}

func NewAccountingService(url, apiKey string, timeout time.Duration, logger *zap.SugaredLogger) *AccountingService {
	return &AccountingService{client: newJSONClient(url, apiKey, timeout), logger: logger}
}

type accountingResponse struct {
	OrderNumber string `json:"orderNumber"`
}

func (s AccountingService) SubmitOrder(ctx context.Context, o model.AccountingOrder) (string, error) {
	var res accountingResponse
	err := s.client.do(ctx, http.MethodPost, "/api/orders", o.OrderNumber, o, &res)
	if err != nil {
		s.logger.Warnf("SubmitOrder %s error: %s", o.OrderNumber, err.Error())
		return "", err
	}

	if res.OrderNumber == "" {
		return "", retry.Permanent(errors.New("accounting response carries no order number"))
	}
	return res.OrderNumber, nil
}

// NewAccountingOrder builds the accounting payload from an order and its items.
func NewAccountingOrder(o model.Order, items []model.OrderItem) model.AccountingOrder {
	lines := make([]model.LineItem, 0, len(items))
	for _, i := range items {
		lines = append(lines, model.LineItem{
			SKU:       i.SKU,
			Name:      i.Name,
			Quantity:  i.Quantity,
			UnitPrice: i.UnitPrice,
		})
	}

	return model.AccountingOrder{
		Customer:     customerOf(o),
		LineItems:    lines,
		OrderNumber:  o.Number,
		Total:        o.Total,
		ShippingCost: o.ShippingCost,
		Currency:     o.Currency,
		OrderDate:    o.CreatedAt,
	}
}

func customerOf(o model.Order) model.Customer {
	return model.Customer{
		Name:            o.CustomerName,
		Email:           o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
	}
}
