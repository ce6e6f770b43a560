package internal

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/DrGermanius/Reconciler/internal/model"
)

//go:generate mockgen -destination=mock/mock_warehouse.go -package=mock_internal . IWarehouse

type IWarehouse interface {
	CreateOrUpdateArticle(context.Context, model.Article) error
	// CreateFulfillment is keyed by order number; repeating it must not ship twice.
	CreateFulfillment(context.Context, model.FulfillmentOrder) error
}

type WarehouseService struct {
	client jsonClient
	logger *zap.SugaredLogger
}

func NewWarehouseService(baseURL, apiKey string, timeout time.Duration, logger *zap.SugaredLogger) *WarehouseService {
	return &WarehouseService{client: newJSONClient(baseURL, apiKey, timeout), logger: logger}
}

func (s WarehouseService) CreateOrUpdateArticle(ctx context.Context, a model.Article) error {
	err := s.client.do(ctx, http.MethodPut, "/api/articles/"+url.PathEscape(a.SKU), "", a, nil)
	if err != nil {
		s.logger.Warnf("CreateOrUpdateArticle %s error: %s", a.SKU, err.Error())
	}
	return err
}

func (s WarehouseService) CreateFulfillment(ctx context.Context, f model.FulfillmentOrder) error {
	err := s.client.do(ctx, http.MethodPost, "/api/fulfillments", f.OrderNumber, f, nil)
	if err != nil {
		s.logger.Warnf("CreateFulfillment %s error: %s", f.OrderNumber, err.Error())
	}
	return err
}

func articleOf(i model.OrderItem) model.Article {
	return model.Article{
		SKU:         i.SKU,
		Name:        i.Name,
		WeightGrams: i.WeightGrams,
		Dimensions:  i.Dimensions,
		Price:       i.UnitPrice,
	}
}

// NewFulfillmentOrder builds the warehouse shipping request for a confirmed order.
func NewFulfillmentOrder(o model.Order, items []model.OrderItem, confirmedAt time.Time) model.FulfillmentOrder {
	lines := make([]model.FulfillmentLine, 0, len(items))
	for _, i := range items {
		lines = append(lines, model.FulfillmentLine{SKU: i.SKU, Quantity: i.Quantity})
	}

	return model.FulfillmentOrder{
		OrderNumber: o.Number,
		Customer:    customerOf(o),
		Lines:       lines,
		ConfirmedAt: confirmedAt,
	}
}
