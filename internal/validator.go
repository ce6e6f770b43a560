package internal

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DrGermanius/Reconciler/internal/model"
)

type Validator struct {
	repo   IRepository
	logger *zap.SugaredLogger
}

func NewValidator(repo IRepository, logger *zap.SugaredLogger) *Validator {
	return &Validator{repo: repo, logger: logger}
}

type lookup struct {
	key   string
	value string
	get   func(context.Context, string) (model.Order, error)
}

// Resolve finds the order a notification refers to. Keys are tried in order: primary id,
// order number, then the payment reference against the payment order code and the
// payment reference columns. The first match wins. Orders in any state are returned.
func (v Validator) Resolve(ctx context.Context, ids model.Identifiers) (model.Order, error) {
	if ids.Empty() {
		return model.Order{}, ErrInvalidIdentifiers
	}

	lookups := []lookup{
		{"orderId", ids.OrderID, v.repo.GetOrderByID},
		{"orderNumber", ids.OrderNumber, v.repo.GetOrderByNumber},
		{"paymentOrderCode", ids.PaymentReference, v.repo.GetOrderByPaymentOrderCode},
		{"paymentReference", ids.PaymentReference, v.repo.GetOrderByPaymentReference},
	}

	for _, l := range lookups {
		if l.value == "" {
			continue
		}

		o, err := l.get(ctx, l.value)
		if err == nil {
			v.logger.Debugw("order resolved", "key", l.key, "value", l.value, "orderId", o.ID)
			return o, nil
		}
		if !errors.Is(err, ErrNoRecords) {
			return model.Order{}, err
		}
	}

	return model.Order{}, ErrOrderNotFound
}
