package internal

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/DrGermanius/Reconciler/internal/model"
)

const (
	SourceWebhook = "payment-provider"

	defaultReconcileLimit = 100
)

type PaymentNotificationInput struct {
	OrderID          string `json:"orderId"`
	OrderNumber      string `json:"orderNumber"`
	PaymentReference string `json:"paymentReference"`
	Status           string `json:"status"`
	EventType        string `json:"eventType"`
	Provider         string `json:"provider"`
}

type ReconcileInput struct {
	OrderIDs []string `json:"orderIds"`
	Limit    int      `json:"limit"`
}

type Handlers struct {
	Service IService
	logger  *zap.SugaredLogger
}

func NewHandlers(Service IService, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{Service: Service, logger: logger}
}

// Register mounts the webhook and the admin API. Admin routes require an admin token
// signed with secret.
func (h *Handlers) Register(app fiber.Router, secret string) {
	app.Get("/health", h.Health)

	api := app.Group("/api")
	api.Post("/webhooks/payment", h.PaymentWebhook)

	admin := api.Group("/admin", AdminOnly(secret))
	admin.Post("/reconcile", h.Reconcile)
	admin.Get("/orders/:id/attempts", h.GetSyncAttempts)
	admin.Get("/orders/:id/events", h.GetWebhookEvents)
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

func (h *Handlers) PaymentWebhook(c *fiber.Ctx) error {
	var i PaymentNotificationInput

	// the request buffer is reused by fiber once the handler returns
	payload := json.RawMessage(append([]byte(nil), c.Body()...))

	if err := c.BodyParser(&i); err != nil {
		h.logger.Errorf("Error on payment webhook request: %s", err.Error())
		h.Service.HandleNotification(c.Context(), model.Notification{
			Source:      SourceWebhook,
			Payload:     payload,
			DecodeError: err.Error(),
		})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Error on payment webhook request", "data": "incorrect request format"})
	}

	source := SourceWebhook
	if i.Provider != "" {
		source = i.Provider
	}

	res := h.Service.HandleNotification(c.Context(), model.Notification{
		Identifiers: model.Identifiers{
			OrderID:          i.OrderID,
			OrderNumber:      i.OrderNumber,
			PaymentReference: i.PaymentReference,
		},
		TargetStatus: i.Status,
		EventType:    i.EventType,
		Source:       source,
		Payload:      payload,
	})

	return c.Status(statusOf(res)).JSON(res)
}

func (h *Handlers) Reconcile(c *fiber.Ctx) error {
	var i ReconcileInput

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&i); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Error on reconcile request", "data": "incorrect request format"})
		}
	}

	if len(i.OrderIDs) > 0 {
		return c.Status(fiber.StatusOK).JSON(h.Service.ReconcileOrders(c.Context(), i.OrderIDs))
	}

	if i.Limit <= 0 {
		i.Limit = defaultReconcileLimit
	}
	results, err := h.Service.ReconcilePending(c.Context(), i.Limit)
	if err != nil {
		h.logger.Errorf("Error on reconcile request: %s", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on reconcile request", "data": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(results)
}

func (h *Handlers) GetSyncAttempts(c *fiber.Ctx) error {
	attempts, err := h.Service.GetSyncAttempts(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNoRecords) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on sync attempts request", "data": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(attempts)
}

func (h *Handlers) GetWebhookEvents(c *fiber.Ctx) error {
	events, err := h.Service.GetWebhookEvents(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNoRecords) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error on webhook events request", "data": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(events)
}

// statusOf tells the payment provider whether redelivery makes sense: 5xx only for
// failures that may heal on their own.
func statusOf(res model.WebhookProcessingResult) int {
	switch res.Outcome {
	case model.OutcomeConfirmed, model.OutcomeAlreadyConfirmed:
		return fiber.StatusOK
	case model.OutcomeNotFound:
		return fiber.StatusNotFound
	case model.OutcomeTerminalConflict:
		return fiber.StatusConflict
	case model.OutcomeInvalid:
		return fiber.StatusBadRequest
	}
	if res.Retryable {
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}
