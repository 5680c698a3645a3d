package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/bazaarhub/internal/metrics"
	"github.com/example/bazaarhub/internal/middleware"
	"github.com/example/bazaarhub/internal/models"
	"github.com/example/bazaarhub/internal/services"
)

// OrderHandler manages order placement, listing, status updates and the
// payment webhook.
type OrderHandler struct {
	db       *gorm.DB
	payments *services.PaymentService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, payments *services.PaymentService) *OrderHandler {
	return &OrderHandler{db: db, payments: payments}
}

type orderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type placeOrderRequest struct {
	Items      []orderItemRequest `json:"items"`
	TotalPrice float64            `json:"totalPrice"`
	Address    string             `json:"address"`
}

// PlaceOrder converts a cart payload into a Pending order tied to a
// fabricated gateway order descriptor. Line items snapshot the product title
// and unit price at placement time; unknown product ids are tolerated and
// leave the snapshot empty. No stock validation is performed.
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	claims, ok := middleware.GetSessionClaims(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	userID, err := claims.Identity()
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	gatewayOrder := h.payments.CreateGatewayOrder(services.MinorUnits(req.TotalPrice))

	order := models.Order{
		UserID:           userID,
		TotalPrice:       req.TotalPrice,
		Address:          req.Address,
		PaymentRequestID: gatewayOrder.ID,
		Status:           models.StatusPending,
		Items:            buildOrderItems(h.db, req.Items),
	}

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	metrics.OrdersPlaced.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order placed (dummy payment), please complete payment",
		"data": fiber.Map{
			"orderId":        order.ID,
			"paymentOrderId": gatewayOrder.ID,
			"amount":         gatewayOrder.Amount,
			"key":            "dummy_key_test",
		},
	})
}

// buildOrderItems snapshots product title and unit price into each line item.
// Unknown or unparseable product ids are tolerated and leave the snapshot
// zero-valued.
func buildOrderItems(db *gorm.DB, items []orderItemRequest) []models.OrderItem {
	built := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		line := models.OrderItem{Quantity: quantity}
		if id, err := uuid.Parse(item.ProductID); err == nil {
			line.ProductID = &id

			var product models.Product
			if err := db.First(&product, "id = ?", id).Error; err == nil {
				line.ProductTitle = product.Title
				line.UnitPrice = product.Price
			}
		}
		built = append(built, line)
	}
	return built
}

// ListOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	claims, ok := middleware.GetSessionClaims(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	userID, err := claims.Identity()
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	var orders []models.Order
	if err := h.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Orders fetched successfully",
		"data":    orders,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus applies a lifecycle-checked status change to an order.
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid order ID format")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return err
	}

	if err := order.SetStatus(models.OrderStatus(req.Status)); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.Model(&order).Update("status", order.Status).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order status updated successfully",
		"data":    order,
	})
}

type webhookRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
}

// HandleWebhook processes a payment-gateway callback. Signature verification
// happens in middleware; the transition itself is idempotent, so replayed
// deliveries are harmless.
func (h *OrderHandler) HandleWebhook(c *fiber.Ctx) error {
	var req webhookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := h.payments.ConfirmPayment(req.RazorpayOrderID, req.RazorpayPaymentID); err != nil {
		if err == gorm.ErrRecordNotFound {
			metrics.WebhookEvents.WithLabelValues("not_found").Inc()
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		metrics.WebhookEvents.WithLabelValues("error").Inc()
		return err
	}

	metrics.WebhookEvents.WithLabelValues("ok").Inc()
	return c.JSON(fiber.Map{"success": true, "message": "Webhook received (dummy)"})
}
