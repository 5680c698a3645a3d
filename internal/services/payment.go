package services

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/example/bazaarhub/internal/metrics"
	"github.com/example/bazaarhub/internal/models"
)

// GatewayOrder is the descriptor a real payment gateway would return for an
// order-creation call. This service fabricates it locally.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentService stands in for a payment gateway integration. It fabricates
// order descriptors and applies payment confirmations to stored orders.
type PaymentService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(db *gorm.DB, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		db:  db,
		log: log.With().Str("component", "payments").Logger(),
	}
}

// MinorUnits converts a major-unit amount to minor units. Rounding, not
// truncation: 49.99 has no exact binary representation and truncating would
// yield 4998.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateGatewayOrder fabricates a gateway order descriptor for the given
// amount in minor units.
func (s *PaymentService) CreateGatewayOrder(amount int64) GatewayOrder {
	now := time.Now().UnixNano()
	return GatewayOrder{
		ID:       fmt.Sprintf("dummy_order_%d", now),
		Amount:   amount,
		Currency: "INR",
		Receipt:  fmt.Sprintf("receipt_%d", now),
		Status:   "created",
	}
}

// ConfirmPayment transitions the order matching the external payment-request
// id to Processing and records the payment id, fabricating one when the
// gateway did not supply it. Replayed confirmations for an order that
// already carries a payment id are no-ops; gorm.ErrRecordNotFound is
// returned when no order matches.
func (s *PaymentService) ConfirmPayment(requestID, paymentID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "payment_request_id = ?", requestID).Error; err != nil {
		return nil, err
	}

	if order.PaymentID != "" {
		s.log.Info().Str("order_id", order.ID.String()).Msg("payment already confirmed")
		return &order, nil
	}

	if err := order.SetStatus(models.StatusProcessing); err != nil {
		return nil, err
	}

	if paymentID == "" {
		paymentID = fmt.Sprintf("dummy_payment_%d", time.Now().UnixNano())
	}
	order.PaymentID = paymentID

	if err := s.db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
		"status":     order.Status,
		"payment_id": order.PaymentID,
	}).Error; err != nil {
		return nil, err
	}

	metrics.PaymentsConfirmed.Inc()
	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("payment_id", order.PaymentID).
		Msg("payment confirmed")

	return &order, nil
}
