package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// OrderStatus is the closed set of states an order moves through.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// ErrInvalidTransition is returned when a status change does not follow the
// order lifecycle.
var ErrInvalidTransition = errors.New("invalid order status transition")

// statusTransitions enumerates the legal forward edges. Cancelled is reachable
// from any non-terminal state; Delivered and Cancelled are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// Valid reports whether s is one of the enumerated statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// ValidateTransition checks the edge from -> to against the lifecycle.
// Same-state writes are allowed so confirmations stay idempotent.
func ValidateTransition(from, to OrderStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if from == to {
		return nil
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Order is a purchase record. Line items snapshot the product title and unit
// price at placement time; the product reference is provenance only.
type Order struct {
	BaseModel
	UserID           uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	User             *User       `json:"user,omitempty"`
	Items            []OrderItem `json:"items,omitempty"`
	TotalPrice       float64     `json:"total_price"`
	Address          string      `json:"address"`
	PaymentRequestID string      `gorm:"index" json:"payment_request_id"`
	PaymentID        string      `json:"payment_id,omitempty"`
	Status           OrderStatus `gorm:"type:varchar(16)" json:"status"`
}

// SetStatus applies a lifecycle-checked status change in memory.
func (o *Order) SetStatus(to OrderStatus) error {
	if err := ValidateTransition(o.Status, to); err != nil {
		return err
	}
	o.Status = to
	return nil
}

// OrderItem is one purchased line of an order.
type OrderItem struct {
	BaseModel
	OrderID      uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID    *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	ProductTitle string     `json:"product_title"`
	Quantity     int        `json:"quantity"`
	UnitPrice    float64    `json:"unit_price"`
}
