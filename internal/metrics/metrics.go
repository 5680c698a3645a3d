package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters exposed on /metrics.
var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bazaarhub_orders_placed_total",
		Help: "Number of orders placed.",
	})

	PaymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bazaarhub_payments_confirmed_total",
		Help: "Number of orders moved to Processing by a payment confirmation.",
	})

	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bazaarhub_webhook_events_total",
		Help: "Webhook deliveries by outcome.",
	}, []string{"outcome"})

	EmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bazaarhub_emails_sent_total",
		Help: "Number of transactional emails handed to SMTP.",
	})
)
