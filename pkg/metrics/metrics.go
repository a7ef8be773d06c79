package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts orders accepted by the create path.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "onekart_orders_created_total",
		Help: "Orders created.",
	})

	// OrdersCancelled counts successful cancellations by payment branch.
	OrdersCancelled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "onekart_orders_cancelled_total",
		Help: "Orders cancelled, labelled by refund branch.",
	}, []string{"refund"})

	// PaymentVerifications counts callback verification outcomes.
	PaymentVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "onekart_payment_verifications_total",
		Help: "Payment callback verification outcomes.",
	}, []string{"result"})

	// GatewayRequests counts outbound gateway calls.
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "onekart_gateway_requests_total",
		Help: "Outbound payment gateway requests by outcome.",
	}, []string{"outcome"})
)
