package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersSubmitted counts public order submissions by outcome.
	OrdersSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kikelara_orders_submitted_total",
		Help: "Orders submitted through the public checkout endpoint.",
	}, []string{"outcome"})

	// PricingUpdates counts admin writes to the delivery pricing document.
	PricingUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kikelara_pricing_updates_total",
		Help: "Admin replacements of the delivery pricing document.",
	})

	// ContactMessages counts stored contact-form submissions.
	ContactMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kikelara_contact_messages_total",
		Help: "Contact messages received and stored.",
	})

	// AdminLogins counts admin login attempts by outcome.
	AdminLogins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kikelara_admin_logins_total",
		Help: "Admin login attempts.",
	}, []string{"outcome"})
)
