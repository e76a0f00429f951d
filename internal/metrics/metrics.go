package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartItemsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_items_added_total",
		Help: "Number of cart line additions (including merges).",
	})
	CartItemsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_items_removed_total",
		Help: "Number of cart line removals.",
	})
	OrdersSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_orders_submitted_total",
		Help: "Checkout submissions by outcome.",
	}, []string{"status"})
)
