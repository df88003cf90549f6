// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts completed HTTP requests by method, path and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoshop_http_requests_total",
		Help: "Completed HTTP requests.",
	}, []string{"method", "path", "status"})

	// HTTPDuration observes request latency by method and path.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "autoshop_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// InventoryTransactions counts recorded ledger entries by transaction type.
	InventoryTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoshop_inventory_transactions_total",
		Help: "Recorded inventory transactions.",
	}, []string{"type"})

	// PurchaseOrderReceipts counts receiving operations by resulting PO status.
	PurchaseOrderReceipts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoshop_purchase_order_receipts_total",
		Help: "Purchase order receiving operations.",
	}, []string{"status"})

	// StockGuardRejections counts quantity-guard failures by guard name.
	StockGuardRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoshop_stock_guard_rejections_total",
		Help: "Mutations rejected by a quantity guard.",
	}, []string{"guard"})
)
