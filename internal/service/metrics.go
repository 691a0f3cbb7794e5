package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/utafrali/storefront/internal/domain"
)

var storeOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "store_operations_total",
		Help:      "Store operations by store, operation and result",
	},
	[]string{"store", "operation", "result"},
)

const (
	resultOK        = "ok"
	resultNoop      = "noop"
	resultRejected  = "rejected"
	resultPersist   = "persistence_error"
	storeCart       = "cart"
	storeWishlist   = "wishlist"
	storePreference = "preference"
)

func recordOperation(store, operation string, err error) {
	result := resultOK
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrPersistence):
		result = resultPersist
	default:
		result = resultRejected
	}
	storeOperations.WithLabelValues(store, operation, result).Inc()
}

func recordNoop(store, operation string) {
	storeOperations.WithLabelValues(store, operation, resultNoop).Inc()
}
