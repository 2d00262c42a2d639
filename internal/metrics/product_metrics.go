package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_updated_total",
		Help: "The total number of products updated",
	})

	// ImagesStored is a Prometheus counter for tracking the total number of image assets stored.
	ImagesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "images_stored_total",
		Help: "The total number of image assets stored",
	})

	// ImagesRolledBack is a Prometheus counter for uploads removed after a failed write.
	ImagesRolledBack = promauto.NewCounter(prometheus.CounterOpts{
		Name: "images_rolled_back_total",
		Help: "The total number of uploaded assets removed after a failed database write",
	})
)
