//nolint:gochecknoglobals
package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pointsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoconv",
		Name:      "points_converted_total",
		Help:      "The total number of points converted",
	}, []string{"from", "to"})

	featuresMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoconv",
		Name:      "features_converted_total",
		Help:      "The total number of geojson features converted",
	}, []string{"from", "to"})

	distanceMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geoconv",
		Name:      "distances_total",
		Help:      "The total number of distance calculations",
	}, []string{"converged"})
)
