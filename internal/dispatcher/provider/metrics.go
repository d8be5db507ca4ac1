package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var providerRequestDurationHist = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "chatapi_provider_request_duration_seconds",
		Help:    "Duration of outbound requests to Chat API, by action.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"action"},
)
