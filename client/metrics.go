package client

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// instrument wraps next with in-flight, request count and latency
// collectors registered on reg. Collectors already registered by
// another Client on the same registry are shared.
func instrument(reg prometheus.Registerer, next http.RoundTripper) (http.RoundTripper, error) {
	inFlight, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pterom_client_in_flight_requests",
		Help: "Panel API requests currently in flight.",
	}))
	if err != nil {
		return nil, err
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pterom_client_requests_total",
		Help: "Total panel API requests by method and response status.",
	}, []string{"code", "method"}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pterom_client_request_duration_seconds",
		Help:    "Panel API request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"}))
	if err != nil {
		return nil, err
	}

	return promhttp.InstrumentRoundTripperInFlight(inFlight,
		promhttp.InstrumentRoundTripperCounter(requests,
			promhttp.InstrumentRoundTripperDuration(duration, next),
		),
	), nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		var zero C
		return zero, err
	}

	return c, nil
}
