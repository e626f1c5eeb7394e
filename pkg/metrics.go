// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// BreakerMetrics holds the OTel instruments recorded by CircuitBreakerManager.
// Fields are never nil after NewBreakerMetrics or NoopBreakerMetrics.
type BreakerMetrics struct {
	// TransitionsTotal counts state changes, labelled with the new state.
	TransitionsTotal metric.Int64Counter

	// RejectionsTotal counts calls refused without reaching the database.
	RejectionsTotal metric.Int64Counter
}

// NewBreakerMetrics registers the breaker instruments on meter.
func NewBreakerMetrics(meter metric.Meter) (*BreakerMetrics, error) {
	transitions, err := meter.Int64Counter(
		"datasource_breaker_transitions_total",
		metric.WithDescription("Circuit breaker state changes per data source"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create datasource_breaker_transitions_total counter: %w", err)
	}

	rejections, err := meter.Int64Counter(
		"datasource_breaker_rejections_total",
		metric.WithDescription("Requests fast-failed by an open circuit breaker"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create datasource_breaker_rejections_total counter: %w", err)
	}

	return &BreakerMetrics{
		TransitionsTotal: transitions,
		RejectionsTotal:  rejections,
	}, nil
}

// NoopBreakerMetrics returns instruments that record nothing.
func NoopBreakerMetrics() *BreakerMetrics {
	meter := noop.NewMeterProvider().Meter("noop")

	// noop instruments never fail.
	transitions, _ := meter.Int64Counter("datasource_breaker_transitions_total")
	rejections, _ := meter.Int64Counter("datasource_breaker_rejections_total")

	return &BreakerMetrics{
		TransitionsTotal: transitions,
		RejectionsTotal:  rejections,
	}
}
