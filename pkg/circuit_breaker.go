// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/LerianStudio/datagage/pkg/constant"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CircuitBreakerManager keeps one circuit breaker per stored data source, so a
// database that keeps refusing connections fast-fails instead of tying up request handlers.
type CircuitBreakerManager struct {
	breakers map[string]*gobreaker.CircuitBreaker
	mu       sync.RWMutex
	logger   log.Logger
	metrics  *BreakerMetrics
}

// NewCircuitBreakerManager creates a new circuit breaker manager
func NewCircuitBreakerManager(logger log.Logger) *CircuitBreakerManager {
	return &CircuitBreakerManager{
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		logger:   logger,
		metrics:  NoopBreakerMetrics(),
	}
}

// WithMetrics makes the manager record transitions and rejections on m.
func (cbm *CircuitBreakerManager) WithMetrics(m *BreakerMetrics) *CircuitBreakerManager {
	if m != nil {
		cbm.metrics = m
	}

	return cbm
}

// GetOrCreate returns existing circuit breaker or creates a new one
func (cbm *CircuitBreakerManager) GetOrCreate(dataSourceID string) *gobreaker.CircuitBreaker {
	cbm.mu.RLock()
	breaker, exists := cbm.breakers[dataSourceID]
	cbm.mu.RUnlock()

	if exists {
		return breaker
	}

	cbm.mu.Lock()
	defer cbm.mu.Unlock()

	if breaker, exists = cbm.breakers[dataSourceID]; exists {
		return breaker
	}

	breaker = gobreaker.NewCircuitBreaker(cbm.settings(dataSourceID))
	cbm.breakers[dataSourceID] = breaker

	cbm.logger.Infof("Created circuit breaker for data source: %s", dataSourceID)

	return breaker
}

func (cbm *CircuitBreakerManager) settings(dataSourceID string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        fmt.Sprintf("datasource-%s", dataSourceID),
		MaxRequests: constant.CircuitBreakerMaxRequests,
		Interval:    constant.CircuitBreakerInterval,
		Timeout:     constant.CircuitBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= constant.CircuitBreakerThreshold
		},
		IsSuccessful: IsBreakerNeutral,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			cbm.logger.Warnf("Circuit Breaker [%s] state changed: %s -> %s", name, from.String(), to.String())

			cbm.metrics.TransitionsTotal.Add(context.Background(), 1, metric.WithAttributes(
				attribute.String("datasource_id", dataSourceID),
				attribute.String("state", to.String()),
			))

			if to == gobreaker.StateOpen {
				cbm.logger.Errorf("Circuit Breaker [%s] OPENED - data source is unreachable, requests will fast-fail", name)
			}
		},
	}
}

// IsBreakerNeutral reports whether err must not count against the breaker.
// Only connection faults and unknown errors trip it. Rejected queries and
// unsupported engines say nothing about the health of the database.
func IsBreakerNeutral(err error) bool {
	if err == nil {
		return true
	}

	var connErr ConnectionError
	if errors.As(err, &connErr) {
		return false
	}

	var (
		queryErr       QueryError
		schemaErr      SchemaError
		unsupportedErr UnsupportedEngineError
		validationErr  ValidationError
	)

	return errors.As(err, &queryErr) ||
		errors.As(err, &schemaErr) ||
		errors.As(err, &unsupportedErr) ||
		errors.As(err, &validationErr)
}

// Execute runs a function through the circuit breaker
func (cbm *CircuitBreakerManager) Execute(dataSourceID string, fn func() (any, error)) (any, error) {
	breaker := cbm.GetOrCreate(dataSourceID)

	result, err := breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		cbm.logger.Warnf("Circuit breaker [%s] rejected request: %v", dataSourceID, err)

		cbm.metrics.RejectionsTotal.Add(context.Background(), 1, metric.WithAttributes(
			attribute.String("datasource_id", dataSourceID),
		))

		unavailable := ValidateBusinessError(constant.ErrDataSourceUnavailable, constant.MongoCollectionDataSource, dataSourceID)

		if e, ok := unavailable.(ServiceUnavailableError); ok {
			e.Err = err

			return nil, e
		}

		return nil, unavailable
	}

	return result, err
}

// GetState returns the current state of a circuit breaker
func (cbm *CircuitBreakerManager) GetState(dataSourceID string) string {
	cbm.mu.RLock()
	breaker, exists := cbm.breakers[dataSourceID]
	cbm.mu.RUnlock()

	if !exists {
		return "not_initialized"
	}

	switch breaker.State() {
	case gobreaker.StateClosed:
		return constant.CircuitBreakerStateClosed
	case gobreaker.StateOpen:
		return constant.CircuitBreakerStateOpen
	case gobreaker.StateHalfOpen:
		return constant.CircuitBreakerStateHalfOpen
	default:
		return "unknown"
	}
}

// Reset drops the breaker of a data source, e.g. after its connection details change.
func (cbm *CircuitBreakerManager) Reset(dataSourceID string) {
	cbm.mu.Lock()
	defer cbm.mu.Unlock()

	if _, exists := cbm.breakers[dataSourceID]; exists {
		delete(cbm.breakers, dataSourceID)
		cbm.logger.Infof("Circuit breaker reset for data source: %s", dataSourceID)
	}
}

// IsHealthy returns false only while the breaker is open.
func (cbm *CircuitBreakerManager) IsHealthy(dataSourceID string) bool {
	return cbm.GetState(dataSourceID) != constant.CircuitBreakerStateOpen
}
