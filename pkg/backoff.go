// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/LerianStudio/datagage/pkg/constant"
)

// FullJitter returns a random duration in [0, baseDelay], capped at ProducerMaxBackoff.
// Uses crypto/rand for unbiased distribution.
func FullJitter(baseDelay time.Duration) time.Duration {
	if baseDelay <= 0 {
		return 0
	}

	limit := baseDelay
	if limit > constant.ProducerMaxBackoff {
		limit = constant.ProducerMaxBackoff
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(limit)))
	if err != nil {
		return limit / 2
	}

	return time.Duration(n.Int64())
}

// NextBackoff doubles the current delay, capped at ProducerMaxBackoff.
func NextBackoff(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * constant.ProducerBackoffFactor)
	if next > constant.ProducerMaxBackoff {
		return constant.ProducerMaxBackoff
	}

	return next
}

// RedeliveryBackoff computes the delay before a failed message is requeued:
// min(RetryInitialBackoff * 2^attempt, RetryMaxBackoff) plus up to RetryJitterMax of jitter.
func RedeliveryBackoff(attempt int) time.Duration {
	backoff := constant.RetryInitialBackoff

	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > constant.RetryMaxBackoff {
			backoff = constant.RetryMaxBackoff

			break
		}
	}

	if jitterMax := int64(constant.RetryJitterMax); jitterMax > 0 {
		if n, err := rand.Int(rand.Reader, big.NewInt(jitterMax)); err == nil {
			backoff += time.Duration(n.Int64())
		}
	}

	return backoff
}
