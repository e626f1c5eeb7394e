// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"sync"
	"time"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
)

// tickerFactory is replaced in tests.
var tickerFactory = newRealTicker

func newRealTicker() (<-chan time.Time, func()) {
	t := time.NewTicker(constant.ConnectionMonitorInterval)
	return t.C, t.Stop
}

// RabbitMQMonitor restores the producer connection in the background, so a
// schema refresh request after a broker restart does not pay for the reconnect.
type RabbitMQMonitor struct {
	conn     *libRabbitmq.RabbitMQConnection
	logger   log.Logger
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewRabbitMQMonitor creates a monitor for conn. Nothing runs until Start.
func NewRabbitMQMonitor(conn *libRabbitmq.RabbitMQConnection, logger log.Logger) *RabbitMQMonitor {
	return &RabbitMQMonitor{
		conn:   conn,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start checks the connection every ConnectionMonitorInterval until Stop is called.
func (m *RabbitMQMonitor) Start() {
	pkg.GoNamed(m.logger, "rabbitmq-monitor", m.monitorLoop)
}

// Stop ends the loop and waits for it. Calling it more than once is safe.
func (m *RabbitMQMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done
}

func (m *RabbitMQMonitor) monitorLoop() {
	defer close(m.done)

	tickCh, stopTicker := tickerFactory()
	defer stopTicker()

	for {
		select {
		case <-m.stop:
			m.logger.Info("RabbitMQ connection monitor stopped")

			return
		case <-tickCh:
			m.checkAndReconnect()
		}
	}
}

func (m *RabbitMQMonitor) isConnectionAlive() bool {
	if m.conn == nil || !m.conn.Connected {
		return false
	}

	return m.conn.Connection != nil && !m.conn.Connection.IsClosed()
}

func (m *RabbitMQMonitor) checkAndReconnect() {
	if m.conn == nil || m.isConnectionAlive() {
		return
	}

	m.logger.Warn("RabbitMQ connection lost, reconnecting")

	if err := m.conn.EnsureChannel(); err != nil {
		m.logger.Errorf("RabbitMQ reconnection failed: %v (next attempt in %v)", err, constant.ConnectionMonitorInterval)

		return
	}

	m.logger.Info("RabbitMQ connection restored")
}
