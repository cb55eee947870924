// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	methodLabel = "method"
	reasonLabel = "reason"
)

var (
	_ Metrics = (*metricsImpl)(nil)
	_ Metrics = noop{}
)

type Metrics interface {
	// MarkExecuted records a successful execute call.
	MarkExecuted(method string)
	// MarkRejected records a failed execute call.
	MarkRejected(method, reason string)
	// MarkPurchase records a completed purchase.
	MarkPurchase(usd, tokens *uint256.Int, tier uint32)
}

type metricsImpl struct {
	executions *prometheus.CounterVec
	rejections *prometheus.CounterVec
	purchases  prometheus.Counter
	usdSold    prometheus.Counter
	tokensSold prometheus.Counter
	tier       prometheus.Gauge
}

// New returns metrics registered on [registerer].
func New(namespace string, registerer prometheus.Registerer) (Metrics, error) {
	m := &metricsImpl{
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions",
			Help:      "number of successful execute calls",
		}, []string{methodLabel}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections",
			Help:      "number of failed execute calls",
		}, []string{methodLabel, reasonLabel}),
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases",
			Help:      "number of completed purchases",
		}),
		usdSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usd_sold",
			Help:      "micro-USD received by completed purchases",
		}),
		tokensSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_sold",
			Help:      "base units of the native token paid out by completed purchases",
		}),
		tier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_tier",
			Help:      "pricing tier of the last completed purchase",
		}),
	}

	err := errors.Join(
		registerer.Register(m.executions),
		registerer.Register(m.rejections),
		registerer.Register(m.purchases),
		registerer.Register(m.usdSold),
		registerer.Register(m.tokensSold),
		registerer.Register(m.tier),
	)
	return m, err
}

func (m *metricsImpl) MarkExecuted(method string) {
	m.executions.WithLabelValues(method).Inc()
}

func (m *metricsImpl) MarkRejected(method, reason string) {
	m.rejections.WithLabelValues(method, reason).Inc()
}

func (m *metricsImpl) MarkPurchase(usd, tokens *uint256.Int, tier uint32) {
	m.purchases.Inc()
	m.usdSold.Add(toFloat(usd))
	m.tokensSold.Add(toFloat(tokens))
	m.tier.Set(float64(tier))
}

func toFloat(x *uint256.Int) float64 {
	f, _ := new(big.Float).SetInt(x.ToBig()).Float64()
	return f
}

// NewNoOp returns metrics that record nothing.
func NewNoOp() Metrics {
	return noop{}
}

type noop struct{}

func (noop) MarkExecuted(string) {}

func (noop) MarkRejected(string, string) {}

func (noop) MarkPurchase(*uint256.Int, *uint256.Int, uint32) {}
