// Package metrics exposes billing and quota counters to prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Quota check results.
const (
	ResultAllowed = "allowed"
	ResultDenied  = "denied"
)

// BillingMetrics records quota decisions and subscription lifecycle transitions.
type BillingMetrics struct {
	registry *prometheus.Registry

	quotaChecks            *prometheus.CounterVec
	ordersCreated          *prometheus.CounterVec
	subscriptionsActivated *prometheus.CounterVec
	subscriptionsExpired   prometheus.Counter
	planFallbacks          prometheus.Counter
}

// NewBillingMetrics registers the billing collectors on a fresh registry
// together with the Go runtime and process collectors.
func NewBillingMetrics() *BillingMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &BillingMetrics{
		registry: registry,
		quotaChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskmanager_quota_checks_total",
				Help: "Quota checks by resource and result",
			},
			[]string{"resource", "result"},
		),
		ordersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskmanager_orders_created_total",
				Help: "Checkout orders created by plan, including free activations",
			},
			[]string{"plan", "free"},
		),
		subscriptionsActivated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskmanager_subscriptions_activated_total",
				Help: "Subscriptions activated by plan",
			},
			[]string{"plan"},
		),
		subscriptionsExpired: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "taskmanager_subscriptions_expired_total",
				Help: "Subscriptions marked expired by the sweeper",
			},
		),
		planFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "taskmanager_entitlement_free_fallbacks_total",
				Help: "Entitlement resolutions that fell back to the free plan",
			},
		),
	}
}

func (m *BillingMetrics) QuotaChecked(resource string, allowed bool) {
	result := ResultAllowed
	if !allowed {
		result = ResultDenied
	}
	m.quotaChecks.WithLabelValues(resource, result).Inc()
}

func (m *BillingMetrics) OrderCreated(plan string, free bool) {
	label := "false"
	if free {
		label = "true"
	}
	m.ordersCreated.WithLabelValues(plan, label).Inc()
}

func (m *BillingMetrics) SubscriptionActivated(plan string) {
	m.subscriptionsActivated.WithLabelValues(plan).Inc()
}

func (m *BillingMetrics) SubscriptionsExpired(n int) {
	m.subscriptionsExpired.Add(float64(n))
}

func (m *BillingMetrics) FellBackToFree() {
	m.planFallbacks.Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *BillingMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *BillingMetrics) Registry() *prometheus.Registry {
	return m.registry
}
