package metricsvc

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ericnguyen1274/Customer---App/core"
)

const namespace = "yoga"

// PrometheusMetrics keeps its collectors in its own registry.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	purchases        prometheus.Counter
	purchaseFailures *prometheus.CounterVec
	signIns          *prometheus.CounterVec
	viewDegraded     *prometheus.CounterVec
	viewLoadTime     *prometheus.HistogramVec
}

var _ core.Metrics = (*PrometheusMetrics)(nil)

func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Number of successful course purchases",
		}),
		purchaseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_failures_total",
			Help:      "Number of failed course purchases, by failing step",
		}, []string{"step"}),
		signIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sign_ins_total",
			Help:      "Number of sign-in attempts, by result",
		}, []string{"result"}),
		viewDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_degraded_total",
			Help:      "Number of dataset loads that ended degraded",
		}, []string{"dataset"}),
		viewLoadTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_load_duration_seconds",
			Help:      "Time taken to load a view",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),
	}
	m.registry.MustRegister(
		m.purchases,
		m.purchaseFailures,
		m.signIns,
		m.viewDegraded,
		m.viewLoadTime,
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PrometheusMetrics) PurchaseSucceeded() { m.purchases.Inc() }

func (m *PrometheusMetrics) PurchaseFailed(step string) {
	m.purchaseFailures.WithLabelValues(step).Inc()
}

func (m *PrometheusMetrics) SignIn(result string) {
	m.signIns.WithLabelValues(result).Inc()
}

func (m *PrometheusMetrics) ViewDegraded(dataset string) {
	m.viewDegraded.WithLabelValues(dataset).Inc()
}

func (m *PrometheusMetrics) ObserveViewLoad(view string, took time.Duration) {
	m.viewLoadTime.WithLabelValues(view).Observe(took.Seconds())
}
