package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutation and checkout outcomes.
type CartMetrics struct {
	mutations    *prometheus.CounterVec
	loadFailures prometheus.Counter
	checkouts    *prometheus.CounterVec
	cartSize     prometheus.Histogram
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	loadFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_snapshot_load_failures_total",
		Help: "Persisted cart snapshots discarded as malformed.",
	})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_events_total",
		Help: "Checkout lifecycle events by phase.",
	}, []string{"phase"})
	cartSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_line_items",
		Help:    "Line items per cart at mutation time.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})
	reg.MustRegister(mutations, loadFailures, checkouts, cartSize)
	return &CartMetrics{
		mutations:    mutations,
		loadFailures: loadFailures,
		checkouts:    checkouts,
		cartSize:     cartSize,
	}
}

// IncMutation counts one cart mutation for the named operation.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncLoadFailure counts one discarded malformed snapshot.
func (c *CartMetrics) IncLoadFailure() {
	if c == nil || c.loadFailures == nil {
		return
	}
	c.loadFailures.Inc()
}

// IncCheckout counts one checkout lifecycle event.
func (c *CartMetrics) IncCheckout(phase string) {
	if c == nil || c.checkouts == nil {
		return
	}
	c.checkouts.WithLabelValues(normalizeLabel(phase)).Inc()
}

// ObserveCartSize records the line-item count after a mutation.
func (c *CartMetrics) ObserveCartSize(count int) {
	if c == nil || c.cartSize == nil {
		return
	}
	c.cartSize.Observe(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
