package metrics

import "github.com/prometheus/client_golang/prometheus"

// NotifierMetrics counts webhook deliveries by outcome.
type NotifierMetrics struct {
	deliveries *prometheus.CounterVec
	queueDepth prometheus.Gauge
}

func NewNotifierMetrics(reg prometheus.Registerer) *NotifierMetrics {
	if reg == nil {
		return &NotifierMetrics{}
	}
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifier_deliveries_total",
		Help:      "Webhook notifications by outcome.",
	}, []string{"outcome"})
	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifier_queue_depth",
		Help:      "Notifications waiting for a worker.",
	})
	reg.MustRegister(deliveries, queueDepth)
	return &NotifierMetrics{deliveries: deliveries, queueDepth: queueDepth}
}

func (n *NotifierMetrics) Delivered() { n.inc("delivered") }

func (n *NotifierMetrics) Failed() { n.inc("failed") }

func (n *NotifierMetrics) Dropped() { n.inc("dropped") }

func (n *NotifierMetrics) SetQueueDepth(depth int) {
	if n == nil || n.queueDepth == nil {
		return
	}
	n.queueDepth.Set(float64(depth))
}

func (n *NotifierMetrics) inc(outcome string) {
	if n == nil || n.deliveries == nil {
		return
	}
	n.deliveries.WithLabelValues(outcome).Inc()
}
