package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	extractions        *prom.CounterVec
	validationFailures *prom.CounterVec
	simulateDuration   prom.Histogram
	historySize        prom.Gauge
	alerts             *prom.CounterVec
}

// NewPrometheusRecorder constructs Prometheus metrics and registers them on
// reg. Call it once per registry; re-registering panics via MustRegister.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		extractions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mastrena",
			Name:      "extractions_total",
			Help:      "Completed extractions by outcome quality",
		}, []string{"quality"}),
		validationFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mastrena",
			Name:      "validation_failures_total",
			Help:      "Rejected extraction requests by offending field",
		}, []string{"field"}),
		simulateDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mastrena",
			Name:      "simulate_duration_seconds",
			Help:      "Duration of the validate-simulate-append path",
			Buckets:   prom.DefBuckets,
		}),
		historySize: prom.NewGauge(prom.GaugeOpts{
			Namespace: "mastrena",
			Name:      "history_size",
			Help:      "Number of extraction records in the store",
		}),
		alerts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mastrena",
			Name:      "alerts_total",
			Help:      "Generated alerts by severity",
		}, []string{"severity"}),
	}
	reg.MustRegister(pr.extractions, pr.validationFailures, pr.simulateDuration, pr.historySize, pr.alerts)
	return pr
}

func (p *PrometheusRecorder) IncExtraction(quality string) {
	if p == nil || p.extractions == nil {
		return
	}
	p.extractions.WithLabelValues(quality).Inc()
}

func (p *PrometheusRecorder) IncValidationFailure(field string) {
	if p == nil || p.validationFailures == nil {
		return
	}
	p.validationFailures.WithLabelValues(field).Inc()
}

func (p *PrometheusRecorder) ObserveSimulateDuration(d time.Duration) {
	if p == nil || p.simulateDuration == nil {
		return
	}
	p.simulateDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetHistorySize(n int) {
	if p == nil || p.historySize == nil {
		return
	}
	p.historySize.Set(float64(n))
}

func (p *PrometheusRecorder) IncAlert(severity string) {
	if p == nil || p.alerts == nil {
		return
	}
	p.alerts.WithLabelValues(severity).Inc()
}
