// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is used by the services and the HTTP adapter to report events.
type Recorder interface {
	RecordUserRegistered()
	RecordMeasurement(category string)
	RecordRejectedInput(reason string)
	RecordHTTPStatus(statusCode int)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	usersRegistered prometheus.Counter
	measurements    *prometheus.CounterVec
	rejectedInputs  *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		usersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bmitracker_users_registered_total",
			Help: "Number of users registered.",
		}),
		measurements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bmitracker_measurements_recorded_total",
			Help: "Number of BMI measurements recorded, by category.",
		}, []string{"category"}),
		rejectedInputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bmitracker_rejected_inputs_total",
			Help: "Number of measurement or registration requests rejected as invalid.",
		}, []string{"reason"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bmitracker_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.usersRegistered,
		c.measurements,
		c.rejectedInputs,
		c.httpStatus,
	)

	return c
}

// RecordUserRegistered counts a successful registration.
func (c *Collector) RecordUserRegistered() {
	c.usersRegistered.Inc()
}

// RecordMeasurement counts a stored measurement.
func (c *Collector) RecordMeasurement(category string) {
	c.measurements.WithLabelValues(category).Inc()
}

// RecordRejectedInput counts a rejected request.
func (c *Collector) RecordRejectedInput(reason string) {
	c.rejectedInputs.WithLabelValues(reason).Inc()
}

// RecordHTTPStatus counts a response status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the HTTP handler serving the scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordUserRegistered()      {}
func (Nop) RecordMeasurement(string)   {}
func (Nop) RecordRejectedInput(string) {}
func (Nop) RecordHTTPStatus(int)       {}

var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)
