// Package metrics exposes Prometheus metrics for allocation runs and the
// configuration store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the service
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// SeatsDemanded is the number of invigilator seats the last run had to fill.
var SeatsDemanded = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allotment",
	Name:      "seats_demanded",
	Help:      "Invigilator seats required across all dates in the last allocation run",
})

// SeatsAssigned is the number of seats the last run filled.
var SeatsAssigned = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allotment",
	Name:      "seats_assigned",
	Help:      "Invigilator seats filled in the last allocation run",
})

// SeatsUnmet is demanded minus assigned for the last run.
var SeatsUnmet = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allotment",
	Name:      "seats_unmet",
	Help:      "Invigilator seats left empty because the pool ran out of eligible staff",
})

// ShortRooms counts rooms left short in the last run.
var ShortRooms = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "allotment",
	Name:      "short_rooms",
	Help:      "Rooms that received fewer staff than required in the last allocation run",
})

// RunsTotal counts allocation runs.
var RunsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "allotment",
	Name:      "runs_total",
	Help:      "Total allocation runs",
})

// RunDurationSeconds tracks time to allocate every configured date.
var RunDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "allotment",
	Name:      "duration_seconds",
	Help:      "Time taken to allocate staff for all configured dates",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// StoreErrorsTotal counts backing store failures by operation.
var StoreErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "allotment",
	Name:      "store_errors_total",
	Help:      "Backing store failures by operation",
}, []string{"op"})

// ResetRunGauges clears the per-run gauges before a new allocation run.
func ResetRunGauges() {
	SeatsDemanded.Set(0)
	SeatsAssigned.Set(0)
	SeatsUnmet.Set(0)
	ShortRooms.Set(0)
}
