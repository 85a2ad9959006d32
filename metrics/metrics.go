package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the planner's Prometheus instruments on a private registry.
type Collector struct {
	reg *prometheus.Registry

	PlansTotal   *prometheus.CounterVec // outcome label: found|no_route|no_schedule|error
	PlanDuration prometheus.Histogram
	Transfers    prometheus.Histogram

	ScheduleStops prometheus.Gauge
	ScheduleTrips prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		PlansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_plans_total",
			Help: "Journey planning calls by outcome.",
		}, []string{"outcome"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_plan_duration_seconds",
			Help:    "Duration of one journey planning call.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		Transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_journey_transfers",
			Help:    "Transfers in returned journeys.",
			Buckets: []float64{0, 1, 2},
		}),
		ScheduleStops: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_schedule_stops",
			Help: "Stops in the loaded schedule snapshot.",
		}),
		ScheduleTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_schedule_trips",
			Help: "Trips in the loaded schedule snapshot.",
		}),
	}

	reg.MustRegister(c.PlansTotal, c.PlanDuration, c.Transfers, c.ScheduleStops, c.ScheduleTrips)
	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
