// Package metrics exposes Prometheus instruments for the journey planner.
package metrics
