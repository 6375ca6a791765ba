// Package metrics holds Prometheus instruments used across the dashboard
// core.  All collectors are registered with the global registry, so
// serving promhttp.Handler() in main is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_reports_total",
			Help: "Reports handed to the severity logger, by severity and kind.",
		},
		[]string{"severity", "kind"},
	)

	ConfigResolutionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_config_resolutions_total",
			Help: "Cumulative number of successful configuration resolutions.",
		})

	ConfigResolveErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_config_resolve_errors_total",
			Help: "Cumulative number of failed configuration resolutions.",
		})

	ValidationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_config_validation_failures_total",
			Help: "Cumulative number of validation passes that returned a fatal error.",
		})
)

func init() {
	prometheus.MustRegister(
		ReportsTotal,
		ConfigResolutionsTotal,
		ConfigResolveErrorsTotal,
		ValidationFailuresTotal,
	)
}
