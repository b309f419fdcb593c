// Package metrics exposes Prometheus counters for CMS round-trips and
// operator-facing notifications.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	Fetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmsadmin_fetch_total",
			Help: "Collection loads against the CMS, by entity and result",
		},
		[]string{"entity", "result"},
	)
	Mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmsadmin_mutation_total",
			Help: "Create/update/delete round-trips, by entity, operation and result",
		},
		[]string{"entity", "op", "result"},
	)
	Uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmsadmin_upload_total",
			Help: "File uploads to the CMS upload service, by result",
		},
		[]string{"result"},
	)
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmsadmin_notifications_total",
			Help: "Notifications surfaced to operators, by variant",
		},
		[]string{"variant"},
	)
	OpenScreens = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cmsadmin_open_screens",
			Help: "List screens currently open",
		},
	)
)

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
