// Package metrics 定義查詢服務的 Prometheus 指標
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "eventmap"

type Metrics struct {
	Queries        *prometheus.CounterVec
	RejectedParams *prometheus.CounterVec
	ResultSize     *prometheus.HistogramVec
	VenueLookups   *prometheus.CounterVec
	VenueCache     *prometheus.CounterVec
}

// New 建立並註冊所有指標；reg 為 nil 時只建立不註冊
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Event queries by operation and outcome",
		}, []string{"operation", "outcome"}),
		RejectedParams: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_params_total",
			Help:      "Query parameters rejected by the lenient parser; the affected filter is disabled",
		}, []string{"param"}),
		ResultSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_result_size",
			Help:      "Number of events returned per list query",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		}, []string{"operation"}),
		VenueLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "venue_lookups_total",
			Help:      "Venue resolutions during projection by outcome",
		}, []string{"outcome"}),
		VenueCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "venue_cache_total",
			Help:      "Venue cache lookups by result",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Queries, m.RejectedParams, m.ResultSize, m.VenueLookups, m.VenueCache)
	}
	return m
}
