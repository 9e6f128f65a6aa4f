// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus collectors for the leaderboard
// service and the live feed.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "click"

type Metrics struct {
	registry *prometheus.Registry

	sessionsRecorded prometheus.Counter
	sessionClicks    prometheus.Counter
	sessionsRejected *prometheus.CounterVec
	saveFailures     prometheus.Counter
	participants     prometheus.Gauge
	feedSubscribers  prometheus.Gauge
}

// New registers every collector on a fresh registry, together with the
// Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_recorded_total",
			Help:      "Session results accepted by the leaderboard.",
		}),
		sessionClicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_clicks_total",
			Help:      "Clicks contained in accepted session results.",
		}),
		sessionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_rejected_total",
			Help:      "Session results rejected by validation.",
		}, []string{"reason"}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_save_failures_total",
			Help:      "Failed writes to the durable store.",
		}),
		participants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "participants",
			Help:      "Participants with at least one recorded session.",
		}),
		feedSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_subscribers",
			Help:      "Open live leaderboard connections.",
		}),
	}

	m.registry.MustRegister(
		m.sessionsRecorded,
		m.sessionClicks,
		m.sessionsRejected,
		m.saveFailures,
		m.participants,
		m.feedSubscribers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) SessionRecorded(clicks int) {
	m.sessionsRecorded.Inc()
	m.sessionClicks.Add(float64(clicks))
}

func (m *Metrics) SessionRejected(reason string) {
	m.sessionsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) StoreSaveFailed() {
	m.saveFailures.Inc()
}

func (m *Metrics) Participants(n int) {
	m.participants.Set(float64(n))
}

func (m *Metrics) FeedSubscribers(delta int) {
	m.feedSubscribers.Add(float64(delta))
}
