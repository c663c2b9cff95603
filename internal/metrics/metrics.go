// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics exposes prometheus collectors for the voting core's
// endpoints, grouped the way the consensus engine's metrics package
// registers one collector set per concern.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voteguard"

// Metrics holds every collector the core registers.
type Metrics struct {
	SignRequests   *prometheus.CounterVec
	SubmitRequests *prometheus.CounterVec
	TallyDuration  prometheus.Histogram
	DigestDuration prometheus.Histogram
}

// New constructs and registers the core's collectors against reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		SignRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sign_requests_total",
			Help:      "Blind-sign requests, labeled by outcome.",
		}, []string{"outcome"}),
		SubmitRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submit_requests_total",
			Help:      "Ballot submission requests, labeled by outcome.",
		}, []string{"outcome"}),
		TallyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tally_duration_seconds",
			Help:      "Time to compute an election's tally.",
			Buckets:   prometheus.DefBuckets,
		}),
		DigestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "digest_duration_seconds",
			Help:      "Time to stream an election's urn digest.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.SignRequests, m.SubmitRequests, m.TallyDuration, m.DigestDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Outcome labels used across SignRequests and SubmitRequests.
const (
	OutcomeSuccess    = "success"
	OutcomeRetry      = "retry"
	OutcomeBadRequest = "bad_request"
	OutcomeForbidden  = "forbidden"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)
