// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package preconsensus

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/avalanche-preconsensus/utils/metric"
)

const (
	voteLabel   = "vote"
	statusLabel = "status"
	reasonLabel = "reason"

	yesVote     = "yes"
	noVote      = "no"
	abstainVote = "abstain"

	unexpectedReason = "unexpected"
	sizeReason       = "size"
	contentReason    = "content"
	signatureReason  = "signature"
)

type metrics struct {
	pollsSent          prometheus.Counter
	pollsFailed        prometheus.Counter
	timedOutInvs       prometheus.Counter
	outstandingQueries prometheus.Gauge
	trackedItems       prometheus.Gauge
	pollDuration       prometheus.Histogram
	votes              *prometheus.CounterVec
	statusUpdates      *prometheus.CounterVec
	invalidResponses   *prometheus.CounterVec
}

func newMetrics(namespace string, reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		pollsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_sent",
			Help:      "Number of polls sent",
		}),
		pollsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_failed",
			Help:      "Number of polls that couldn't be sent to the selected node",
		}),
		timedOutInvs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timed_out_invs",
			Help:      "Number of polled items whose poll wasn't answered in time",
		}),
		outstandingQueries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outstanding_queries",
			Help:      "Number of polls waiting for a response",
		}),
		trackedItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_items",
			Help:      "Number of items being voted on",
		}),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration",
			Help:      "Time between sending a poll and receiving its response (in ms)",
			Buckets:   metric.MillisecondsBuckets,
		}),
		votes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes",
				Help:      "Number of votes received",
			},
			[]string{voteLabel},
		),
		statusUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_updates",
				Help:      "Number of status updates emitted",
			},
			[]string{statusLabel},
		),
		invalidResponses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invalid_responses",
				Help:      "Number of responses that were dropped",
			},
			[]string{reasonLabel},
		),
	}
	for _, vote := range []string{yesVote, noVote, abstainVote} {
		m.votes.WithLabelValues(vote)
	}
	for _, status := range statuses {
		m.statusUpdates.WithLabelValues(status.String())
	}
	for _, reason := range []string{unexpectedReason, sizeReason, contentReason, signatureReason} {
		m.invalidResponses.WithLabelValues(reason)
	}

	err := errors.Join(
		reg.Register(m.pollsSent),
		reg.Register(m.pollsFailed),
		reg.Register(m.timedOutInvs),
		reg.Register(m.outstandingQueries),
		reg.Register(m.trackedItems),
		reg.Register(m.pollDuration),
		reg.Register(m.votes),
		reg.Register(m.statusUpdates),
		reg.Register(m.invalidResponses),
	)
	return m, err
}

func voteOutcome(err uint32) string {
	switch {
	case err == 0:
		return yesVote
	case int32(err) < 0:
		return abstainVote
	default:
		return noVote
	}
}
