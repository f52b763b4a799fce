// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fileserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace used for Prometheus metrics.
const MetricNamespace = "gostatic"
const MetricSubsystem = "fileserver"

var (
	filesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: MetricSubsystem,
			Name:      "files_served_total",
			Help:      "The number of regular files sent to clients.",
		},
	)
	listingsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: MetricSubsystem,
			Name:      "listings_served_total",
			Help:      "The number of generated directory listings sent to clients.",
		},
	)
	redirectsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: MetricSubsystem,
			Name:      "redirects_total",
			Help:      "The number of trailing slash redirects sent.",
		},
	)
	notFoundSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: MetricSubsystem,
			Name:      "not_found_total",
			Help:      "The number of requests answered with 404.",
		},
	)
	bytesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Subsystem: MetricSubsystem,
			Name:      "response_bytes_total",
			Help:      "The number of body bytes written for files and listings.",
		},
	)
)
