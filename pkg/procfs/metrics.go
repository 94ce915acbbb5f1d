package procfs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proctab_scans_total",
			Help: "Total number of process-table scans",
		},
	)

	scanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "proctab_scan_duration_seconds",
			Help:    "Duration of one full process-table scan in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	recordsScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proctab_records_scanned_total",
			Help: "Total number of process records returned by scans",
		},
	)

	recordsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proctab_records_dropped_total",
			Help: "Total number of enumerated entries dropped mid-scan (vanished or unparseable)",
		},
	)
)
