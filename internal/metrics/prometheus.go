package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meetscribe_runs_total",
		Help: "Total number of pipeline runs, by status",
	}, []string{"status"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "meetscribe_stage_duration_seconds",
		Help:    "Duration of each pipeline stage",
		Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600, 1800},
	}, []string{"stage"})

	FramesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meetscribe_frames_scanned_total",
		Help: "Total number of frames compared by the scene scanner",
	})

	SceneEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meetscribe_scene_events_total",
		Help: "Total number of scene-change events emitted",
	})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "meetscribe_scan_duration_seconds",
		Help:    "Duration of a single scene scan",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	})

	ScanRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meetscribe_scan_retries_total",
		Help: "Scans repeated with a lowered threshold after finding no events",
	})

	AcquisitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meetscribe_acquisitions_total",
		Help: "Video acquisitions, by source kind and status",
	}, []string{"kind", "status"})

	ActiveRuns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "meetscribe_active_runs",
		Help: "Number of pipeline runs currently in progress",
	})
)
