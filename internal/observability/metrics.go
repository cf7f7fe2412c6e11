package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StudiesFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "efpview_studies_fetches_total",
		Help: "Study list fetches against BAR by genome and result",
	}, []string{"genome", "result"})

	StudiesFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "efpview_studies_fetch_duration_seconds",
		Help:    "Duration of study list fetches",
		Buckets: prometheus.DefBuckets,
	}, []string{"genome"})

	ImageProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "efpview_image_probes_total",
		Help: "eFP image loads by result",
	}, []string{"result"})

	WidgetsMounted = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "efpview_widgets_mounted",
		Help: "Number of live widget instances",
	})
)
