package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — счетчики Prometheus бота.
type Metrics struct {
	UpdatesProcessed     prometheus.Counter
	ErrorsTotal          prometheus.Counter
	UpdateProcessingTime prometheus.Histogram
	BetsPlaced           *prometheus.CounterVec
	Registrations        prometheus.Counter
	MatchesCompleted     prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		UpdatesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tote_bot_updates_processed_total",
			Help: "Total number of telegram updates processed",
		}),
		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tote_bot_errors_total",
			Help: "Total number of handler errors and panics",
		}),
		UpdateProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tote_bot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),
		BetsPlaced: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tote_bot_bets_placed_total",
			Help: "Total number of bets placed",
		}, []string{"tournament"}),
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tote_bot_registrations_total",
			Help: "Total number of completed registrations",
		}),
		MatchesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tote_bot_matches_completed_total",
			Help: "Total number of matches flipped to completed by the watcher",
		}),
	}
}
