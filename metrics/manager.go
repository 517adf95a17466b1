package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterNotificationsScheduled *prometheus.CounterVec
	CounterScheduleFailures       *prometheus.CounterVec
	CounterNotificationsCancelled prometheus.Counter
	CounterPermissionDenied       prometheus.Counter
	CounterRestCompleted          *prometheus.CounterVec
	CounterReconciles             *prometheus.CounterVec

	// gauges
	GaugePendingNotifications prometheus.Gauge
	GaugeBackgroundGuards     prometheus.Gauge

	// histograms
	HistScheduleDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("lifted", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("lifted", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterScheduled := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "notifications_scheduled",
		Help:      "The total number of rest notifications scheduled, by strategy",
	}, []string{"strategy"})
	counterScheduleFailures := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "notification_schedule_failures",
		Help:      "The total number of failed schedule attempts, by strategy",
	}, []string{"strategy"})
	counterCancelled := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "notifications_cancelled",
		Help:      "The total number of pending notifications cancelled",
	})
	counterPermissionDenied := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "notification_permission_denied",
		Help:      "The total number of schedules skipped for lack of permission",
	})
	counterRestCompleted := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rest_completed",
		Help:      "The total number of rest countdowns that ended, by reason",
	}, []string{"reason"})
	counterReconciles := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "lifecycle_transitions",
		Help:      "The total number of foreground/background transitions handled",
	}, []string{"state"})

	gaugePending := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pending_notifications",
		Help:      "Current number of scheduled notifications not yet cancelled or released",
	})
	gaugeGuards := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "background_guards",
		Help:      "Current number of held background execution guards",
	})

	histScheduleDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "notification_schedule_duration_seconds",
		Help:      "Duration of a schedule call including permission checks, in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	})

	return &Manager{
		CounterNotificationsScheduled: counterScheduled,
		CounterScheduleFailures:       counterScheduleFailures,
		CounterNotificationsCancelled: counterCancelled,
		CounterPermissionDenied:       counterPermissionDenied,
		CounterRestCompleted:          counterRestCompleted,
		CounterReconciles:             counterReconciles,
		GaugePendingNotifications:     gaugePending,
		GaugeBackgroundGuards:         gaugeGuards,
		HistScheduleDuration:          histScheduleDuration,
	}
}
