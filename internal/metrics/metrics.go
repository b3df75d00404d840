package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	eventsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_created_total",
			Help: "Total number of events created",
		},
		[]string{"type"},
	)

	registrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_registrations_total",
			Help: "Total number of registration attempts",
		},
		[]string{"result"}, // success, full, closed, not-found, error
	)

	activitiesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activities_logged_total",
			Help: "Total number of user activities logged",
		},
		[]string{"type"},
	)

	eventsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "events_by_status",
			Help: "Number of events by status",
		},
		[]string{"status"},
	)

	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var once sync.Once

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(eventsCreatedTotal)
	prometheus.MustRegister(registrationsTotal)
	prometheus.MustRegister(activitiesTotal)
	prometheus.MustRegister(eventsByStatus)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)

	once.Do(func() {
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest records one handled HTTP request.
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordEventCreated records one created event.
func RecordEventCreated(eventType string) {
	eventsCreatedTotal.WithLabelValues(eventType).Inc()
}

// RecordRegistration records one registration attempt by outcome.
func RecordRegistration(result string) {
	registrationsTotal.WithLabelValues(result).Inc()
}

// RecordActivity records one logged user activity.
func RecordActivity(activityType string) {
	activitiesTotal.WithLabelValues(activityType).Inc()
}

// UpdateEventsByStatus refreshes the per-status event gauge.
func UpdateEventsByStatus(status string, count float64) {
	eventsByStatus.WithLabelValues(status).Set(count)
}

// UpdateDatabaseConnections refreshes the connection pool gauges.
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.OpenConnections - stats.Idle))
	databaseConnectionsIdle.Set(float64(stats.Idle))

	return nil
}
