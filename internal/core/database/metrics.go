package database

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"urbanvibe-api/internal/domain"
)

var queryLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "store_query_duration_seconds",
		Help:    "Latency of logical store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "outcome"},
)

func init() { prometheus.MustRegister(queryLatency) }

// Observe records one logical store operation started at start.
func Observe(op string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		outcome = "not_found"
	case IsUnavailable(err):
		outcome = "unavailable"
	default:
		outcome = "error"
	}
	queryLatency.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

// RegisterPoolMetrics exports database/sql pool statistics under dbName.
func RegisterPoolMetrics(reg prometheus.Registerer, db *gorm.DB, dbName string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return reg.Register(collectors.NewDBStatsCollector(sqlDB, dbName))
}
