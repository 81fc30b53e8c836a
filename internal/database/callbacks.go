package database

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// startTimeKey is the per-statement instance key holding the query start time.
const startTimeKey = "metrics:start_time"

// MetricsRecorder receives query timings and pool stats from the GORM hooks.
// *metrics.Metrics satisfies it.
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats sql.DBStats)
}

// RegisterMetricsCallbacks instruments the portal's GORM session so every
// query against partner_agencies, premium_projects and the rest of the
// schema reports its duration and outcome, labeled by operation and table.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	start := func(db *gorm.DB) {
		db.InstanceSet(startTimeKey, time.Now())
	}

	finish := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			begin, ok := db.InstanceGet(startTimeKey)
			if !ok {
				return
			}
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBQuery(operation, table, time.Since(begin.(time.Time)), db.Error)
		}
	}

	db.Callback().Query().Before("gorm:query").Register("metrics:query_before", start)
	db.Callback().Query().After("gorm:query").Register("metrics:query_after", finish("select"))

	db.Callback().Create().Before("gorm:create").Register("metrics:create_before", start)
	db.Callback().Create().After("gorm:create").Register("metrics:create_after", finish("insert"))

	db.Callback().Update().Before("gorm:update").Register("metrics:update_before", start)
	db.Callback().Update().After("gorm:update").Register("metrics:update_after", finish("update"))

	db.Callback().Delete().Before("gorm:delete").Register("metrics:delete_before", start)
	db.Callback().Delete().After("gorm:delete").Register("metrics:delete_after", finish("delete"))
}

// StartDBStatsCollector reports connection pool stats every 15 seconds
// until the returned channel is closed.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
