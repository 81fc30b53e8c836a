package repository

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the portal schema.
// Tables are created by hand because SQLite has no uuid type and no
// gen_random_uuid(); a create callback fills primary keys instead.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "Failed to connect to test database")

	db.Callback().Create().Before("gorm:create").Register("generate_uuid", func(db *gorm.DB) {
		if db.Statement.Schema != nil {
			for _, field := range db.Statement.Schema.PrimaryFields {
				if field.DataType == "uuid" {
					switch db.Statement.ReflectValue.Kind() {
					case reflect.Slice, reflect.Array:
						for i := 0; i < db.Statement.ReflectValue.Len(); i++ {
							rv := db.Statement.ReflectValue.Index(i)
							fieldValue := field.ReflectValueOf(db.Statement.Context, rv)
							if fieldValue.IsZero() {
								field.Set(db.Statement.Context, rv, uuid.New())
							}
						}
					default:
						fieldValue := field.ReflectValueOf(db.Statement.Context, db.Statement.ReflectValue)
						if fieldValue.IsZero() {
							field.Set(db.Statement.Context, db.Statement.ReflectValue, uuid.New())
						}
					}
				}
			}
		}
	})

	statements := []string{
		`CREATE TABLE partner_agencies (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			name TEXT NOT NULL,
			tier TEXT NOT NULL,
			contact_name TEXT,
			contact_email TEXT,
			contact_phone TEXT,
			active_projects INTEGER NOT NULL DEFAULT 0,
			satisfaction_rating REAL NOT NULL DEFAULT 0,
			churned INTEGER NOT NULL DEFAULT 0,
			churned_at DATETIME
		)`,
		`CREATE TABLE premium_projects (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			title TEXT NOT NULL,
			description TEXT,
			client_name TEXT NOT NULL,
			commercial_admin TEXT,
			value REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'elaborado',
			partner_agency_id TEXT,
			proposal_date DATETIME,
			start_date DATETIME,
			conversion_probability REAL NOT NULL DEFAULT 0,
			satisfaction_score REAL NOT NULL DEFAULT 0,
			churn_risk TEXT NOT NULL DEFAULT 'low'
		)`,
		`CREATE TABLE project_histories (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			action TEXT NOT NULL,
			description TEXT,
			actor_id TEXT NOT NULL,
			actor_name TEXT NOT NULL,
			actor_role TEXT NOT NULL,
			metadata TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE churn_events (
			id TEXT PRIMARY KEY,
			partner_agency_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			date DATETIME NOT NULL,
			affected_projects TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE project_redistributions (
			id TEXT PRIMARY KEY,
			churn_event_id TEXT NOT NULL,
			project_id TEXT NOT NULL,
			from_agency_id TEXT NOT NULL,
			to_agency_id TEXT NOT NULL,
			redistribution_date DATETIME NOT NULL,
			reason TEXT,
			client_notified INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE project_reports (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			project_id TEXT NOT NULL,
			title TEXT NOT NULL,
			file_key TEXT NOT NULL,
			content_type TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			uploaded_by TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error, "Failed to create test table")
	}

	return db
}
