// Package postgres provides PostgreSQL implementations of domain service interfaces.
package postgres

import (
	"github.com/fieldsafe/safecheck"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the database connection pool and exposes domain services.
type DB struct {
	pool *pgxpool.Pool

	// Domain services (initialized in NewDB)
	FacilityService   safecheck.FacilityService
	TemplateService   safecheck.TemplateService
	InspectionService safecheck.InspectionService
	UserService       safecheck.UserService
	SessionService    safecheck.SessionService
}

// NewDB creates a new database wrapper with all services initialized.
func NewDB(pool *pgxpool.Pool) *DB {
	db := &DB{pool: pool}

	// Initialize services with reference back to DB
	db.FacilityService = &FacilityService{db: db}
	db.TemplateService = &TemplateService{db: db}
	db.InspectionService = &InspectionService{db: db}
	db.UserService = &UserService{db: db}
	db.SessionService = &SessionService{db: db}

	return db
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer using service methods.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}
