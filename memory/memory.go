// Package memory provides an in-process implementation of the domain
// service interfaces. It backs local development and tests, and is selected
// at wiring time by STORE_PROVIDER=memory; business logic never branches on
// the backend.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
)

// Store holds all persisted entities behind a single lock and exposes the
// domain services. Reads and writes copy records so callers can never
// mutate stored state through a returned pointer.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	seq int64

	facilities  map[uuid.UUID]*facilityRecord
	templates   map[uuid.UUID]*templateRecord
	inspections map[uuid.UUID]*inspectionRecord
	users       map[uuid.UUID]*userRecord
	sessions    map[string]*safecheck.Session

	// Domain services (initialized in NewStore)
	FacilityService   safecheck.FacilityService
	TemplateService   safecheck.TemplateService
	InspectionService safecheck.InspectionService
	UserService       safecheck.UserService
	SessionService    safecheck.SessionService
}

type facilityRecord struct {
	facility safecheck.Facility
	seq      int64
}

type templateRecord struct {
	template safecheck.Template
	seq      int64
}

type inspectionRecord struct {
	inspection safecheck.Inspection
	seq        int64
}

type userRecord struct {
	user         safecheck.User
	passwordHash string
	seq          int64
}

// NewStore creates an empty in-memory store with all services initialized.
func NewStore() *Store {
	s := &Store{
		now:         time.Now,
		facilities:  make(map[uuid.UUID]*facilityRecord),
		templates:   make(map[uuid.UUID]*templateRecord),
		inspections: make(map[uuid.UUID]*inspectionRecord),
		users:       make(map[uuid.UUID]*userRecord),
		sessions:    make(map[string]*safecheck.Session),
	}
	s.FacilityService = &FacilityService{store: s}
	s.TemplateService = &TemplateService{store: s}
	s.InspectionService = &InspectionService{store: s}
	s.UserService = &UserService{store: s}
	s.SessionService = &SessionService{store: s}
	return s
}

// SetNowFunc overrides the clock, for tests.
func (s *Store) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// nextSeq must be called with the lock held. The sequence breaks ordering
// ties between records created within the same clock tick.
func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// paginate applies offset/limit in memory, mirroring the postgres services.
func paginate[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// sortByCreatedDesc orders newest-first with the insertion sequence as the
// tie breaker.
func sortByCreatedDesc[T any](items []T, key func(T) (time.Time, int64)) {
	sort.SliceStable(items, func(i, j int) bool {
		at, as := key(items[i])
		bt, bs := key(items[j])
		if at.Equal(bt) {
			return as > bs
		}
		return at.After(bt)
	})
}
