package visits

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicops/pt-followup/internal/observability/metrics"
	"github.com/clinicops/pt-followup/pkg/logging"
)

// SyncGateway is the persistence contract the service depends on. Satisfied
// by both gateway implementations (remote sheets, local cache).
type SyncGateway interface {
	FetchAll(ctx context.Context) ([]VisitRecord, error)
	AddVisit(ctx context.Context, record VisitRecord) error
	UpdateVisit(ctx context.Context, record VisitRecord) error
	DeleteVisit(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}

// FallbackCache is the local snapshot store written after every successful
// local mutation and read when the gateway is unreachable. Optional.
type FallbackCache interface {
	SaveRecords(ctx context.Context, records []VisitRecord) error
	LoadRecords(ctx context.Context) ([]VisitRecord, error)
	Clear(ctx context.Context) error
}

// Sources reported by Load.
const (
	SourceRemote = "remote"
	SourceCache  = "cache"
	SourceMemory = "memory"
)

// Service owns the visit record lifecycle: validation, local commit,
// best-effort remote sync, fallback cache upkeep. Local state mutates first
// and stays consistent regardless of remote latency or failure; the user is
// never blocked by connectivity.
type Service struct {
	store   *Store
	gateway SyncGateway
	cache   FallbackCache
	logger  *logging.Logger
	metrics *metrics.VisitMetrics
	now     func() time.Time
}

// NewService creates the visit service. gw, cache and m may be nil.
func NewService(store *Store, gw SyncGateway, cache FallbackCache, logger *logging.Logger, m *metrics.VisitMetrics) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:   store,
		gateway: gw,
		cache:   cache,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Store exposes the record store for read-only snapshots.
func (s *Service) Store() *Store {
	return s.store
}

// Load pulls the authoritative record list through the gateway. On failure it
// falls back to the cache; an empty in-memory list is the last resort. The
// returned source names where the records came from.
func (s *Service) Load(ctx context.Context) (string, error) {
	records, err := s.fetchAll(ctx)
	if err == nil {
		s.store.Replace(records)
		s.writeCache(ctx)
		return SourceRemote, nil
	}

	s.logger.Warn("gateway fetch failed, falling back to cache", "error", err)
	s.metrics.ObserveFallbackRead()

	if s.cache != nil {
		cached, cerr := s.cache.LoadRecords(ctx)
		if cerr == nil {
			s.store.Replace(cached)
			return SourceCache, nil
		}
		s.logger.Warn("cache read failed", "error", cerr)
	}
	return SourceMemory, err
}

// RecordResult is what a successful submission reports back to the form.
type RecordResult struct {
	Record          VisitRecord `json:"record"`
	TotalTabletDays int         `json:"totalTabletDays"`
	Synced          bool        `json:"synced"`
}

// Record validates a submission, commits it locally and syncs it out. A
// failed remote sync leaves the optimistic local commit in place and reports
// Synced=false. TotalTabletDays is the patient's new cumulative total.
func (s *Service) Record(ctx context.Context, req *CreateVisitRequest) (*RecordResult, error) {
	visit, next, err := req.parseDates()
	if err != nil {
		return nil, err
	}

	record := VisitRecord{
		ID:            uuid.NewString(),
		RegNumber:     strings.TrimSpace(req.RegNumber),
		VisitDate:     visit,
		NextVisitDate: next,
		TabletDays:    TabletDays(visit, next),
		RecordedAt:    s.now().UTC(),
	}

	s.store.Add(record)
	s.metrics.ObserveVisitRecorded()

	synced := s.sync(ctx, ActionAdd, func() error {
		return s.gateway.AddVisit(ctx, record)
	})
	s.writeCache(ctx)

	return &RecordResult{
		Record:          record,
		TotalTabletDays: s.totalTabletDaysFor(record.RegNumber),
		Synced:          synced,
	}, nil
}

// ToggleCompleted flips a record's follow-up state. An unknown id is logged
// and leaves observable state unchanged: the UI only ever references ids it
// already holds.
func (s *Service) ToggleCompleted(ctx context.Context, id string) (VisitRecord, error) {
	record, err := s.store.Toggle(id, s.now().UTC())
	if err != nil {
		s.logger.Warn("toggle on unknown visit", "id", id)
		return VisitRecord{}, err
	}

	s.sync(ctx, ActionUpdate, func() error {
		return s.gateway.UpdateVisit(ctx, record)
	})
	s.writeCache(ctx)
	return record, nil
}

// Delete removes a record. When the last record goes, the fallback cache is
// cleared entirely rather than left holding an empty list.
func (s *Service) Delete(ctx context.Context, id string) error {
	empty, err := s.store.Delete(id)
	if err != nil {
		s.logger.Warn("delete on unknown visit", "id", id)
		return err
	}

	s.sync(ctx, ActionDelete, func() error {
		return s.gateway.DeleteVisit(ctx, id)
	})

	if empty {
		s.clearCache(ctx)
		return nil
	}
	s.writeCache(ctx)
	return nil
}

// ClearAll removes every record everywhere. Irreversible; callers gate it
// behind their own confirmation.
func (s *Service) ClearAll(ctx context.Context) {
	s.store.ClearAll()
	s.sync(ctx, ActionClear, func() error {
		return s.gateway.ClearAll(ctx)
	})
	s.clearCache(ctx)
}

// PreviewResult is the live tablet-day feedback shown before submit.
type PreviewResult struct {
	TabletDays      int  `json:"tabletDays"`
	NewTotal        int  `json:"newTotal"`
	ExistingPatient bool `json:"existingPatient"`
}

// Preview computes tablet days for a pair of dates without touching the
// store. The registration number is optional; when known, the running total
// includes the would-be dispensation.
func (s *Service) Preview(regNumber, visitDate, nextVisitDate string) (*PreviewResult, error) {
	visit, err := time.Parse(DateLayout, visitDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	next, err := time.Parse(DateLayout, nextVisitDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	days := TabletDays(visit, next)
	result := &PreviewResult{TabletDays: days, NewTotal: days}
	if strings.TrimSpace(regNumber) != "" {
		current := s.totalTabletDaysFor(regNumber)
		result.NewTotal = current + days
		result.ExistingPatient = current > 0
	}
	return result, nil
}

// Gateway action names used for metrics labels.
const (
	ActionAdd    = "addVisit"
	ActionUpdate = "updateVisit"
	ActionDelete = "deleteVisit"
	ActionClear  = "clearAllData"
	ActionFetch  = "getAllVisits"
)

// sync runs one mutating gateway call and, on success, re-fetches the
// authoritative list so local state converges with the remote copy. No
// retries; a failure downgrades to local-only for this operation.
func (s *Service) sync(ctx context.Context, action string, call func() error) bool {
	if s.gateway == nil {
		return false
	}
	start := s.now()
	err := call()
	s.metrics.ObserveGatewayLatency(action, time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveGatewayRequest(action, "error")
		s.logger.Warn("gateway sync failed, keeping local state", "action", action, "error", err)
		return false
	}
	s.metrics.ObserveGatewayRequest(action, "ok")

	if records, ferr := s.fetchAll(ctx); ferr == nil {
		s.store.Replace(records)
	} else {
		s.logger.Warn("post-sync refetch failed", "action", action, "error", ferr)
	}
	return true
}

func (s *Service) fetchAll(ctx context.Context) ([]VisitRecord, error) {
	if s.gateway == nil {
		return nil, ErrNoGateway
	}
	start := s.now()
	records, err := s.gateway.FetchAll(ctx)
	s.metrics.ObserveGatewayLatency(ActionFetch, time.Since(start).Seconds())
	if err != nil {
		s.metrics.ObserveGatewayRequest(ActionFetch, "error")
		return nil, err
	}
	s.metrics.ObserveGatewayRequest(ActionFetch, "ok")
	return records, nil
}

func (s *Service) writeCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveRecords(ctx, s.store.Snapshot()); err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
}

func (s *Service) clearCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("cache clear failed", "error", err)
	}
}

func (s *Service) totalTabletDaysFor(regNumber string) int {
	key := CanonicalReg(regNumber)
	total := 0
	for _, rec := range s.store.Snapshot() {
		if CanonicalReg(rec.RegNumber) == key {
			total += rec.TabletDays
		}
	}
	return total
}

// IsNotFound reports whether an error is the silent not-found case.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrVisitNotFound)
}
