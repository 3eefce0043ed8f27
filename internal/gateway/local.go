package gateway

import (
	"context"

	"github.com/clinicops/pt-followup/internal/visits"
)

// LocalGateway is the Gateway implementation for local-only mode: all
// operations go straight to the fallback cache. Selected at startup when no
// remote endpoint is configured or the remote is unreachable.
type LocalGateway struct {
	cache *Cache
}

// NewLocalGateway creates a gateway over the local cache.
func NewLocalGateway(cache *Cache) *LocalGateway {
	return &LocalGateway{cache: cache}
}

// FetchAll reads the cached record list. A cache miss is an empty list: a
// fresh local-only install simply has no visits yet.
func (g *LocalGateway) FetchAll(ctx context.Context) ([]visits.VisitRecord, error) {
	records, err := g.cache.LoadRecords(ctx)
	if err == ErrCacheMiss {
		return nil, nil
	}
	return records, err
}

// AddVisit prepends the record to the cached list.
func (g *LocalGateway) AddVisit(ctx context.Context, record visits.VisitRecord) error {
	records, err := g.FetchAll(ctx)
	if err != nil {
		return err
	}
	return g.cache.SaveRecords(ctx, append([]visits.VisitRecord{record}, records...))
}

// UpdateVisit replaces the cached record with a matching id. Unknown ids
// leave the cache unchanged.
func (g *LocalGateway) UpdateVisit(ctx context.Context, record visits.VisitRecord) error {
	records, err := g.FetchAll(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == record.ID {
			records[i] = record
			break
		}
	}
	return g.cache.SaveRecords(ctx, records)
}

// DeleteVisit removes the cached record with a matching id. When the list
// becomes empty the cache key is deleted entirely.
func (g *LocalGateway) DeleteVisit(ctx context.Context, id string) error {
	records, err := g.FetchAll(ctx)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, rec := range records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == 0 {
		return g.cache.Clear(ctx)
	}
	return g.cache.SaveRecords(ctx, kept)
}

// ClearAll deletes the cache key.
func (g *LocalGateway) ClearAll(ctx context.Context) error {
	return g.cache.Clear(ctx)
}
