// Package gateway implements the persistence gateway: a remote
// spreadsheet-backed web endpoint plus a Redis local fallback cache. One
// implementation is selected at startup; the store and aggregation layers
// never branch on which backend is active.
package gateway

import (
	"context"
	"errors"

	"github.com/clinicops/pt-followup/internal/visits"
)

// Actions understood by the remote web app.
const (
	ActionGetAllVisits = "getAllVisits"
	ActionAddVisit     = "addVisit"
	ActionUpdateVisit  = "updateVisit"
	ActionDeleteVisit  = "deleteVisit"
	ActionClearAllData = "clearAllData"
)

var (
	// ErrGatewayUnavailable is returned when the remote endpoint cannot be
	// reached or answers with garbage. Reads fall back to the local cache;
	// writes still commit locally.
	ErrGatewayUnavailable = errors.New("persistence gateway unavailable")

	// ErrGatewayRejected is returned when the endpoint answers success=false
	ErrGatewayRejected = errors.New("persistence gateway rejected the request")

	// ErrCacheMiss is returned when the local cache holds no record list
	ErrCacheMiss = errors.New("no cached visits")
)

// Gateway is the persistence contract. There is no automatic retry anywhere;
// callers decide what a failure means.
type Gateway interface {
	FetchAll(ctx context.Context) ([]visits.VisitRecord, error)
	AddVisit(ctx context.Context, record visits.VisitRecord) error
	UpdateVisit(ctx context.Context, record visits.VisitRecord) error
	DeleteVisit(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}
