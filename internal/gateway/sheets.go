package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/clinicops/pt-followup/internal/visits"
)

// SheetsConfig controls how the remote client behaves.
type SheetsConfig struct {
	WebAppURL  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// SheetsGateway talks to the Apps-Script-style web endpoint in front of the
// spreadsheet. Mutations are POSTed as an action-tagged JSON object; the full
// list is read back with a GET.
type SheetsGateway struct {
	url        string
	httpClient *http.Client
}

// envelope is the endpoint's uniform response shape.
type envelope struct {
	Success bool                 `json:"success"`
	Visits  []visits.VisitRecord `json:"visits,omitempty"`
	Message string               `json:"message,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// NewSheetsGateway creates a remote gateway client with sane defaults.
func NewSheetsGateway(cfg SheetsConfig) (*SheetsGateway, error) {
	url := strings.TrimSpace(cfg.WebAppURL)
	if url == "" {
		return nil, errors.New("gateway: web app URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &SheetsGateway{url: url, httpClient: httpClient}, nil
}

// FetchAll reads the authoritative record list.
func (g *SheetsGateway) FetchAll(ctx context.Context) ([]visits.VisitRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url+"?action="+ActionGetAllVisits, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	return env.Visits, nil
}

// AddVisit appends a record remotely.
func (g *SheetsGateway) AddVisit(ctx context.Context, record visits.VisitRecord) error {
	return g.post(ctx, ActionAddVisit, map[string]any{"visit": record})
}

// UpdateVisit replaces a record remotely, matched by id.
func (g *SheetsGateway) UpdateVisit(ctx context.Context, record visits.VisitRecord) error {
	return g.post(ctx, ActionUpdateVisit, map[string]any{"visit": record})
}

// DeleteVisit removes a record remotely.
func (g *SheetsGateway) DeleteVisit(ctx context.Context, id string) error {
	return g.post(ctx, ActionDeleteVisit, map[string]any{"id": id})
}

// ClearAll wipes the remote sheet.
func (g *SheetsGateway) ClearAll(ctx context.Context) error {
	return g.post(ctx, ActionClearAllData, nil)
}

func (g *SheetsGateway) post(ctx context.Context, action string, payload map[string]any) error {
	body := map[string]any{"action": action}
	for k, v := range payload {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("gateway: marshal %s: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	_, err = decodeEnvelope(resp)
	return err
}

func decodeEnvelope(resp *http.Response) (*envelope, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, msg)
	}
	return &env, nil
}
