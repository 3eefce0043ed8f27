package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clinicops/pt-followup/internal/analytics"
	"github.com/clinicops/pt-followup/internal/visits"
	"github.com/clinicops/pt-followup/pkg/logging"
)

// ClearAllConfirmToken must accompany a bulk wipe. The two sequential user
// confirmations live in the form surface; this keeps a stray DELETE from
// wiping data.
const ClearAllConfirmToken = "delete-everything"

// VisitsHandler handles HTTP requests for visit records and their derived views
type VisitsHandler struct {
	service         *visits.Service
	logger          *logging.Logger
	calendarYear    int
	suggestionLimit int
	now             func() time.Time
}

// NewVisitsHandler creates a new visits handler
func NewVisitsHandler(service *visits.Service, logger *logging.Logger, calendarYear, suggestionLimit int) *VisitsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	if suggestionLimit <= 0 {
		suggestionLimit = analytics.DefaultSuggestionLimit
	}
	return &VisitsHandler{
		service:         service,
		logger:          logger,
		calendarYear:    calendarYear,
		suggestionLimit: suggestionLimit,
		now:             time.Now,
	}
}

// Health responds to liveness checks.
func (h *VisitsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Create handles POST /visits requests
func (h *VisitsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req visits.CreateVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Record(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("visit recorded",
		"id", result.Record.ID,
		"reg_number", result.Record.RegNumber,
		"tablet_days", result.Record.TabletDays,
		"synced", result.Synced,
	)
	writeJSON(w, http.StatusCreated, result)
}

// ListVisitsResponse is the response for listing visit records
type ListVisitsResponse struct {
	Visits []visits.VisitRecord `json:"visits"`
	Count  int                  `json:"count"`
}

// List handles GET /visits requests
func (h *VisitsHandler) List(w http.ResponseWriter, r *http.Request) {
	snapshot := h.service.Store().Snapshot()
	writeJSON(w, http.StatusOK, ListVisitsResponse{Visits: snapshot, Count: len(snapshot)})
}

// Toggle handles POST /visits/{id}/toggle requests. An unknown id is logged
// and answered with updated=false; the list the caller holds is already
// stale, not wrong.
func (h *VisitsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.service.ToggleCompleted(r.Context(), id)
	if visits.IsNotFound(err) {
		writeJSON(w, http.StatusOK, map[string]any{"updated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"updated": true, "record": record})
}

// Delete handles DELETE /visits/{id} requests
func (h *VisitsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Unknown ids stay silent: the UI only references ids it holds.
	_ = h.service.Delete(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// ClearAll handles DELETE /visits requests
func (h *VisitsHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != ClearAllConfirmToken {
		http.Error(w, "confirmation token required", http.StatusBadRequest)
		return
	}

	h.service.ClearAll(r.Context())
	h.logger.Info("all visit data cleared")
	w.WriteHeader(http.StatusNoContent)
}

// StatsResponse aggregates the dashboard numbers
type StatsResponse struct {
	Counts       analytics.UniquePatientCounts `json:"counts"`
	Lookup       analytics.LookupStats         `json:"lookup"`
	PendingToday int                           `json:"pendingToday"`
}

// Stats handles GET /stats requests
func (h *VisitsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	snapshot := h.service.Store().Snapshot()
	writeJSON(w, http.StatusOK, StatsResponse{
		Counts:       analytics.ComputeUniquePatientCounts(snapshot),
		Lookup:       analytics.ComputeLookupStats(snapshot),
		PendingToday: analytics.PendingCountForDate(snapshot, h.now()),
	})
}

// ListPatientsResponse is the response for listing patient rollups
type ListPatientsResponse struct {
	Patients []*analytics.PatientRollup `json:"patients"`
	Count    int                        `json:"count"`
}

// Patients handles GET /patients requests
func (h *VisitsHandler) Patients(w http.ResponseWriter, r *http.Request) {
	rollups := analytics.ComputePatientRollups(h.service.Store().Snapshot())
	all := rollups.All()
	writeJSON(w, http.StatusOK, ListPatientsResponse{Patients: all, Count: len(all)})
}

// Patient handles GET /patients/{year}/{code}/{num} requests. The three
// segments reassemble the slash-separated registration number.
func (h *VisitsHandler) Patient(w http.ResponseWriter, r *http.Request) {
	regNumber := chi.URLParam(r, "year") + "/" + chi.URLParam(r, "code") + "/" + chi.URLParam(r, "num")

	rollups := analytics.ComputePatientRollups(h.service.Store().Snapshot())
	rollup, ok := rollups.Get(regNumber)
	if !ok {
		http.Error(w, "patient not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rollup)
}

// SuggestResponse carries autocomplete matches with their rollup summaries
type SuggestResponse struct {
	Suggestions []*analytics.PatientRollup `json:"suggestions"`
}

// Suggest handles GET /suggest requests for both the form autocomplete and
// the lookup search box.
func (h *VisitsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := h.suggestionLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	rollups := analytics.ComputePatientRollups(h.service.Store().Snapshot())
	matches := analytics.SuggestRecords(query, rollups, limit)
	writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: matches})
}

// CalendarResponse is one month's day-by-day view
type CalendarResponse struct {
	Year  int                    `json:"year"`
	Month string                 `json:"month"`
	Days  []analytics.DaySummary `json:"days"`
}

// Calendar handles GET /calendar/{month} requests. Month views are built on
// demand so the cost stays bounded to one month.
func (h *VisitsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		http.Error(w, "month must be 1-12", http.StatusBadRequest)
		return
	}
	month := time.Month(monthNum)

	days := analytics.MonthDates(h.service.Store().Snapshot(), h.calendarYear, month, h.now())
	writeJSON(w, http.StatusOK, CalendarResponse{Year: h.calendarYear, Month: month.String(), Days: days})
}

// UpcomingResponse is the short-range lookahead strip
type UpcomingResponse struct {
	Days []analytics.UpcomingDay `json:"days"`
}

// Upcoming handles GET /schedule/upcoming requests
func (h *VisitsHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	n := 6
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if parsed, err := strconv.Atoi(daysStr); err == nil && parsed > 0 && parsed <= 31 {
			n = parsed
		}
	}

	days := analytics.UpcomingDays(h.service.Store().Snapshot(), h.now(), n)
	writeJSON(w, http.StatusOK, UpcomingResponse{Days: days})
}

// DayResponse is the drill-down for a single date: every record scheduled
// that day, completed or not, plus the distinct pending count.
type DayResponse struct {
	Date         string               `json:"date"`
	Records      []visits.VisitRecord `json:"records"`
	PendingCount int                  `json:"pendingCount"`
}

// Day handles GET /schedule/days/{date} requests
func (h *VisitsHandler) Day(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(visits.DateLayout, chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	snapshot := h.service.Store().Snapshot()
	writeJSON(w, http.StatusOK, DayResponse{
		Date:         visits.DateKey(date),
		Records:      analytics.RecordsForDate(snapshot, date),
		PendingCount: analytics.PendingCountForDate(snapshot, date),
	})
}

// PreviewRequest is the live form feedback request
type PreviewRequest struct {
	RegNumber     string `json:"regNumber"`
	VisitDate     string `json:"visitDate"`
	NextVisitDate string `json:"nextVisitDate"`
}

// Preview handles POST /visits/preview requests
func (h *VisitsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Preview(req.RegNumber, req.VisitDate, req.NextVisitDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
