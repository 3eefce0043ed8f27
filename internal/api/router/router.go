package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clinicops/pt-followup/internal/http/handlers"
	httpmiddleware "github.com/clinicops/pt-followup/internal/http/middleware"
	"github.com/clinicops/pt-followup/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Visits             *handlers.VisitsHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// WriteRateLimit caps mutating requests per second per IP. Zero disables
	// the limiter.
	WriteRateLimit float64
	WriteBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.Visits.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Mutating endpoints get a per-IP limiter.
	r.Group(func(write chi.Router) {
		if cfg.WriteRateLimit > 0 {
			write.Use(httpmiddleware.RateLimit(cfg.WriteRateLimit, cfg.WriteBurst))
		}
		write.Post("/visits", cfg.Visits.Create)
		write.Post("/visits/{id}/toggle", cfg.Visits.Toggle)
		write.Delete("/visits/{id}", cfg.Visits.Delete)
		write.Delete("/visits", cfg.Visits.ClearAll)
	})

	r.Get("/visits", cfg.Visits.List)
	r.Post("/visits/preview", cfg.Visits.Preview)
	r.Get("/stats", cfg.Visits.Stats)
	r.Get("/patients", cfg.Visits.Patients)
	r.Get("/patients/{year}/{code}/{num}", cfg.Visits.Patient)
	r.Get("/suggest", cfg.Visits.Suggest)
	r.Get("/calendar/{month}", cfg.Visits.Calendar)
	r.Get("/schedule/upcoming", cfg.Visits.Upcoming)
	r.Get("/schedule/days/{date}", cfg.Visits.Day)

	return r
}
