package dashboard

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bhavyp2311/Weather-Api/internal/model"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Server serves the dashboard page and its JSON API.
type Server struct {
	orch     *Orchestrator
	state    *State
	fallback Locator
	gatherer prometheus.Gatherer
	logger   *log.Logger
	router   chi.Router
}

// NewServer wires the HTTP layer. fallback is used when the browser sends no
// position at all; nil means such requests report missing geolocation.
func NewServer(orch *Orchestrator, state *State, fallback Locator, gatherer prometheus.Gatherer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if gatherer == nil {
		gatherer = prometheus.NewRegistry()
	}
	s := &Server{
		orch:     orch,
		state:    state,
		fallback: fallback,
		gatherer: gatherer,
		logger:   logger,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/fetch", s.handleFetch)
	})
}

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page := BuildPage(s.state.Snapshot(), time.Now())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, page); err != nil {
		s.logger.Printf("render index: %v", err)
	}
}

// GET /api/state
func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Snapshot())
}

// fetchRequest is what the page posts after asking the browser for its position.
type fetchRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Error       string   `json:"error"`
	Unsupported bool     `json:"unsupported"`
}

type fetchResponse struct {
	Error string `json:"error,omitempty"`
	State View   `json:"state"`
}

// POST /api/fetch
// Body: {"latitude":..,"longitude":..} | {"error":"..."} | {"unsupported":true} | empty.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, fetchResponse{Error: "invalid JSON body", State: s.state.Snapshot()})
		return
	}
	// a position needs both axes
	if (req.Latitude == nil) != (req.Longitude == nil) {
		writeJSON(w, http.StatusBadRequest, fetchResponse{Error: "invalid JSON body", State: s.state.Snapshot()})
		return
	}

	_, err := s.orch.FetchAllFieldData(r.Context(), s.locatorFor(req))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, fetchResponse{State: s.state.Snapshot()})
	case errors.Is(err, ErrGeolocationUnsupported):
		writeJSON(w, http.StatusUnprocessableEntity, fetchResponse{Error: AlertUnsupported, State: s.state.Snapshot()})
	case errors.Is(err, ErrLocationUnavailable):
		writeJSON(w, http.StatusUnprocessableEntity, fetchResponse{Error: AlertLocation, State: s.state.Snapshot()})
	case errors.Is(err, ErrSuperseded):
		writeJSON(w, http.StatusConflict, fetchResponse{Error: err.Error(), State: s.state.Snapshot()})
	default:
		// fetch failures are diagnostic only; the page keeps showing the previous data
		writeJSON(w, http.StatusOK, fetchResponse{State: s.state.Snapshot()})
	}
}

func (s *Server) locatorFor(req fetchRequest) Locator {
	switch {
	case req.Unsupported:
		return nil
	case req.Error != "":
		return DeniedLocator{Reason: req.Error}
	case req.Latitude != nil && req.Longitude != nil:
		return StaticLocator(model.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude})
	case s.fallback != nil:
		return s.fallback
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
