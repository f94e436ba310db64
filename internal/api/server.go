// Package api exposes a thin HTTP surface over the inference core
// (/observe runs core.Observe and saves the new state; the other endpoints
// only read): it is a consumer of core's programmatic interface
// (spec.md §6), not part of the core itself.
package api

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/lox/wandiweather/internal/core"
	"github.com/lox/wandiweather/internal/metrics"
	"github.com/lox/wandiweather/internal/store"
)

//go:embed templates/*
var templateFS embed.FS

type Server struct {
	store *store.Store
	port  string
	tmpl  *template.Template
}

func NewServer(st *store.Store, port string) *Server {
	funcs := template.FuncMap{
		"humanNum": func(v float64) string { return humanize.FormatFloat("#,###.##", v) },
	}
	tmpl := template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
	return &Server{store: st, port: port, tmpl: tmpl}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleStatus)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/observe", s.handleObserve)
	mux.HandleFunc("/forecast", s.handleForecast)
	mux.HandleFunc("/state", s.handleState)
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{Addr: ":" + s.port, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("api: listening on :%s", s.port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

type observeRequest struct {
	Station  string        `json:"station"`
	Snapshot core.Snapshot `json:"snapshot"`
}

type observeResponse struct {
	CorrelationID string         `json:"correlation_id"`
	Inference     core.Inference `json:"inference"`
}

func (s *Server) handleObserve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req observeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decode request: %v", err), http.StatusBadRequest)
		return
	}
	if req.Station == "" {
		http.Error(w, "station is required", http.StatusBadRequest)
		return
	}

	previous, _, err := s.store.LoadState(req.Station)
	if err != nil {
		http.Error(w, fmt.Sprintf("load state: %v", err), http.StatusInternalServerError)
		return
	}

	start := time.Now()
	inference, next, err := core.Observe(req.Snapshot, previous)
	metrics.ObserveLatency.WithLabelValues(req.Station).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ObserveCallsTotal.WithLabelValues(req.Station, "error").Inc()
		writeCoreError(w, err)
		return
	}
	metrics.ObserveCallsTotal.WithLabelValues(req.Station, "ok").Inc()
	metrics.ConditionEmitted.WithLabelValues(req.Station, string(inference.Condition)).Inc()
	for _, warning := range inference.Warnings {
		metrics.WarningsEmitted.WithLabelValues(req.Station, string(warning.Kind)).Inc()
	}

	if err := s.store.SaveState(req.Station, next); err != nil {
		http.Error(w, fmt.Sprintf("save state: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, observeResponse{
		CorrelationID: uuid.NewString(),
		Inference:     inference,
	})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	station := r.URL.Query().Get("station")
	if station == "" {
		http.Error(w, "station is required", http.StatusBadRequest)
		return
	}
	horizon := 24
	if v := r.URL.Query().Get("horizon_hours"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "horizon_hours must be an integer", http.StatusBadRequest)
			return
		}
		horizon = parsed
	}

	state, ok, err := s.store.LoadState(station)
	if err != nil {
		http.Error(w, fmt.Sprintf("load state: %v", err), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "unknown station", http.StatusNotFound)
		return
	}

	start := time.Now()
	fc, err := core.Forecast(state, horizon)
	metrics.ForecastLatency.WithLabelValues(station, strconv.Itoa(horizon)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ForecastCallsTotal.WithLabelValues(station, "error").Inc()
		writeCoreError(w, err)
		return
	}
	metrics.ForecastCallsTotal.WithLabelValues(station, "ok").Inc()

	writeJSON(w, http.StatusOK, fc)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	station := r.URL.Query().Get("station")
	if station == "" {
		http.Error(w, "station is required", http.StatusBadRequest)
		return
	}
	state, ok, err := s.store.LoadState(station)
	if err != nil {
		http.Error(w, fmt.Sprintf("load state: %v", err), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "unknown station", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, state.Derived)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stations := r.URL.Query()["station"]
	if len(stations) == 0 {
		stations = []string{"default"}
	}

	type row struct {
		Station string
		Derived core.DerivedState
		Found   bool
	}
	var rows []row
	for _, station := range stations {
		state, ok, err := s.store.LoadState(station)
		if err != nil {
			http.Error(w, fmt.Sprintf("load state: %v", err), http.StatusInternalServerError)
			return
		}
		rows = append(rows, row{Station: station, Derived: state.Derived, Found: ok})
	}

	if err := s.tmpl.ExecuteTemplate(w, "status.html", rows); err != nil {
		http.Error(w, fmt.Sprintf("render status: %v", err), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeCoreError(w http.ResponseWriter, err error) {
	var coreErr *core.CoreError
	if ce, ok := err.(*core.CoreError); ok {
		coreErr = ce
	}
	status := http.StatusInternalServerError
	if coreErr != nil {
		switch coreErr.Kind {
		case core.ErrInsufficientInput, core.ErrInvalidHumidity, core.ErrInvalidRange:
			status = http.StatusBadRequest
		case core.ErrOutOfOrderObservation:
			status = http.StatusConflict
		}
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
