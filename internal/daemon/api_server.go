package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"scenarr/internal/api"
	"scenarr/internal/catalog"
	"scenarr/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 16 << 20
)

type pinger interface {
	Ping(ctx context.Context) error
	Path() string
}

type apiServer struct {
	bind   string
	logger *slog.Logger
	svc    *api.CatalogService
	health pinger

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(bind string, svc *api.CatalogService, health pinger, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:   strings.TrimSpace(bind),
		logger: logging.NewComponentLogger(logger, "api-server"),
		svc:    svc,
		health: health,
	}
	srv.server = &http.Server{
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /collection_data", s.handleCollection)
	mux.HandleFunc("POST /add_site", s.handleAddSite)
	mux.HandleFunc("DELETE /remove_site/{uuid}", s.handleRemoveSite)
	mux.HandleFunc("DELETE /remove_scene/{id}", s.handleRemoveScene)
	mux.HandleFunc("POST /match_scene", s.handleMatchScene)
	mux.HandleFunc("POST /set_home_directory", s.handleSetHomeDirectory)
	mux.HandleFunc("POST /suggest_matches", s.handleSuggestMatches)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.withRequestID(mux)
}

func (s *apiServer) start(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("api bind address is empty")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		s.stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}

func (s *apiServer) address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *apiServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := logging.WithRequestID(r.Context(), id)

		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))
		logging.WithContext(ctx, s.logger).Debug("api request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("elapsed", time.Since(started)),
		)
	})
}

func (s *apiServer) handleCollection(w http.ResponseWriter, r *http.Request) {
	collection, err := s.svc.Collection(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, collection)
}

func (s *apiServer) handleAddSite(w http.ResponseWriter, r *http.Request) {
	var doc catalog.SiteImport
	if !s.decode(w, r, &doc) {
		return
	}
	resp, err := s.svc.AddSite(r.Context(), doc)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	logging.WithContext(r.Context(), s.logger).Info("site imported",
		logging.String(logging.FieldSiteUUID, resp.UUID),
		logging.Bool("created", resp.Created),
		logging.Int("scenes", resp.Scenes),
	)
	s.writeJSON(w, status, resp)
}

func (s *apiServer) handleRemoveSite(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.RemoveSite(r.Context(), r.PathValue("uuid"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleRemoveScene(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid scene id")
		return
	}
	resp, err := s.svc.RemoveScene(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleMatchScene(w http.ResponseWriter, r *http.Request) {
	var req api.MatchSceneRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.svc.MatchScene(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleSetHomeDirectory(w http.ResponseWriter, r *http.Request) {
	var req api.SetHomeDirectoryRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.svc.SetHomeDirectory(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleSuggestMatches(w http.ResponseWriter, r *http.Request) {
	var req api.SuggestRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.svc.SuggestMatches(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result.Candidates)
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Ping(r.Context()); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Catalog: s.health.Path()})
}

func (s *apiServer) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *apiServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := api.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logging.WithContext(r.Context(), s.logger).Error("api request failed",
			logging.String("path", r.URL.Path),
			logging.Error(err),
		)
	}
	s.writeError(w, status, err.Error())
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}
