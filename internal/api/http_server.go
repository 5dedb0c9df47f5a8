package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"totobot/internal/config"
	"totobot/internal/database"
	"totobot/internal/domain"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HTTPServer — служебный HTTP API рядом с ботом: health, метрики и
// read-only статистика для внешних дашбордов.
type HTTPServer struct {
	cfg     config.APIConfig
	repo    domain.Repository
	catalog domain.CatalogService
	server  *http.Server
	auth    *HTTPAuth
	logger  *zerolog.Logger
}

func NewHTTPServer(cfg config.APIConfig, repo domain.Repository, catalog domain.CatalogService, logger *zerolog.Logger) *HTTPServer {
	mux := http.NewServeMux()
	srv := &HTTPServer{cfg: cfg, repo: repo, catalog: catalog, logger: logger}
	srv.auth = NewHTTPAuth(cfg)

	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/v1/stats", srv.handleStats)
	mux.HandleFunc("/api/v1/tournaments", srv.handleTournaments)
	mux.HandleFunc("/api/v1/matches/", srv.handleMatchBets)

	handler := srv.loggingMiddleware(srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := s.repo.GetAdminStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users":               stats.Users,
		"banned":              stats.Banned,
		"tournaments":         stats.Tournaments,
		"today_registrations": stats.TodayRegistrations,
		"today_logins":        stats.TodayLogins,
	})
}

func (s *HTTPServer) handleTournaments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tournaments, err := s.catalog.ActiveTournaments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "tournaments unavailable")
		return
	}

	out := make([]map[string]any, 0, len(tournaments))
	for _, t := range tournaments {
		out = append(out, map[string]any{
			"id":          t.ID,
			"name":        t.Name,
			"description": t.Description,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tournaments": out})
}

// handleMatchBets отдает распределение прогнозов по матчу:
// GET /api/v1/matches/{id}/scores
func (s *HTTPServer) handleMatchBets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	const prefix = "/api/v1/matches/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "scores" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	matchID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || matchID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	if _, err := s.catalog.GetMatch(r.Context(), matchID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "match not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "match lookup failed")
		return
	}

	counts, err := s.repo.ScoreCounts(r.Context(), matchID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "scores unavailable")
		return
	}

	out := make([]map[string]any, 0, len(counts))
	for _, c := range counts {
		out = append(out, map[string]any{"score": c.Score, "count": c.Count})
	}
	writeJSON(w, http.StatusOK, map[string]any{"match_id": matchID, "scores": out})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
