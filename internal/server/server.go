package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/voyagen/iptvindex/api"
	"github.com/voyagen/iptvindex/internal/config"
	"github.com/voyagen/iptvindex/internal/metrics"
	"github.com/voyagen/iptvindex/internal/models"
	"github.com/voyagen/iptvindex/internal/store"
)

// Error messages for channel lookups.
const (
	msgInvalidChannelID = "Invalid channel ID"
	msgChannelNotFound  = "Channel not found"
)

// routePrefixes are the mount points of the channel routes. The web client
// talks to /api; the bare paths are kept for direct use.
var routePrefixes = []string{"", "/api"}

// Server holds dependencies for the HTTP API. It keeps no channel data of
// its own: every request loads the dataset from the store.
type Server struct {
	store   store.Store
	cfg     *config.Config
	log     *logrus.Entry
	mux     *http.ServeMux
	handler http.Handler
}

// New creates a Server and registers routes.
func New(s store.Store, cfg *config.Config, log *logrus.Entry) *Server {
	srv := &Server{store: s, cfg: cfg, log: log, mux: http.NewServeMux()}
	srv.routes()
	srv.handler = withRequestID(withLogging(log, withCORS(srv.mux)))
	return srv
}

func (s *Server) routes() {
	for _, p := range routePrefixes {
		s.mux.HandleFunc("GET "+p+"/health", s.handleHealth)

		// Channels
		s.mux.HandleFunc("GET "+p+"/channels", s.handleListChannels)
		s.mux.HandleFunc("GET "+p+"/channels/categories", s.handleListCategories)
		s.mux.HandleFunc("GET "+p+"/channels/countries", s.handleListCountries)
		s.mux.HandleFunc("GET "+p+"/channels/languages", s.handleListLanguages)
		s.mux.HandleFunc("GET "+p+"/channels/{id}", s.handleGetChannel)
	}

	// Docs
	s.mux.HandleFunc("GET /api/docs", handleSwaggerUI)
	s.mux.HandleFunc("GET /api/docs/openapi.yaml", handleOpenAPISpec)

	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the configured port.
// It blocks until the server is shut down or ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := ":" + s.cfg.ServerPort
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Warn("server shutdown")
		}
	}()

	s.log.WithFields(logrus.Fields{"addr": addr, "store": s.store.String()}).Info("listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("ListenAndServe: %w", err)
	}
	return nil
}

// --- handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
}

// loadChannels reads the full dataset for one request, writing the error
// response itself when that fails.
func (s *Server) loadChannels(w http.ResponseWriter, r *http.Request) ([]models.Channel, bool) {
	channels, err := s.store.Load(r.Context())
	if err != nil {
		metrics.RecordLoadFailure()
		s.writeErr(w, r, http.StatusInternalServerError, err)
		return nil, false
	}
	metrics.SetDatasetChannels(len(channels))
	return channels, true
}

func (s *Server) handleListChannels(w http.ResponseWriter, r *http.Request) {
	channels, ok := s.loadChannels(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := store.ChannelFilter{
		Category: q.Get("category"),
		Country:  q.Get("country"),
		Language: q.Get("language"),
		Search:   q.Get("search"),
	}
	filtered := store.FilterChannels(channels, filter)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"channels": filtered,
		"total":    len(filtered),
	})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.writeValues(w, r, "categories", store.Categories)
}

func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	s.writeValues(w, r, "countries", store.Countries)
}

func (s *Server) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	s.writeValues(w, r, "languages", store.Languages)
}

func (s *Server) writeValues(w http.ResponseWriter, r *http.Request, key string, values func([]models.Channel) []string) {
	channels, ok := s.loadChannels(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		key:       values(channels),
	})
}

// handleGetChannel looks a channel up by its position in the dataset.
// Positions shift whenever the playlist is re-parsed.
func (s *Server) handleGetChannel(w http.ResponseWriter, r *http.Request) {
	channels, ok := s.loadChannels(w, r)
	if !ok {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		// Well-formed integers too large for int cannot be in range.
		if errors.Is(err, strconv.ErrRange) {
			s.writeErr(w, r, http.StatusNotFound, errors.New(msgChannelNotFound))
			return
		}
		s.writeErr(w, r, http.StatusBadRequest, errors.New(msgInvalidChannelID))
		return
	}

	ch, err := store.ChannelAt(channels, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeErr(w, r, http.StatusNotFound, errors.New(msgChannelNotFound))
			return
		}
		s.writeErr(w, r, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"channel": ch,
	})
}

// --- helpers ---

// APIError is the standard error envelope for all error responses.
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// parseID extracts a path parameter by name and parses it as an int.
func parseID(r *http.Request, param string) (int, error) {
	return strconv.Atoi(r.PathValue(param))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("writeJSON")
	}
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= 500 {
		s.log.WithFields(logrus.Fields{
			"status":     status,
			"request_id": RequestIDFromContext(r.Context()),
		}).WithError(err).Error("request failed")
	}
	writeJSON(w, status, APIError{Success: false, Error: err.Error()})
}

// --- docs handlers ---

func handleOpenAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(api.OpenAPISpec)
}

func handleSwaggerUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, swaggerUIHTML)
}

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>iptvindex API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/api/docs/openapi.yaml",
      dom_id: "#swagger-ui",
    });
  </script>
</body>
</html>`
