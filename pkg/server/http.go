package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/bastiangx/approxdict/internal/logger"
	"github.com/bastiangx/approxdict/pkg/approx"
	"github.com/bastiangx/approxdict/pkg/distance"
)

// HTTPConfig holds the HTTP listener options
type HTTPConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// HTTPServer serves approximate searches over HTTP
type HTTPServer struct {
	httpServer *http.Server
	router     *mux.Router
	searcher   approx.ISearcher
	info       DictInfo
	logger     *log.Logger
}

// NewHTTPServer creates an HTTP server answering on cfg.Addr
func NewHTTPServer(searcher approx.ISearcher, info DictInfo, cfg HTTPConfig) *HTTPServer {
	s := &HTTPServer{
		searcher: searcher,
		info:     info,
		logger:   logger.New("http"),
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// NewHTTPHandler returns the routes of an HTTP server without a listener
func NewHTTPHandler(searcher approx.ISearcher, info DictInfo) http.Handler {
	return NewHTTPServer(searcher, info, HTTPConfig{}).router
}

// setupRoutes configures all HTTP routes
func (s *HTTPServer) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.HandleFunc("/approx/{dist}/{word:.+}", s.handleApprox).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)
	s.router.Use(s.requestLogging)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully,
// letting in-flight searches finish.
func (s *HTTPServer) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", s.httpServer.Addr, "digest", s.info.Digest)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *HTTPServer) handleApprox(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dist, err := strconv.ParseUint(vars["dist"], 10, 32)
	if err != nil || dist > distance.MaxDistance {
		s.writeError(w, "invalid distance: "+vars["dist"], http.StatusBadRequest)
		return
	}

	results, err := s.searcher.Search(vars["word"], uint32(dist))
	if err != nil {
		s.writeError(w, err.Error(), statusCode(err))
		return
	}

	var buf bytes.Buffer
	if err := approx.WriteJSON(&buf, results); err != nil {
		s.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Result-Count", strconv.Itoa(len(results)))
	_, _ = w.Write(buf.Bytes())
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, StatusResponse{Status: "ok"}, http.StatusOK)
}

func (s *HTTPServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.info, http.StatusOK)
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, message string, code int) {
	s.writeJSON(w, ErrorResponse{Error: message, Code: code}, code)
}

// requestLogging logs every request at debug level
func (s *HTTPServer) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}
