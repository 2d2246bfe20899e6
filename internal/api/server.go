// Package api exposes the analytics pipeline over HTTP.
//
// The server is a thin wrapper around pipeline.Runner: handlers parse query
// parameters, delegate, and encode the result. Analytics parameters are
// coerced rather than rejected (an unknown mode becomes words, a disallowed
// limit becomes the default), so the stats endpoints never return 4xx for
// bad knob values. Sentiment endpoints validate the term itself, since an
// empty or oversized term has no meaningful coercion.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/outlooklabs/termrain/pkg/errors"
	"github.com/outlooklabs/termrain/pkg/pipeline"
	"github.com/outlooklabs/termrain/pkg/sentiment"
)

// Server serves the termrain HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server around the given runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/api/health", s.handleHealth)
	r.Route("/api/stats", func(r chi.Router) {
		r.Get("/wordcloud", s.handleWordCloud)
		r.Get("/wordrain", s.handleWordRain)
		r.Get("/sentiment", s.handleSentimentGet)
		r.Post("/sentiment", s.handleSentimentBatch)
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("api listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// logRequests logs one line per request with the structured logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWordCloud serves the scored wordlist. Every query parameter is
// optional and coerced: year, mode, scoring, limit, refresh.
func (s *Server) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		Year:      intParam(r, "year"),
		Mode:      r.URL.Query().Get("mode"),
		Scoring:   r.URL.Query().Get("scoring"),
		Limit:     intParam(r, "limit"),
		SkipCache: boolParam(r, "refresh"),
	}

	result, err := s.runner.WordCloud(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleWordRain serves the cross-year aggregation. Parameters limit,
// startYear, endYear and refresh are optional and coerced.
func (s *Server) handleWordRain(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		RainLimit: intParam(r, "limit"),
		StartYear: intParam(r, "startYear"),
		EndYear:   intParam(r, "endYear"),
		SkipCache: boolParam(r, "refresh"),
	}

	result, err := s.runner.WordRain(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSentimentGet resolves a single term: GET /api/stats/sentiment?term=x
func (s *Server) handleSentimentGet(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if err := errors.ValidateTerm(term); err != nil {
		s.writeError(w, r, err)
		return
	}

	res := s.runner.Resolver.Resolve(r.Context(), term)
	writeJSON(w, http.StatusOK, res)
}

// sentimentBatchRequest is the POST body for batch resolution.
type sentimentBatchRequest struct {
	Terms []string `json:"terms"`
}

// sentimentBatchResponse maps each requested term to its resolution.
type sentimentBatchResponse struct {
	Results map[string]sentiment.Result `json:"results"`
	Count   int                         `json:"count"`
}

// handleSentimentBatch resolves up to sentiment.MaxBatchTerms terms in one
// call; extra terms are silently dropped, matching the resolver's cap.
func (s *Server) handleSentimentBatch(w http.ResponseWriter, r *http.Request) {
	var req sentimentBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body must be JSON with a terms array"))
		return
	}

	valid := make([]string, 0, len(req.Terms))
	for _, t := range req.Terms {
		if errors.ValidateTerm(t) == nil {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidTerm, "no valid terms in request"))
		return
	}

	results := s.runner.Resolver.ResolveBatch(r.Context(), valid)
	writeJSON(w, http.StatusOK, sentimentBatchResponse{Results: results, Count: len(results)})
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTerm, errors.ErrCodeInvalidYear,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidMode, errors.ErrCodeInvalidScoring,
		errors.ErrCodeInvalidLimit:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeYearNotFound, errors.ErrCodeCacheNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case errors.ErrCodeCorpus, errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"err", err,
			"request_id", middleware.GetReqID(r.Context()))
	}

	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// intParam parses an integer query parameter; malformed or absent values
// yield zero so the pipeline's coercion applies.
func intParam(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

// boolParam treats "true" and "1" as true, everything else as false.
func boolParam(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "true" || v == "1"
}
