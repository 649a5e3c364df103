package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"newssummarizer/internal/pipeline"

	"github.com/gorilla/mux"
)

const (
	maxRequestBodyBytes = 64 << 10
	urlFormField        = "url"
)

// Runner runs one summarisation for the operator input.
type Runner interface {
	Run(ctx context.Context, input string) pipeline.Result
}

type Server struct {
	runner    Runner
	presenter *Presenter
	log       *slog.Logger
}

func NewServer(runner Runner, log *slog.Logger) (*Server, error) {
	presenter, err := NewPresenter()
	if err != nil {
		return nil, fmt.Errorf("create presenter: %w", err)
	}

	return &Server{
		runner:    runner,
		presenter: presenter,
		log:       log,
	}, nil
}

func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/", s.indexHandler).Methods(http.MethodGet)
	r.HandleFunc("/summarize", s.summarizeFormHandler).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/summarize", s.summarizeAPIHandler).Methods(http.MethodPost)

	return r
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "", pipeline.Result{State: pipeline.StateIdle})
}

func (s *Server) summarizeFormHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, "", pipeline.Result{
			State:   pipeline.StateWarning,
			Message: "Please enter a valid URL.",
		})

		return
	}

	input := r.PostForm.Get(urlFormField)
	res := s.runner.Run(r.Context(), input)

	s.render(w, r, http.StatusOK, input, res)
}

type summarizeRequest struct {
	URL string `json:"url"`
}

type summarizeResponse struct {
	Status  pipeline.State   `json:"status"`
	Failure pipeline.Failure `json:"failure,omitempty"`
	Error   string           `json:"error,omitempty"`
	URL     string           `json:"url,omitempty"`
	Title   string           `json:"title,omitempty"`
	Article string           `json:"article,omitempty"`
	Summary string           `json:"summary,omitempty"`
}

func (s *Server) summarizeAPIHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, summarizeResponse{
			Status: pipeline.StateError,
			Error:  "invalid JSON",
		})

		return
	}

	res := s.runner.Run(r.Context(), req.URL)

	s.writeJSON(w, r, apiStatusCode(res), summarizeResponse{
		Status:  res.State,
		Failure: res.Failure,
		Error:   res.Message,
		URL:     res.URL,
		Title:   res.Title,
		Article: res.Preview,
		Summary: res.Summary,
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func apiStatusCode(res pipeline.Result) int {
	switch res.State {
	case pipeline.StateSuccess:
		return http.StatusOK
	case pipeline.StateWarning:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) render(
	w http.ResponseWriter,
	r *http.Request,
	statusCode int,
	input string,
	res pipeline.Result,
) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := s.presenter.Render(w, input, res); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to render page",
			"error", err,
			"state", res.State)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to write JSON response",
			"error", err,
			"path", r.URL.Path)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		s.log.Log(r.Context(), level, "Request is handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"durationMs", time.Since(start).Milliseconds(),
			"clientCanceled", errors.Is(r.Context().Err(), context.Canceled))
	})
}
