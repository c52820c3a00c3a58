package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
	healthuc "github.com/YogeshRao005/capillary-chatbot/internal/usecase/health"
)

// AnswerBadRequest is returned when the question is missing or blank.
const AnswerBadRequest = "Please provide a question."

// AnswerInternalError is returned when the pipeline itself failed.
const AnswerInternalError = "Unable to process your request. Please try again."

// QueryAnswerer resolves a question into an answer with source citations.
type QueryAnswerer interface {
	Answer(ctx context.Context, question string) (domain.QueryResult, error)
}

// Server serves the chatbot HTTP API.
type Server struct {
	query  QueryAnswerer
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(query QueryAnswerer, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{query: query, health: health, logger: logger}
}

// Routes registers all handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/ask", s.Ask)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer  string          `json:"answer"`
	Sources []domain.Source `json:"sources"`
}

// askErrorResponse carries only the answer key, matching the error bodies
// of the original web client contract.
type askErrorResponse struct {
	Answer string `json:"answer"`
}

// Ask handles POST /ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, askErrorResponse{Answer: AnswerBadRequest})
		return
	}

	result, err := s.query.Answer(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			writeJSON(w, http.StatusBadRequest, askErrorResponse{Answer: AnswerBadRequest})
			return
		}
		s.logger.Error("query pipeline failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, askErrorResponse{Answer: AnswerInternalError})
		return
	}

	sources := result.Sources
	if sources == nil {
		sources = []domain.Source{}
	}
	writeJSON(w, http.StatusOK, askResponse{
		Answer:  result.Answer,
		Sources: sources,
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
