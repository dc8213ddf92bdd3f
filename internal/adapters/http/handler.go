package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lmoretti/mockview/internal/app/interview"
	"github.com/lmoretti/mockview/internal/domain"
)

type Server struct {
	svc *interview.Service
}

func NewServer(svc *interview.Service) http.Handler {
	s := &Server{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(withRequestID)
	r.Use(withLogging)
	r.Use(withCORS)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/start", s.handleStart)
		r.Post("/chat", s.handleChat)
		r.Get("/interviews", s.handleListInterviews)
		r.Get("/interviews/{id}", s.handleGetInterview)
	})

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type startRequest struct {
	JobRole   string `json:"jobRole"`
	TechStack string `json:"techStack"`
}

type startResponse struct {
	InterviewID string `json:"interviewId"`
	Message     string `json:"message"`
}

type chatRequest struct {
	InterviewID string `json:"interviewId"`
	UserMessage string `json:"userMessage"`
}

type chatResponse struct {
	Message string `json:"message"`
}

type turnResponse struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type interviewResponse struct {
	ID        string         `json:"id"`
	JobRole   string         `json:"jobRole"`
	TechStack string         `json:"techStack"`
	History   []turnResponse `json:"history"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.JobRole) == "" {
		badRequest(w, "jobRole is required")
		return
	}
	if strings.TrimSpace(req.TechStack) == "" {
		badRequest(w, "techStack is required")
		return
	}

	out, err := s.svc.StartInterview(r.Context(), interview.StartInterviewInput{
		JobRole:   req.JobRole,
		TechStack: req.TechStack,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			badRequest(w, err.Error())
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, startResponse{
		InterviewID: string(out.Interview.ID),
		Message:     out.Opening.Text,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.InterviewID == "" {
		badRequest(w, "interviewId is required")
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		badRequest(w, "userMessage is required")
		return
	}

	out, err := s.svc.SubmitAnswer(r.Context(), interview.SubmitAnswerInput{
		InterviewID: domain.InterviewID(req.InterviewID),
		Text:        req.UserMessage,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFound(w, "Interview not found")
		case errors.Is(err, domain.ErrInvalidInput):
			badRequest(w, err.Error())
		default:
			internalError(w, err)
		}
		return
	}

	// A degraded reply is still a 200: the gateway failure was absorbed
	// upstream and the caller just sees the fallback line.
	writeJSON(w, http.StatusOK, chatResponse{
		Message: out.InterviewerTurn.Text,
	})
}

func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	ivs, err := s.svc.ListInterviews(r.Context(), limit)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]interviewResponse, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, toInterviewResponse(iv))
	}

	writeJSON(w, http.StatusOK, map[string]any{"interviews": out})
}

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		notFound(w, "Interview not found")
		return
	}

	iv, err := s.svc.GetInterview(r.Context(), domain.InterviewID(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "Interview not found")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInterviewResponse(iv))
}

// ─────────────────────────────────────────────
// Response Helpers
// ─────────────────────────────────────────────

func toInterviewResponse(iv *domain.Interview) interviewResponse {
	history := make([]turnResponse, 0, len(iv.History))
	for _, t := range iv.History {
		history = append(history, turnResponse{
			Speaker:   string(t.Speaker),
			Text:      t.Text,
			Timestamp: t.Timestamp,
		})
	}

	return interviewResponse{
		ID:        string(iv.ID),
		JobRole:   iv.JobRole,
		TechStack: iv.TechStack,
		History:   history,
		CreatedAt: iv.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "Server Error",
	})
}
