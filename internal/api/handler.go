// Package api exposes tutoring sessions over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/baba/internal/content"
	"github.com/abhisek/baba/internal/logger"
	"github.com/abhisek/baba/internal/session"
	"github.com/abhisek/baba/internal/tutor"
)

const maxBodyBytes = 1 << 20

// Handler serves the session endpoints.
type Handler struct {
	repo   session.Repository
	router *tutor.Router
	locks  *session.Locker
	log    *logger.Logger
}

// NewHandler creates a Handler. A nil log discards output.
func NewHandler(repo session.Repository, router *tutor.Router, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		repo:   repo,
		router: router,
		locks:  session.NewLocker(),
		log:    log,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.ClearSession)
			r.Post("/turns", h.Turn)
			r.Post("/answers", h.Answer)
			r.Get("/performance", h.Performance)
		})
	})
}

// CreateSession starts an empty session and returns its ID.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New("")
	if err := h.repo.Save(r.Context(), sess); err != nil {
		h.log.Error("failed to create session", "error", err)
		Error(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	JSON(w, http.StatusCreated, map[string]string{"id": sess.ID})
}

// GetSession returns the stored session state.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, sess)
}

// ClearSession resets a session to its empty state, keeping its ID.
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	unlock := h.locks.Lock(id)
	defer unlock()

	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	sess.Clear()
	if !h.save(w, r, sess) {
		return
	}
	JSON(w, http.StatusOK, sess)
}

type turnRequest struct {
	Input string `json:"input"`
}

// Turn routes one user message. Unknown session IDs are created on first
// use. Generation failures are reported in the result body with status 200.
func (h *Handler) Turn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	unlock := h.locks.Lock(id)
	defer unlock()

	sess, err := session.GetOrCreate(r.Context(), h.repo, id)
	if err != nil {
		h.log.Error("failed to load session", "session", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	res := h.router.Route(r.Context(), req.Input, sess)
	if !h.save(w, r, sess) {
		return
	}
	JSON(w, http.StatusOK, res)
}

type answerRequest struct {
	QuestionIndex *int          `json:"question_index"`
	UserAnswer    *int          `json:"user_answer"`
	Quiz          *content.Quiz `json:"quiz,omitempty"`
}

// Answer grades one quiz answer against the supplied quiz, or the
// session's last quiz when none is supplied.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.QuestionIndex == nil || req.UserAnswer == nil {
		Error(w, http.StatusBadRequest, "question_index and user_answer are required")
		return
	}

	id := chi.URLParam(r, "id")
	unlock := h.locks.Lock(id)
	defer unlock()

	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	if req.Quiz == nil && sess.LastQuiz == nil {
		Error(w, http.StatusConflict, "no quiz in this session")
		return
	}

	res := h.router.CheckQuizAnswer(sess, *req.QuestionIndex, *req.UserAnswer, req.Quiz)
	if !h.save(w, r, sess) {
		return
	}
	JSON(w, http.StatusOK, res)
}

// Performance grades the session's quiz history.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, h.router.AnalyzeSession(sess))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*session.ConversationSession, bool) {
	id := chi.URLParam(r, "id")
	sess, err := h.repo.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		Error(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	if err != nil {
		h.log.Error("failed to load session", "session", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load session")
		return nil, false
	}
	return sess, true
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, sess *session.ConversationSession) bool {
	if err := h.repo.Save(r.Context(), sess); err != nil {
		h.log.Error("failed to save session", "session", sess.ID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to save session")
		return false
	}
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
