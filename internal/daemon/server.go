package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/codequest-dev/codequest/internal/app"
	"github.com/codequest-dev/codequest/internal/domain"
	"github.com/codequest-dev/codequest/internal/executor"
)

// Server exposes the engine over HTTP for local tooling and editors.
type Server struct {
	app    *app.App
	router *http.ServeMux
	server *http.Server
}

// NewServer creates a daemon server around an assembled engine.
func NewServer(a *app.App) *Server {
	s := &Server{
		app:    a,
		router: http.NewServeMux(),
	}

	s.setupRoutes()

	addr := fmt.Sprintf("127.0.0.1:%d", a.Config.Port)
	handler := recoveryMiddleware(loggingMiddleware(s.router))
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.handleHealth)

	s.router.HandleFunc("GET /api/challenges", s.handleListChallenges)
	s.router.HandleFunc("GET /api/challenges/{id}", s.handleGetChallenge)
	s.router.HandleFunc("POST /api/challenges/{id}/submit", s.handleSubmit)
	s.router.HandleFunc("GET /api/challenges/{id}/hint", s.handleHint)
	s.router.HandleFunc("GET /api/challenges/{id}/solution", s.handleSolution)

	s.router.HandleFunc("GET /api/stats", s.handleStats)
	s.router.HandleFunc("GET /api/achievements", s.handleAchievements)

	s.router.HandleFunc("POST /api/execute", s.handleExecute)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	slog.Info("starting codequest daemon",
		"addr", s.server.Addr,
		"challenges", len(s.app.Challenges.List()),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down daemon...")
	return s.server.Shutdown(ctx)
}

// Handler implementations

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges := s.app.Challenges.List()
	if cat := r.URL.Query().Get("category"); cat != "" {
		challenges = s.app.Challenges.ByCategory(domain.Category(cat))
	} else if diff := r.URL.Query().Get("difficulty"); diff != "" {
		challenges = s.app.Challenges.ByDifficulty(domain.Difficulty(diff))
	}

	result := make([]map[string]interface{}, 0, len(challenges))
	for _, ch := range challenges {
		result = append(result, map[string]interface{}{
			"id":         ch.ID,
			"title":      ch.Title,
			"category":   ch.Category,
			"difficulty": ch.Difficulty,
			"xp":         ch.XP,
			"completed":  s.app.Tracker.Completed(ch.ID),
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"challenges": result,
	})
}

func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	ch, err := s.app.Challenges.Get(r.PathValue("id"))
	if err != nil {
		s.jsonError(w, http.StatusNotFound, "challenge not found", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"id":           ch.ID,
		"title":        ch.Title,
		"description":  ch.Description,
		"category":     ch.Category,
		"difficulty":   ch.Difficulty,
		"xp":           ch.XP,
		"starter_code": ch.StarterCode,
		"hints":        len(ch.Hints),
		"completed":    s.app.Tracker.Completed(ch.ID),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := s.app.Challenges.Submit(r.PathValue("id"), req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			s.jsonError(w, http.StatusNotFound, "challenge not found", err)
			return
		}
		s.jsonError(w, http.StatusInternalServerError, "submission failed", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"valid":      result.Valid,
		"score":      result.Score,
		"message":    result.Message,
		"xp_awarded": result.XPAwarded,
		"feedback":   result.Feedback,
		"details":    result.Details,
		"attempts":   result.Outcome.TotalAttempts,
	})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	index := 0
	if v := r.URL.Query().Get("index"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.jsonError(w, http.StatusBadRequest, "invalid hint index", err)
			return
		}
		index = n
	}

	hint, err := s.app.Challenges.GetHint(r.PathValue("id"), index)
	if err != nil {
		s.jsonError(w, http.StatusNotFound, "hint not found", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"index": index,
		"hint":  hint,
	})
}

func (s *Server) handleSolution(w http.ResponseWriter, r *http.Request) {
	solution, err := s.app.Challenges.GetSolution(r.PathValue("id"))
	if err != nil {
		s.jsonError(w, http.StatusNotFound, "solution not found", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"solution": solution,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.app.Tracker.OverallStats()
	total := len(s.app.Challenges.List())

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"completed":          stats.CompletedChallenges,
		"total_challenges":   total,
		"completion_percent": s.app.Tracker.CompletionPercentage(total),
		"total_attempts":     stats.TotalAttempts,
		"total_time_ms":      stats.TotalTimeMs,
		"streak_days":        stats.StreakDays,
		"average_attempts":   stats.AverageAttempts,
		"weekly":             s.app.Tracker.WeeklyProgress(),
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	progress := s.app.Achievements.GetProgress()

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"unlocked": s.app.Achievements.Unlocked(),
		"total":    progress.TotalCount,
		"percent":  progress.Percentage,
		"points":   s.app.Achievements.TotalPoints(),
		"xp":       s.app.Achievements.TotalXP(),
	})
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code     string `json:"code"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	lang := executor.Language(req.Language)
	switch lang {
	case executor.LanguageScript, executor.LanguageMarkup, executor.LanguageStylesheet:
	default:
		s.jsonError(w, http.StatusBadRequest, "unsupported language", nil)
		return
	}

	result := s.app.Executor.Execute(req.Code, lang)
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	s.jsonResponse(w, status, response)
}
