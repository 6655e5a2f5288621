package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ratedzzz/small-steps/internal/models"
	"github.com/ratedzzz/small-steps/internal/subscription"
)

var errBadRequest = errors.New("bad request")

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

// withBadges is the shape of every write that may unlock badges
type withBadges struct {
	Data      interface{}    `json:"data"`
	NewBadges []models.Badge `json:"newBadges"`
}

func badgeResponse(data interface{}, unlocked []models.Badge) withBadges {
	if unlocked == nil {
		unlocked = []models.Badge{}
	}
	return withBadges{Data: data, NewBadges: unlocked}
}

// ─── Habits ─────────────────────────────────────────────────────────────────

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all") == "true"
	writeJSON(w, http.StatusOK, s.svc.Ledger().Habits(all))
}

type habitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Category    string `json:"category"`
	GoalID      string `json:"goalId"`
}

func (s *Server) handleAddHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	h, unlocked, err := s.svc.AddHabit(models.Habit{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Category:    req.Category,
		GoalID:      req.GoalID,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, badgeResponse(h, unlocked))
}

func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	var u models.HabitUpdate
	if err := decode(r, &u); err != nil {
		writeErr(w, err)
		return
	}
	h, unlocked, err := s.svc.UpdateHabit(chi.URLParam(r, "id"), u)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badgeResponse(h, unlocked))
}

func (s *Server) handleDeactivateHabit(w http.ResponseWriter, r *http.Request) {
	h, err := s.svc.DeactivateHabit(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleLinkHabit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GoalID string `json:"goalId"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	h, unlocked, err := s.svc.LinkHabit(chi.URLParam(r, "id"), req.GoalID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badgeResponse(h, unlocked))
}

func (s *Server) handleUnlinkHabit(w http.ResponseWriter, r *http.Request) {
	h, err := s.svc.UnlinkHabit(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// ─── Progress ───────────────────────────────────────────────────────────────

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.svc.Ledger().Habit(id); err != nil {
		writeErr(w, err)
		return
	}
	entry, ok := s.svc.Ledger().GetProgress(id, chi.URLParam(r, "date"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entry":  entry,
		"logged": ok,
	})
}

func (s *Server) handleSetProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Percentage *int   `json:"percentage"`
		Notes      string `json:"notes"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	if req.Percentage == nil {
		writeError(w, http.StatusBadRequest, "percentage is required")
		return
	}
	entry, unlocked, err := s.svc.RecordProgress(chi.URLParam(r, "id"), chi.URLParam(r, "date"), *req.Percentage, req.Notes)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badgeResponse(entry, unlocked))
}

func (s *Server) handleSetJournal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string `json:"text"`
		Points *int   `json:"points"`
		Mood   *int   `json:"mood"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	entry, unlocked, err := s.svc.RecordJournal(chi.URLParam(r, "id"), chi.URLParam(r, "date"), req.Text, req.Points, req.Mood)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badgeResponse(entry, unlocked))
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	stats, err := s.svc.HabitStats(id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"habitId": id,
		"stats":   stats,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}
	history, err := s.svc.History(chi.URLParam(r, "id"), days)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// ─── Goals ──────────────────────────────────────────────────────────────────

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all") == "true"
	writeJSON(w, http.StatusOK, s.svc.Ledger().Goals(all))
}

type goalRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	TargetValue  *float64 `json:"targetValue"`
	CurrentValue *float64 `json:"currentValue"`
	Unit         string   `json:"unit"`
	Deadline     string   `json:"deadline"`
	Color        string   `json:"color"`
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	g, err := s.svc.AddGoal(models.Goal{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Deadline:     req.Deadline,
		Color:        req.Color,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var u models.GoalUpdate
	if err := decode(r, &u); err != nil {
		writeErr(w, err)
		return
	}
	g, unlocked, err := s.svc.UpdateGoal(chi.URLParam(r, "id"), u)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badgeResponse(g, unlocked))
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	status, err := s.svc.GoalStatus(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// ─── Scoring ────────────────────────────────────────────────────────────────

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Dashboard(s.svc.Today()))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Stats())
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"earned": p.Earned,
		"locked": p.Locked,
	})
}

func (s *Server) handleCheckBadges(w http.ResponseWriter, r *http.Request) {
	unlocked, err := s.svc.CheckBadges()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badgeResponse(nil, unlocked))
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	points, lvl, err := s.svc.Level()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"points": points,
		"level":  lvl,
	})
}

// ─── Subscription ───────────────────────────────────────────────────────────

func (s *Server) handleGetSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.svc.Subscription()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subscription": sub,
		"limits":       subscription.EffectiveLimits(sub),
		"plans":        subscription.Plans(),
	})
}

func (s *Server) handleSetSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tier models.Tier `json:"tier"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	sub, err := s.svc.SetSubscription(req.Tier)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// ─── Quotes ─────────────────────────────────────────────────────────────────

func (s *Server) handleTodayQuote(w http.ResponseWriter, r *http.Request) {
	q := s.svc.TodayQuote()
	liked, err := s.svc.Likes().IsLiked(q.ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quote": q,
		"liked": liked,
	})
}

func (s *Server) handleLikedQuotes(w http.ResponseWriter, r *http.Request) {
	ids, err := s.svc.Likes().List()
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleLikeQuote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	liked, err := s.svc.Likes().Toggle(id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":    id,
		"liked": liked,
	})
}
