package http

import (
	"net/http"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// goalView decorates a goal with derived progress. Progress is unclamped:
// past 100% the client sees exactly how far past the target the goal is.
type goalView struct {
	core.Goal
	Progress      float64 `json:"progress"`
	DaysRemaining int     `json:"daysRemaining"`
}

func viewGoal(g core.Goal) goalView {
	return goalView{
		Goal:          g,
		Progress:      analytics.GoalProgress(g),
		DaysRemaining: analytics.DaysRemaining(g, time.Now()),
	}
}

func viewGoals(gs []core.Goal) []goalView {
	views := make([]goalView, 0, len(gs))
	for _, g := range gs {
		views = append(views, viewGoal(g))
	}
	return views
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewGoals(s.engine.Goals()))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := s.engine.AddGoal(r.Context(), in)
	respondMutation(w, r, http.StatusCreated, viewGoal(g), err)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := s.engine.UpdateGoal(r.Context(), r.PathValue("id"), in)
	respondMutation(w, r, http.StatusOK, viewGoal(g), err)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	err := s.engine.DeleteGoal(r.Context(), r.PathValue("id"))
	respondDelete(w, r, err)
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := s.engine.Contribute(r.Context(), r.PathValue("id"), amount)
	respondMutation(w, r, http.StatusOK, viewGoal(g), err)
}
