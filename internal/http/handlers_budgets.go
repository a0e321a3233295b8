package http

import (
	"net/http"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/engine"
)

// budgetView decorates a budget with its derived status and usage percent.
type budgetView struct {
	core.Budget
	Status  core.BudgetStatus `json:"status"`
	Percent float64           `json:"percent"`
}

func viewBudget(b core.Budget) budgetView {
	return budgetView{
		Budget:  b,
		Status:  engine.StatusOf(b),
		Percent: analytics.PercentageOf(b.Spent, b.Limit),
	}
}

func viewBudgets(bs []core.Budget) []budgetView {
	views := make([]budgetView, 0, len(bs))
	for _, b := range bs {
		views = append(views, viewBudget(b))
	}
	return views
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewBudgets(s.engine.Budgets()))
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := s.engine.AddBudget(r.Context(), in)
	respondMutation(w, r, http.StatusCreated, viewBudget(b), err)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := s.engine.UpdateBudget(r.Context(), r.PathValue("id"), in)
	respondMutation(w, r, http.StatusOK, viewBudget(b), err)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	err := s.engine.DeleteBudget(r.Context(), r.PathValue("id"))
	respondDelete(w, r, err)
}
