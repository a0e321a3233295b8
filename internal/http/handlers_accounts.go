package http

import (
	"net/http"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// netWorthView pairs the signed total with the per-type breakdown.
type netWorthView struct {
	NetWorth core.Money               `json:"netWorth"`
	Groups   []analytics.AccountGroup `json:"groups"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Accounts())
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := s.engine.AddAccount(r.Context(), in)
	respondMutation(w, r, http.StatusCreated, a, err)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := s.engine.UpdateAccount(r.Context(), r.PathValue("id"), in)
	respondMutation(w, r, http.StatusOK, a, err)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	err := s.engine.DeleteAccount(r.Context(), r.PathValue("id"))
	respondDelete(w, r, err)
}

func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	accounts := s.engine.Accounts()
	writeJSON(w, http.StatusOK, netWorthView{
		NetWorth: analytics.NetWorth(accounts),
		Groups:   analytics.GroupAccountsByType(accounts),
	})
}
