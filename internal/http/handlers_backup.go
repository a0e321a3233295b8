package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"fintrack/internal/backup"
	"fintrack/internal/core"
)

// 5 MB is generous for a personal ledger export.
const maxImportBytes = 5 << 20

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc := backup.Export(s.engine.Snapshot(), time.Now())
	data, err := doc.Marshal()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "fintrack-"+time.Now().Format("2006-01-02")+".json"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body: "+err.Error())
		return
	}
	if len(data) > maxImportBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "import document too large")
		return
	}

	snap, err := backup.Parse(data)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	err = s.engine.Restore(r.Context(), snap)
	respondMutation(w, r, http.StatusOK, struct {
		Transactions int `json:"transactions"`
		Budgets      int `json:"budgets"`
		Goals        int `json:"goals"`
		Accounts     int `json:"accounts"`
	}{
		Transactions: len(snap.Transactions),
		Budgets:      len(snap.Budgets),
		Goals:        len(snap.Goals),
		Accounts:     len(snap.Accounts),
	}, err)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Profile())
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p core.Profile
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.engine.UpdateProfile(r.Context(), p)
	respondMutation(w, r, http.StatusOK, s.engine.Profile(), err)
}
