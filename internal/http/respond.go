package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

type errorBody struct {
	Error string `json:"error"`
}

// persistenceBody reports a mutation that was applied in memory but could
// not be made durable. The record is still returned so clients see the
// authoritative state.
type persistenceBody struct {
	Error  string `json:"error"`
	Result any    `json:"result,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrPersistence):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondMutation writes the outcome of an engine mutation. A persistence
// failure still carries the applied record: memory is authoritative, the
// store is a mirror that fell behind.
func respondMutation(w http.ResponseWriter, r *http.Request, okStatus int, result any, err error) {
	if err == nil {
		writeJSON(w, okStatus, result)
		return
	}

	logger := applog.FromContext(r.Context())
	if errors.Is(err, core.ErrPersistence) {
		logger.ErrorContext(r.Context(), "Mutation applied but not persisted", applog.FieldError, err.Error())
		writeJSON(w, http.StatusBadGateway, persistenceBody{Error: err.Error(), Result: result})
		return
	}

	status := statusFor(err)
	if status >= 500 {
		logger.ErrorContext(r.Context(), "Mutation failed", applog.FieldError, err.Error())
	}
	writeError(w, status, err.Error())
}

// respondDelete is respondMutation for operations with no result record.
func respondDelete(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if errors.Is(err, core.ErrPersistence) {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Mutation applied but not persisted", applog.FieldError, err.Error())
		writeJSON(w, http.StatusBadGateway, persistenceBody{Error: err.Error()})
		return
	}
	writeError(w, statusFor(err), err.Error())
}
