package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// intQuery reads a positive integer query parameter with a default.
func intQuery(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

type summaryView struct {
	analytics.Summary
	AvgIncome  core.Money `json:"avgIncome"`
	AvgExpense core.Money `json:"avgExpense"`
	Window     int        `json:"window"` // months covered by the averages
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	txns := s.engine.Transactions()
	now := time.Now()
	year := intQuery(r, "year", now.Year())
	month := intQuery(r, "month", int(now.Month()))
	window := intQuery(r, "window", 6)

	avgIncome, avgExpense := analytics.TrailingAverages(txns, year, month, window)
	writeJSON(w, http.StatusOK, summaryView{
		Summary:    analytics.Summarize(txns),
		AvgIncome:  avgIncome,
		AvgExpense: avgExpense,
		Window:     window,
	})
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	year := intQuery(r, "year", time.Now().Year())
	writeJSON(w, http.StatusOK, analytics.GroupByMonth(s.engine.Transactions(), year))
}

func (s *Server) handleTopCategories(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 5)
	typ := core.TransactionType(strings.TrimSpace(r.URL.Query().Get("type")))
	if typ == "" {
		typ = core.Expense
	}
	if err := typ.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.TopCategories(s.engine.Transactions(), typ, limit))
}
