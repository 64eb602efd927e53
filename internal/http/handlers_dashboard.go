package http

import (
	"net/http"
	"time"

	"github.com/shivthakur007/expense/internal/engine"
)

type (
	datedAmountView struct {
		Date   string  `json:"date"`
		Amount float64 `json:"amount"`
	}

	monthAmountView struct {
		Month  string  `json:"month"`
		Amount float64 `json:"amount"`
	}

	categoryAmountView struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}

	reportView struct {
		Count       int                  `json:"count"`
		Total       float64              `json:"total"`
		MonthTotal  float64              `json:"month_total"`
		AvgPerEntry float64              `json:"avg_per_entry"`
		Daily       []datedAmountView    `json:"daily"`
		Monthly     []monthAmountView    `json:"monthly"`
		ByCategory  []categoryAmountView `json:"by_category"`
	}
)

func reportViewOf(rep engine.Report) reportView {
	view := reportView{
		Count:       rep.Count,
		Total:       rep.Total.Value(),
		MonthTotal:  rep.MonthTotal.Value(),
		AvgPerEntry: rep.AvgPerEntry.Value(),
		Daily:       make([]datedAmountView, 0, len(rep.Daily)),
		Monthly:     make([]monthAmountView, 0, len(rep.Monthly)),
		ByCategory:  make([]categoryAmountView, 0, len(rep.ByCategory)),
	}
	for _, d := range rep.Daily {
		view.Daily = append(view.Daily, datedAmountView{Date: d.Date, Amount: d.Amount.Value()})
	}
	for _, m := range rep.Monthly {
		view.Monthly = append(view.Monthly, monthAmountView{Month: m.Month, Amount: m.Amount.Value()})
	}
	for _, c := range rep.ByCategory {
		view.ByCategory = append(view.ByCategory, categoryAmountView{Name: c.Name, Amount: c.Amount.Value()})
	}
	return view
}

// handleDashboard computes the report over the filtered snapshot.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	records, ok := s.filteredRecords(w, r)
	if !ok {
		return
	}

	report := engine.BuildReport(records, time.Now())
	respondJSON(w, http.StatusOK, reportViewOf(report))
}
