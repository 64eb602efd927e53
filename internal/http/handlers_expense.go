package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shivthakur007/expense/internal/core"
	"github.com/shivthakur007/expense/internal/engine"
	"github.com/shivthakur007/expense/internal/export"
	"github.com/shivthakur007/expense/internal/repository"
)

type expenseRequest struct {
	Description       string      `json:"description"`
	Amount            json.Number `json:"amount"`
	Category          string      `json:"category"`
	CustomCategory    string      `json:"custom_category"`
	PaymentMode       string      `json:"payment_mode"`
	CustomPaymentMode string      `json:"custom_payment_mode"`
	Date              string      `json:"date"`
}

type expenseView struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	PaymentMode string  `json:"payment_mode"`
	Date        string  `json:"date"`
}

type expenseListResponse struct {
	Expenses []expenseView `json:"expenses"`
	Count    int           `json:"count"`
}

func viewOf(e core.Expense) expenseView {
	return expenseView{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.Value(),
		Category:    e.Category,
		PaymentMode: e.PaymentMode,
		Date:        e.Date,
	}
}

// toInput converts the wire payload. Amount parsing rejects negatives and
// malformed decimals; the repository owns the remaining validation.
func (req expenseRequest) toInput() (repository.Input, error) {
	cents, err := core.ParseDecimalToCents(req.Amount.String())
	if err != nil {
		return repository.Input{}, err
	}
	return repository.Input{
		Description: sanitizeInput(req.Description),
		Amount:      core.Money{Cents: cents},
		Category:    core.Label{Choice: sanitizeInput(req.Category), Custom: sanitizeInput(req.CustomCategory)},
		PaymentMode: core.Label{Choice: sanitizeInput(req.PaymentMode), Custom: sanitizeInput(req.CustomPaymentMode)},
		Date:        sanitizeInput(req.Date),
	}, nil
}

// filteredRecords loads the session's snapshot, normalizes it, sorts newest
// first and applies the query filter.
func (s *Server) filteredRecords(w http.ResponseWriter, r *http.Request) ([]core.Expense, bool) {
	session := sessionFrom(r)
	docs, err := s.getSnapshot(r.Context(), session.UID)
	if err != nil {
		respondStoreError(w, r, err)
		return nil, false
	}

	records := engine.Normalize(docs)
	engine.SortByDateDesc(records)
	filter := parseFilter(r, records)
	return filter.Apply(records), true
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	records, ok := s.filteredRecords(w, r)
	if !ok {
		return
	}

	views := make([]expenseView, 0, len(records))
	for _, e := range records {
		views = append(views, viewOf(e))
	}
	respondJSON(w, http.StatusOK, expenseListResponse{Expenses: views, Count: len(views)})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	session := sessionFrom(r)
	id, err := s.repo(session.UID).Add(r.Context(), in)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	s.invalidateSnapshot(session.UID)
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	session := sessionFrom(r)
	if err := s.repo(session.UID).Update(r.Context(), id, in); err != nil {
		respondStoreError(w, r, err)
		return
	}

	s.invalidateSnapshot(session.UID)
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	session := sessionFrom(r)
	if err := s.repo(session.UID).Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	s.invalidateSnapshot(session.UID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := s.filteredRecords(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	if err := export.Write(w, records); err != nil {
		// Headers are gone at this point; log and give up on the response.
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}
