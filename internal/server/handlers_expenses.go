package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/expenserule/expenserule/internal/config"
	"github.com/expenserule/expenserule/internal/model"
	"github.com/expenserule/expenserule/internal/service"
)

// expenseRequest is the request body for creating or updating an expense.
type expenseRequest struct {
	Merchant string  `json:"merchant"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Notes    string  `json:"notes"`
	// Remember records the merchant-to-category pair in correction memory so
	// future receipts from this merchant resolve without a remote call.
	Remember bool `json:"remember"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	categories := s.catalog.Categories()
	out := make([]map[string]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, map[string]string{
			"name":            c.Name,
			"schedule_c_line": c.ScheduleCLine,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := service.ExpenseFilter{
		Category: r.URL.Query().Get("category"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	expenses, err := s.storage.GetExpenses(r.Context(), filter)
	if err != nil {
		mapStorageError(w, err, s.logger)
		return
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeExpenseRequest(w, r)
	if !ok {
		return
	}

	category, _ := s.catalog.Lookup(req.Category)
	expense := &model.Expense{
		Merchant:      strings.TrimSpace(req.Merchant),
		Date:          req.Date,
		Amount:        req.Amount,
		Category:      category.Name,
		ScheduleCLine: category.ScheduleCLine,
		Notes:         req.Notes,
	}

	if err := s.storage.SaveExpense(r.Context(), expense); err != nil {
		mapStorageError(w, err, s.logger)
		return
	}

	s.rememberCorrection(r, req)

	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	req, ok := s.decodeExpenseRequest(w, r)
	if !ok {
		return
	}

	category, _ := s.catalog.Lookup(req.Category)
	expense := &model.Expense{
		ID:            id,
		Merchant:      strings.TrimSpace(req.Merchant),
		Date:          req.Date,
		Amount:        req.Amount,
		Category:      category.Name,
		ScheduleCLine: category.ScheduleCLine,
		Notes:         req.Notes,
	}

	if err := s.storage.UpdateExpense(r.Context(), expense); err != nil {
		mapStorageError(w, err, s.logger)
		return
	}

	s.rememberCorrection(r, req)

	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := s.storage.DeleteExpense(r.Context(), id); err != nil {
		mapStorageError(w, err, s.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeExpenseRequest parses and validates the shared expense body. The
// category must be a member of the closed catalog; no handler may introduce
// a category outside it.
func (s *Server) decodeExpenseRequest(w http.ResponseWriter, r *http.Request) (expenseRequest, bool) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	if strings.TrimSpace(req.Merchant) == "" {
		writeError(w, http.StatusBadRequest, "merchant is required")
		return req, false
	}
	if !s.catalog.IsValid(req.Category) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", req.Category))
		return req, false
	}
	return req, true
}

// rememberCorrection upserts the merchant-to-category override when the user
// opted to remember their choice. Failures are logged, not surfaced: the
// expense write already succeeded.
func (s *Server) rememberCorrection(r *http.Request, req expenseRequest) {
	if !req.Remember {
		return
	}
	if err := s.storage.SaveCorrection(r.Context(), req.Merchant, req.Category); err != nil {
		s.logger.Error("failed to save correction",
			"merchant", req.Merchant,
			"category", req.Category,
			"error", err)
	}
}

// handleSetup stores the OpenAI API key. The next upload rebuilds the
// ingestion pipeline with the new key.
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		writeError(w, http.StatusBadRequest, "api_key is required")
		return
	}

	if err := config.SaveAPIKey(s.cfg.DataDir, req.APIKey); err != nil {
		s.logger.Error("failed to save API key", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save API key")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "configured"})
}
