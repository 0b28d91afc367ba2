package server

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/expenserule/expenserule/internal/service"
)

// handleExportCSV streams all expenses as a CSV suitable for handing to an
// accountant.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.storage.GetExpenses(r.Context(), service.ExpenseFilter{})
	if err != nil {
		mapStorageError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"merchant", "date", "amount", "category", "schedule_c_line", "notes"})
	for _, e := range expenses {
		_ = cw.Write([]string{
			e.Merchant,
			e.Date,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Category,
			e.ScheduleCLine,
			e.Notes,
		})
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		s.logger.Error("csv export failed", "error", err)
	}
}
