package handlers

import (
	"net/http"

	"github.com/dom/esports-stats-ledger/internal/service"
)

type StatsHandler struct {
	ledger *service.LedgerService
}

func NewStatsHandler(ledger *service.LedgerService) *StatsHandler {
	return &StatsHandler{ledger: ledger}
}

// Rebuild recomputes all aggregates from match history.
func (h *StatsHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledger.RebuildAggregates(r.Context())
	if err != nil {
		writeError(w, r, "stats.Rebuild", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
