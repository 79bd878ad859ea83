package handlers

import (
	"net/http"

	"github.com/dom/esports-stats-ledger/internal/service"
	"github.com/google/uuid"
)

type ComparisonHandler struct {
	comparisons *service.ComparisonService
}

func NewComparisonHandler(comparisons *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisons: comparisons}
}

// queryIDs parses the named query parameters in order, answering 400 on the
// first one that is missing or malformed.
func queryIDs(w http.ResponseWriter, r *http.Request, keys ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(keys))
	for i, key := range keys {
		id, err := queryID(r, key)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

func (h *ComparisonHandler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ids, ok := queryIDs(w, r, "player1Id", "player2Id")
	if !ok {
		return
	}

	result, err := h.comparisons.ComparePlayers(r.Context(), ids[0], ids[1])
	if err != nil {
		writeError(w, r, "comparison.ComparePlayers", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// BestPlayerForAgent answers {} when the agent was never played.
func (h *ComparisonHandler) BestPlayerForAgent(w http.ResponseWriter, r *http.Request) {
	ids, ok := queryIDs(w, r, "agentId")
	if !ok {
		return
	}

	best, err := h.comparisons.BestPlayerForAgent(r.Context(), ids[0])
	if err != nil {
		writeError(w, r, "comparison.BestPlayerForAgent", err)
		return
	}
	if best == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, best)
}

func (h *ComparisonHandler) BestPlayerForMap(w http.ResponseWriter, r *http.Request) {
	ids, ok := queryIDs(w, r, "mapId")
	if !ok {
		return
	}

	best, err := h.comparisons.BestPlayerForMap(r.Context(), ids[0])
	if err != nil {
		writeError(w, r, "comparison.BestPlayerForMap", err)
		return
	}
	if best == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, best)
}

func (h *ComparisonHandler) CompareTeamsOnMap(w http.ResponseWriter, r *http.Request) {
	ids, ok := queryIDs(w, r, "team1Id", "team2Id", "mapId")
	if !ok {
		return
	}

	result, err := h.comparisons.CompareTeamsOnMap(r.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		writeError(w, r, "comparison.CompareTeamsOnMap", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ComparisonHandler) PlayerLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.comparisons.PlayerLeaderboard(r.Context())
	if err != nil {
		writeError(w, r, "comparison.PlayerLeaderboard", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *ComparisonHandler) TeamLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.comparisons.TeamLeaderboard(r.Context())
	if err != nil {
		writeError(w, r, "comparison.TeamLeaderboard", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *ComparisonHandler) PlayerPerformanceTrend(w http.ResponseWriter, r *http.Request) {
	ids, ok := queryIDs(w, r, "playerId")
	if !ok {
		return
	}

	trend, err := h.comparisons.PlayerPerformanceTrend(r.Context(), ids[0])
	if err != nil {
		writeError(w, r, "comparison.PlayerPerformanceTrend", err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

func (h *ComparisonHandler) PlayerBestAgents(w http.ResponseWriter, r *http.Request) {
	ids, ok := queryIDs(w, r, "playerId")
	if !ok {
		return
	}

	agents, err := h.comparisons.PlayerBestAgents(r.Context(), ids[0])
	if err != nil {
		writeError(w, r, "comparison.PlayerBestAgents", err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

func (h *ComparisonHandler) TeamMapPerformance(w http.ResponseWriter, r *http.Request) {
	ids, ok := queryIDs(w, r, "teamId")
	if !ok {
		return
	}

	perf, err := h.comparisons.TeamMapPerformance(r.Context(), ids[0])
	if err != nil {
		writeError(w, r, "comparison.TeamMapPerformance", err)
		return
	}
	writeJSON(w, http.StatusOK, perf)
}
