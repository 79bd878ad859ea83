package handlers

import (
	"net/http"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/dom/esports-stats-ledger/internal/service"
	"github.com/google/uuid"
)

type MatchHandler struct {
	ledger *service.LedgerService
}

func NewMatchHandler(ledger *service.LedgerService) *MatchHandler {
	return &MatchHandler{ledger: ledger}
}

// MatchRequest is the write payload. The map count is checked by the ledger so
// callers get its message.
type MatchRequest struct {
	Team1 string       `json:"team1" validate:"required,uuid"`
	Team2 string       `json:"team2" validate:"required,uuid"`
	Maps  []MapPayload `json:"maps" validate:"required,dive"`
}

type MapPayload struct {
	MapID      string                 `json:"mapId" validate:"required,uuid"`
	Team1Score int                    `json:"team1Score" validate:"gte=0"`
	Team2Score int                    `json:"team2Score" validate:"gte=0"`
	Stats      map[string]StatPayload `json:"stats" validate:"dive,keys,uuid,endkeys"`
}

type StatPayload struct {
	Agent   string `json:"agent" validate:"omitempty,uuid"`
	Kills   int    `json:"kills" validate:"gte=0"`
	Deaths  int    `json:"deaths" validate:"gte=0"`
	Assists int    `json:"assists" validate:"gte=0"`
}

// input converts an already validated request.
func (req MatchRequest) input() service.MatchInput {
	in := service.MatchInput{
		Team1ID: uuid.MustParse(req.Team1),
		Team2ID: uuid.MustParse(req.Team2),
		Maps:    make([]domain.MapInput, len(req.Maps)),
	}
	for i, m := range req.Maps {
		stats := make(map[uuid.UUID]domain.StatInput, len(m.Stats))
		for playerID, s := range m.Stats {
			stat := domain.StatInput{Kills: s.Kills, Deaths: s.Deaths, Assists: s.Assists}
			if s.Agent != "" {
				agentID := uuid.MustParse(s.Agent)
				stat.AgentID = &agentID
			}
			stats[uuid.MustParse(playerID)] = stat
		}
		in.Maps[i] = domain.MapInput{
			MapID:      uuid.MustParse(m.MapID),
			Team1Score: m.Team1Score,
			Team2Score: m.Team2Score,
			Stats:      stats,
		}
	}
	return in
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.ledger.ListMatches(r.Context())
	if err != nil {
		writeError(w, r, "match.List", err)
		return
	}
	refs := make([]*domain.Match, len(matches))
	for i := range matches {
		refs[i] = &matches[i]
	}
	views, err := h.ledger.Describe(r.Context(), refs...)
	if err != nil {
		writeError(w, r, "match.List", err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// writeMatch renders one match with its references resolved.
func (h *MatchHandler) writeMatch(w http.ResponseWriter, r *http.Request, handler string, status int, match *domain.Match) {
	views, err := h.ledger.Describe(r.Context(), match)
	if err != nil {
		writeError(w, r, handler, err)
		return
	}
	writeJSON(w, status, views[0])
}

func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	match, err := h.ledger.GetMatch(r.Context(), id)
	if err != nil {
		writeError(w, r, "match.Get", err)
		return
	}
	h.writeMatch(w, r, "match.Get", http.StatusOK, match)
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	match, err := h.ledger.CreateMatch(r.Context(), req.input())
	if err != nil {
		writeError(w, r, "match.Create", err)
		return
	}
	h.writeMatch(w, r, "match.Create", http.StatusCreated, match)
}

func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req MatchRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	match, err := h.ledger.UpdateMatch(r.Context(), id, req.input())
	if err != nil {
		writeError(w, r, "match.Update", err)
		return
	}
	h.writeMatch(w, r, "match.Update", http.StatusOK, match)
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ledger.DeleteMatch(r.Context(), id); err != nil {
		writeError(w, r, "match.Delete", err)
		return
	}
	w.Write([]byte("Match deleted"))
}
