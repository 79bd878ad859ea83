package handlers

import (
	"net/http"

	"github.com/dom/esports-stats-ledger/internal/service"
)

type PlayerHandler struct {
	catalog *service.CatalogService
	ledger  *service.LedgerService
}

func NewPlayerHandler(catalog *service.CatalogService, ledger *service.LedgerService) *PlayerHandler {
	return &PlayerHandler{catalog: catalog, ledger: ledger}
}

type PlayerRequest struct {
	Name string  `json:"name" validate:"required,max=100"`
	Team *string `json:"team" validate:"omitempty,uuid"`
}

type ResetStatsResponse struct {
	Players int64 `json:"players"`
}

func (req PlayerRequest) input() (service.PlayerInput, error) {
	teamID, err := optionalID(req.Team)
	if err != nil {
		return service.PlayerInput{}, err
	}
	return service.PlayerInput{Name: req.Name, TeamID: teamID}, nil
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.catalog.ListPlayers(r.Context())
	if err != nil {
		writeError(w, r, "player.List", err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	player, err := h.catalog.GetPlayer(r.Context(), id)
	if err != nil {
		writeError(w, r, "player.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input, err := req.input()
	if err != nil {
		http.Error(w, "Invalid team", http.StatusBadRequest)
		return
	}

	player, err := h.catalog.CreatePlayer(r.Context(), input)
	if err != nil {
		writeError(w, r, "player.Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req PlayerRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input, err := req.input()
	if err != nil {
		http.Error(w, "Invalid team", http.StatusBadRequest)
		return
	}

	player, err := h.catalog.UpdatePlayer(r.Context(), id, input)
	if err != nil {
		writeError(w, r, "player.Update", err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.catalog.DeletePlayer(r.Context(), id); err != nil {
		writeError(w, r, "player.Delete", err)
		return
	}
	w.Write([]byte("Player deleted"))
}

func (h *PlayerHandler) ResetStats(w http.ResponseWriter, r *http.Request) {
	n, err := h.ledger.ResetPlayerStats(r.Context())
	if err != nil {
		writeError(w, r, "player.ResetStats", err)
		return
	}
	writeJSON(w, http.StatusOK, ResetStatsResponse{Players: n})
}
