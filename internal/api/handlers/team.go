package handlers

import (
	"net/http"

	"github.com/dom/esports-stats-ledger/internal/service"
)

type TeamHandler struct {
	catalog *service.CatalogService
}

func NewTeamHandler(catalog *service.CatalogService) *TeamHandler {
	return &TeamHandler{catalog: catalog}
}

type TeamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.catalog.ListTeams(r.Context())
	if err != nil {
		writeError(w, r, "team.List", err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	team, err := h.catalog.GetTeam(r.Context(), id)
	if err != nil {
		writeError(w, r, "team.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TeamRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	team, err := h.catalog.CreateTeam(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, "team.Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

// Update renames the team. Stats and roster are not writable here.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req TeamRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	team, err := h.catalog.RenameTeam(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, r, "team.Update", err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.catalog.DeleteTeam(r.Context(), id); err != nil {
		writeError(w, r, "team.Delete", err)
		return
	}
	w.Write([]byte("Team deleted"))
}
