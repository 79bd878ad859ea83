package handlers

import (
	"net/http"

	"github.com/dom/esports-stats-ledger/internal/service"
)

// AgentHandler and MapHandler serve the lookup dimensions of stat lines.
type AgentHandler struct {
	catalog *service.CatalogService
}

func NewAgentHandler(catalog *service.CatalogService) *AgentHandler {
	return &AgentHandler{catalog: catalog}
}

type AgentRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"required"`
}

func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.catalog.ListAgents(r.Context())
	if err != nil {
		writeError(w, r, "agent.List", err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	agent, err := h.catalog.GetAgent(r.Context(), id)
	if err != nil {
		writeError(w, r, "agent.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AgentRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	agent, err := h.catalog.CreateAgent(r.Context(), req.Name, req.Icon)
	if err != nil {
		writeError(w, r, "agent.Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, agent)
}

func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req AgentRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	agent, err := h.catalog.UpdateAgent(r.Context(), id, req.Name, req.Icon)
	if err != nil {
		writeError(w, r, "agent.Update", err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.catalog.DeleteAgent(r.Context(), id); err != nil {
		writeError(w, r, "agent.Delete", err)
		return
	}
	w.Write([]byte("Agent deleted"))
}

type MapHandler struct {
	catalog *service.CatalogService
}

func NewMapHandler(catalog *service.CatalogService) *MapHandler {
	return &MapHandler{catalog: catalog}
}

type MapRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *MapHandler) List(w http.ResponseWriter, r *http.Request) {
	maps, err := h.catalog.ListMaps(r.Context())
	if err != nil {
		writeError(w, r, "map.List", err)
		return
	}
	writeJSON(w, http.StatusOK, maps)
}

func (h *MapHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.catalog.GetMap(r.Context(), id)
	if err != nil {
		writeError(w, r, "map.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MapHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req MapRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.catalog.CreateMap(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, "map.Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *MapHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req MapRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.catalog.UpdateMap(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, r, "map.Update", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MapHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.catalog.DeleteMap(r.Context(), id); err != nil {
		writeError(w, r, "map.Delete", err)
		return
	}
	w.Write([]byte("Map deleted"))
}
