package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitease/splitease/internal/middleware"
	"github.com/splitease/splitease/internal/models"
)

type createGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type groupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

type addMembersRequest struct {
	Members []string `json:"members"`
}

func groupToAPI(g *models.Group) groupResponse {
	return groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Members:   g.Members,
		CreatedAt: g.CreatedAt,
	}
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, models.ErrValidation("invalid request body"))
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), cur, req.Name, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, groupToAPI(group))
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	group, err := h.groups.GetGroup(r.Context(), cur, chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, groupToAPI(group))
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	groups, err := h.groups.ListGroups(r.Context(), cur)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]groupResponse, len(groups))
	for i, g := range groups {
		out[i] = groupToAPI(g)
	}
	writeJSON(w, http.StatusOK, map[string][]groupResponse{"groups": out})
}

func (h *Handler) addMembers(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	var req addMembersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, models.ErrValidation("invalid request body"))
		return
	}

	if err := h.groups.AddMembers(r.Context(), cur, chi.URLParam(r, "groupID"), req.Members); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	err := h.groups.RemoveMember(r.Context(), cur, chi.URLParam(r, "groupID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
