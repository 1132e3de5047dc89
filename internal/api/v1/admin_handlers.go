package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumni-connect/connect-api/internal/auth"
	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/policy"
	"github.com/alumni-connect/connect-api/internal/utils"
)

type AdminHandler struct {
	store serviceStore
}

func NewAdminHandler(store serviceStore) *AdminHandler {
	return &AdminHandler{store: store}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetDashboardStats(r.Context())
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching stats", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", stats, nil)
}

// GET /admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching users", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", users, nil)
}

// PUT /admin/users/{id}: role changes and enable/disable.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Role   *string `json:"role,omitempty"`
		Active *bool   `json:"active,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request", nil, err.Error())
		return
	}
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	if payload.Role != nil {
		role, ok := models.ParseRole(*payload.Role)
		if !ok {
			utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid role", nil, nil)
			return
		}
		if err := h.store.ChangeUserRole(ctx, id, role); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if payload.Active != nil {
		if err := h.store.SetUserActive(ctx, id, *payload.Active); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "updated", nil, nil)
}

// DELETE /admin/users/{id}: admins may delete any account but their own.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing user id", nil, nil)
		return
	}
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}

	if err := policy.Authorize(policy.ActorFor(current), policy.ActionDeleteUser, policy.Resource{TargetID: id}).Err(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "user deleted", nil, nil)
}
