package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumni-connect/connect-api/internal/auth"
	"github.com/alumni-connect/connect-api/internal/mentorship"
	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/utils"
)

type MentorshipHandler struct {
	engine *mentorship.Engine
}

func NewMentorshipHandler(engine *mentorship.Engine) *MentorshipHandler {
	return &MentorshipHandler{engine: engine}
}

// GET /mentorship: scoped to the viewer: students and mentors see requests
// naming them, admins see all.
func (h *MentorshipHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	reqs, err := h.engine.ListFor(r.Context(), current)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching requests", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", reqs, nil)
}

// POST /mentorship
func (h *MentorshipHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MentorID string `json:"mentor_id" validate:"required"`
		Subject  string `json:"subject" validate:"required"`
		Message  string `json:"message" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request body", nil, err.Error())
		return
	}
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	if err := validateBody(&req); err != nil {
		writeDomainError(w, err)
		return
	}

	created, err := h.engine.Submit(r.Context(), current, req.MentorID, req.Subject, req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "request submitted", created, nil)
}

// PUT /mentorship/{id}/status: the named mentor (or an admin) resolves a
// pending request. Resolving twice is a conflict, not a no-op.
func (h *MentorshipHandler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request body", nil, err.Error())
		return
	}
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}

	decision, ok := models.ParseDecision(req.Status)
	if !ok {
		writeDomainError(w, &models.ValidationError{Field: "status", Detail: "must be accepted or rejected"})
		return
	}

	updated, err := h.engine.Resolve(r.Context(), current, chi.URLParam(r, "id"), decision)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "request "+string(updated.Status), updated, nil)
}
