package v1

import (
	"encoding/json"
	"net/http"

	"github.com/alumni-connect/connect-api/internal/auth"
	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/policy"
	"github.com/alumni-connect/connect-api/internal/utils"
)

type ApplicationHandler struct {
	store serviceStore
}

func NewApplicationHandler(store serviceStore) *ApplicationHandler {
	return &ApplicationHandler{store: store}
}

// GET /applications: the caller's own submissions.
func (h *ApplicationHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	apps, err := h.store.ListApplicationsByApplicant(r.Context(), current.ID)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching applications", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", apps, nil)
}

// POST /applications: students apply to an opportunity, naming themselves.
// A second application to the same opportunity is a conflict.
func (h *ApplicationHandler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OpportunityID string `json:"opportunity_id" validate:"required"`
		CoverLetter   string `json:"cover_letter" validate:"required"`
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

	if err := policy.Authorize(policy.ActorFor(current), policy.ActionCreateApplication, policy.Resource{ApplicantID: current.ID}).Err(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := validateBody(&req); err != nil {
		writeDomainError(w, err)
		return
	}

	opp, err := h.store.GetOpportunityByID(r.Context(), req.OpportunityID)
	if err != nil {
		writeDomainError(w, &models.ValidationError{Field: "opportunity_id", Detail: "no such opportunity"})
		return
	}
	if !opp.Active {
		writeDomainError(w, &models.ValidationError{Field: "opportunity_id", Detail: "opportunity is no longer active"})
		return
	}

	a := &models.Application{
		ID:            utils.GenerateID(),
		ApplicantID:   current.ID,
		OpportunityID: opp.ID,
		CoverLetter:   req.CoverLetter,
	}
	if err := h.store.CreateApplication(r.Context(), a); err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "application submitted", a, nil)
}
