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

type OpportunityHandler struct {
	store serviceStore
}

func NewOpportunityHandler(store serviceStore) *OpportunityHandler {
	return &OpportunityHandler{store: store}
}

// GET /opportunities
func (h *OpportunityHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	opps, err := h.store.ListOpportunities(r.Context())
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching opportunities", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", opps, nil)
}

// GET /opportunities/{id}
func (h *OpportunityHandler) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.GetOpportunityByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", o, nil)
}

// POST /opportunities: alumni and admins only.
func (h *OpportunityHandler) CreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        string   `json:"title" validate:"required"`
		Company      string   `json:"company" validate:"required"`
		Type         string   `json:"type" validate:"required"`
		Location     string   `json:"location"`
		Description  string   `json:"description" validate:"required"`
		Requirements []string `json:"requirements"`
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

	if err := policy.Authorize(policy.ActorFor(current), policy.ActionCreateOpportunity, policy.Resource{}).Err(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := validateBody(&req); err != nil {
		writeDomainError(w, err)
		return
	}
	oppType, ok := models.ParseOpportunityType(req.Type)
	if !ok {
		writeDomainError(w, &models.ValidationError{Field: "type", Detail: "must be full-time, part-time, internship or contract"})
		return
	}

	o := &models.Opportunity{
		ID:           utils.GenerateID(),
		PosterID:     current.ID,
		Title:        req.Title,
		Company:      req.Company,
		Type:         oppType,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: utils.DatatypesJSONFromStrings(req.Requirements),
		Active:       true,
	}
	if err := h.store.CreateOpportunity(r.Context(), o); err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "create opportunity failed", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "created", o, nil)
}

// DELETE /opportunities/{id}: poster or admin clears the active flag.
func (h *OpportunityHandler) DeactivateOpportunity(w http.ResponseWriter, r *http.Request) {
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	o, err := h.store.GetOpportunityByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if current.Role != models.RoleAdmin && o.PosterID != current.ID {
		utils.WriteJSONResponse(w, http.StatusForbidden, false, "forbidden", nil, nil)
		return
	}
	if err := h.store.DeactivateOpportunity(r.Context(), o.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "opportunity deactivated", nil, nil)
}
