package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alumni-connect/connect-api/internal/auth"
	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/policy"
	"github.com/alumni-connect/connect-api/internal/utils"
)

type ScholarshipHandler struct {
	store serviceStore
}

func NewScholarshipHandler(store serviceStore) *ScholarshipHandler {
	return &ScholarshipHandler{store: store}
}

// GET /scholarships
func (h *ScholarshipHandler) ListScholarships(w http.ResponseWriter, r *http.Request) {
	scs, err := h.store.ListScholarships(r.Context())
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching scholarships", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", scs, nil)
}

// GET /scholarships/eligible: active scholarships the student qualifies for,
// matched against the CGPA and category on their profile.
func (h *ScholarshipHandler) ListEligibleScholarships(w http.ResponseWriter, r *http.Request) {
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	if current.Role != models.RoleStudent {
		utils.WriteJSONResponse(w, http.StatusForbidden, false, "forbidden", nil, nil)
		return
	}

	cgpa := 0.0
	if current.Profile.CGPA != nil {
		cgpa = *current.Profile.CGPA
	}
	scs, err := h.store.ListEligibleScholarships(r.Context(), cgpa, current.Profile.Category)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching scholarships", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", scs, nil)
}

// GET /scholarships/{id}
func (h *ScholarshipHandler) GetScholarship(w http.ResponseWriter, r *http.Request) {
	sc, err := h.store.GetScholarshipByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", sc, nil)
}

// POST /scholarships: alumni and admins only.
func (h *ScholarshipHandler) CreateScholarship(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title               string   `json:"title" validate:"required"`
		Description         string   `json:"description"`
		EligibilityCriteria string   `json:"eligibility_criteria"`
		CGPARequirement     *float64 `json:"cgpa_requirement"`
		CategoryRequirement string   `json:"category_requirement"`
		Amount              float64  `json:"amount" validate:"required,gt=0"`
		Deadline            *string  `json:"deadline"`
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

	if err := policy.Authorize(policy.ActorFor(current), policy.ActionCreateScholarship, policy.Resource{}).Err(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := validateBody(&req); err != nil {
		writeDomainError(w, err)
		return
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	sc := &models.Scholarship{
		ID:                  utils.GenerateID(),
		CreatedBy:           current.ID,
		Title:               req.Title,
		Description:         req.Description,
		EligibilityCriteria: req.EligibilityCriteria,
		CGPARequirement:     req.CGPARequirement,
		CategoryRequirement: req.CategoryRequirement,
		Amount:              req.Amount,
		Deadline:            deadline,
		Active:              true,
	}
	if err := h.store.CreateScholarship(r.Context(), sc); err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "create scholarship failed", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "created", sc, nil)
}

// PUT /scholarships/{id}: the creating alumni or an admin edits the listing.
func (h *ScholarshipHandler) UpdateScholarship(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title               *string  `json:"title,omitempty"`
		Description         *string  `json:"description,omitempty"`
		EligibilityCriteria *string  `json:"eligibility_criteria,omitempty"`
		CGPARequirement     *float64 `json:"cgpa_requirement,omitempty"`
		CategoryRequirement *string  `json:"category_requirement,omitempty"`
		Amount              *float64 `json:"amount,omitempty"`
		Deadline            *string  `json:"deadline,omitempty"`
		Active              *bool    `json:"active,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request body", nil, err.Error())
		return
	}
	ctx := r.Context()
	current := auth.GetUserFromCtx(ctx)
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}

	sc, err := h.store.GetScholarshipByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := policy.Authorize(policy.ActorFor(current), policy.ActionManageScholarship, policy.Resource{OwnerID: sc.CreatedBy}).Err(); err != nil {
		writeDomainError(w, err)
		return
	}

	fields := map[string]interface{}{}
	if payload.Title != nil && *payload.Title != "" {
		fields["title"] = *payload.Title
	}
	if payload.Description != nil {
		fields["description"] = *payload.Description
	}
	if payload.EligibilityCriteria != nil {
		fields["eligibility_criteria"] = *payload.EligibilityCriteria
	}
	if payload.CGPARequirement != nil {
		fields["cgpa_requirement"] = *payload.CGPARequirement
	}
	if payload.CategoryRequirement != nil {
		fields["category_requirement"] = *payload.CategoryRequirement
	}
	if payload.Amount != nil {
		if *payload.Amount <= 0 {
			writeDomainError(w, &models.ValidationError{Field: "amount", Detail: "must be greater than zero"})
			return
		}
		fields["amount"] = *payload.Amount
	}
	if payload.Deadline != nil {
		deadline, err := parseDeadline(payload.Deadline)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		fields["deadline"] = deadline
	}
	if payload.Active != nil {
		fields["active"] = *payload.Active
	}
	if len(fields) > 0 {
		if err := h.store.UpdateScholarshipFields(ctx, sc.ID, fields); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	updated, err := h.store.GetScholarshipByID(ctx, sc.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "scholarship updated", updated, nil)
}

// DELETE /scholarships/{id}: soft delete, the row stays for existing
// applications.
func (h *ScholarshipHandler) DeactivateScholarship(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current := auth.GetUserFromCtx(ctx)
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	sc, err := h.store.GetScholarshipByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := policy.Authorize(policy.ActorFor(current), policy.ActionManageScholarship, policy.Resource{OwnerID: sc.CreatedBy}).Err(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.store.DeactivateScholarship(ctx, sc.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "scholarship deactivated", nil, nil)
}

// POST /scholarships/{id}/apply: students apply once per scholarship.
func (h *ScholarshipHandler) ApplyForScholarship(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CoverLetter    string `json:"cover_letter"`
		AdditionalInfo string `json:"additional_info"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request body", nil, err.Error())
		return
	}
	ctx := r.Context()
	current := auth.GetUserFromCtx(ctx)
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}

	if err := policy.Authorize(policy.ActorFor(current), policy.ActionApplyScholarship, policy.Resource{ApplicantID: current.ID}).Err(); err != nil {
		writeDomainError(w, err)
		return
	}

	sc, err := h.store.GetScholarshipByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, &models.ValidationError{Field: "scholarship_id", Detail: "no such scholarship"})
		return
	}
	if !sc.Active {
		writeDomainError(w, &models.ValidationError{Field: "scholarship_id", Detail: "scholarship is no longer active"})
		return
	}

	a := &models.ScholarshipApplication{
		ID:             utils.GenerateID(),
		StudentID:      current.ID,
		ScholarshipID:  sc.ID,
		CoverLetter:    req.CoverLetter,
		AdditionalInfo: req.AdditionalInfo,
		Status:         models.ScholarshipAppSubmitted,
	}
	if err := h.store.CreateScholarshipApplication(ctx, a); err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "application submitted", a, nil)
}

// GET /scholarships/{id}/applications: the creating alumni or an admin
// reviews the submissions.
func (h *ScholarshipHandler) ListScholarshipApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current := auth.GetUserFromCtx(ctx)
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	sc, err := h.store.GetScholarshipByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := policy.Authorize(policy.ActorFor(current), policy.ActionManageScholarship, policy.Resource{OwnerID: sc.CreatedBy}).Err(); err != nil {
		writeDomainError(w, err)
		return
	}
	apps, err := h.store.ListScholarshipApplications(ctx, sc.ID)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching applications", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", apps, nil)
}

// GET /scholarships/applications/my
func (h *ScholarshipHandler) ListMyScholarshipApplications(w http.ResponseWriter, r *http.Request) {
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	apps, err := h.store.ListScholarshipApplicationsByStudent(r.Context(), current.ID)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching applications", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", apps, nil)
}

// PUT /scholarships/applications/{id}/status: the scholarship owner or an
// admin moves an application through submitted/under_review/approved/rejected.
func (h *ScholarshipHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request body", nil, err.Error())
		return
	}
	ctx := r.Context()
	current := auth.GetUserFromCtx(ctx)
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}

	status, ok := models.ParseScholarshipApplicationStatus(req.Status)
	if !ok {
		writeDomainError(w, &models.ValidationError{Field: "status", Detail: "must be submitted, under_review, approved or rejected"})
		return
	}

	app, err := h.store.GetScholarshipApplicationByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := policy.Authorize(policy.ActorFor(current), policy.ActionManageScholarship, policy.Resource{OwnerID: app.ScholarshipOwner}).Err(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.store.UpdateScholarshipApplicationStatus(ctx, app.ID, status); err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "application status updated", nil, nil)
}

func parseDeadline(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, *raw); err == nil {
			return &ts, nil
		}
	}
	return nil, &models.ValidationError{Field: "deadline", Detail: "must be an RFC 3339 timestamp or YYYY-MM-DD date"}
}
