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

type StoryHandler struct {
	store serviceStore
}

func NewStoryHandler(store serviceStore) *StoryHandler {
	return &StoryHandler{store: store}
}

// GET /stories
func (h *StoryHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.store.ListStories(r.Context())
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching stories", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", stories, nil)
}

// GET /stories/{id}
func (h *StoryHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.GetStoryByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", st, nil)
}

// POST /stories: alumni and admins publish success stories.
func (h *StoryHandler) CreateStory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title" validate:"required"`
		Content  string `json:"content" validate:"required"`
		Category string `json:"category" validate:"required"`
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

	if err := policy.Authorize(policy.ActorFor(current), policy.ActionCreateStory, policy.Resource{}).Err(); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := validateBody(&req); err != nil {
		writeDomainError(w, err)
		return
	}
	category, ok := models.ParseStoryCategory(req.Category)
	if !ok {
		writeDomainError(w, &models.ValidationError{Field: "category", Detail: "must be career, entrepreneurship, education, personal or industry"})
		return
	}

	st := &models.Story{
		ID:       utils.GenerateID(),
		AuthorID: current.ID,
		Title:    req.Title,
		Content:  req.Content,
		Category: category,
	}
	if err := h.store.CreateStory(r.Context(), st); err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "create story failed", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "created", st, nil)
}
