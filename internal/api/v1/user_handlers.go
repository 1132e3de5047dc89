package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumni-connect/connect-api/internal/auth"
	"github.com/alumni-connect/connect-api/internal/config"
	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/utils"
)

type UserHandler struct {
	store   serviceStore
	storage utils.FileStorage
	cfg     *config.Config
}

func NewUserHandler(store serviceStore, cfg *config.Config) *UserHandler {
	var storage utils.FileStorage
	if cfg.R2AccessKeyID != "" {
		storage = utils.NewR2Storage(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2Endpoint, cfg.R2BucketName)
	} else {
		storage = utils.NewDiskStorage(cfg.UploadDir)
	}
	return &UserHandler{store: store, storage: storage, cfg: cfg}
}

// GET /users/me
func (h *UserHandler) GetSelfProfile(w http.ResponseWriter, r *http.Request) {
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	u, err := h.store.GetUserByID(r.Context(), current.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", u, nil)
}

// GET /users/{id}: public directory view of another member.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing id", nil, nil)
		return
	}
	u, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", u, nil)
}

// PUT /users/me: profile fields only, never role/id/active.
func (h *UserHandler) UpdateSelfProfile(w http.ResponseWriter, r *http.Request) {
	// payload with pointers to detect omitted fields
	var payload struct {
		Name           *string                 `json:"name,omitempty"`
		Password       *string                 `json:"password,omitempty"`
		Headline       *string                 `json:"headline,omitempty"`
		Company        *string                 `json:"company,omitempty"`
		GraduationYear *int                    `json:"graduation_year,omitempty"`
		Major          *string                 `json:"major,omitempty"`
		CGPA           *float64                `json:"cgpa,omitempty"`
		Category       *string                 `json:"category,omitempty"`
		Bio            *string                 `json:"bio,omitempty"`
		AdditionalInfo *map[string]interface{} `json:"additional_info,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "bad request", nil, err.Error())
		return
	}
	ctx := r.Context()
	current := auth.GetUserFromCtx(ctx)
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}

	userFields := map[string]interface{}{}
	if payload.Name != nil && *payload.Name != "" {
		userFields["name"] = *payload.Name
	}
	if payload.Password != nil && *payload.Password != "" {
		hash, err := utils.HashPassword(*payload.Password)
		if err != nil {
			utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "hash error", nil, err.Error())
			return
		}
		userFields["password_hash"] = hash
	}
	if len(userFields) > 0 {
		if err := h.store.UpdateUserFields(ctx, current.ID, userFields); err != nil {
			utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "update failed", nil, err.Error())
			return
		}
	}

	profileFields := map[string]interface{}{}
	if payload.Headline != nil {
		profileFields["headline"] = *payload.Headline
	}
	if payload.Company != nil {
		profileFields["company"] = *payload.Company
	}
	if payload.GraduationYear != nil {
		profileFields["graduation_year"] = *payload.GraduationYear
	}
	if payload.Major != nil {
		profileFields["major"] = *payload.Major
	}
	if payload.CGPA != nil {
		if *payload.CGPA < 0 || *payload.CGPA > 10 {
			writeDomainError(w, &models.ValidationError{Field: "cgpa", Detail: "must be between 0 and 10"})
			return
		}
		profileFields["cgpa"] = *payload.CGPA
	}
	if payload.Category != nil {
		profileFields["category"] = *payload.Category
	}
	if payload.Bio != nil {
		profileFields["bio"] = *payload.Bio
	}
	if payload.AdditionalInfo != nil {
		profileFields["additional_info"] = utils.DatatypesJSONFromMap(*payload.AdditionalInfo)
	}
	if len(profileFields) > 0 {
		if err := h.store.UpdateProfileFields(ctx, current.ID, profileFields); err != nil {
			utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "update failed", nil, err.Error())
			return
		}
	}

	u, err := h.store.GetUserByID(ctx, current.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "profile updated", u, nil)
}

// POST /users/me/picture
func (h *UserHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current := auth.GetUserFromCtx(ctx)
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}

	// Max 5MB
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "file too large or invalid form", nil, err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing file field", nil, err.Error())
		return
	}
	defer file.Close()

	if current.Profile.ProfilePictureURL != "" {
		_ = h.storage.DeleteFile(ctx, current.Profile.ProfilePictureURL)
	}
	key, err := h.storage.SaveFile(ctx, "profile-pictures", header.Filename, file)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "failed to save file", nil, err.Error())
		return
	}
	if err := h.store.UpdateProfileFields(ctx, current.ID, map[string]interface{}{
		"profile_picture_url": key,
	}); err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "failed to update profile", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "profile picture uploaded", map[string]string{
		"url_suffix": key,
		"url":        fmt.Sprintf("%s/uploads/%s", h.cfg.UploadBaseURL, key),
	}, nil)
}

// DELETE /users/me/picture
func (h *UserHandler) DeleteProfilePicture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current := auth.GetUserFromCtx(ctx)
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	if current.Profile.ProfilePictureURL != "" {
		_ = h.storage.DeleteFile(ctx, current.Profile.ProfilePictureURL)
	}
	if err := h.store.UpdateProfileFields(ctx, current.ID, map[string]interface{}{
		"profile_picture_url": "",
	}); err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "failed to update profile", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "profile picture deleted", nil, nil)
}
