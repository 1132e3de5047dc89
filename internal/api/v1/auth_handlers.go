package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/alumni-connect/connect-api/internal/auth"
	"github.com/alumni-connect/connect-api/internal/config"
	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/service"
	"github.com/alumni-connect/connect-api/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthHandler struct {
	cfg   *config.Config
	user  *service.UserService
	store *serviceStore
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResp struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *models.User `json:"user,omitempty"`
}

func NewAuthHandler(cfg *config.Config, userSvc *service.UserService, store serviceStore) *AuthHandler {
	return &AuthHandler{cfg: cfg, user: userSvc, store: &store}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name" validate:"required"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request body", nil, err.Error())
		return
	}
	if err := validateBody(&req); err != nil {
		writeDomainError(w, err)
		return
	}

	// unchecked role strings stop here; downstream code only sees the closed type
	role := models.RoleStudent
	if req.Role != "" {
		parsed, ok := models.ParseRole(req.Role)
		if !ok || parsed == models.RoleAdmin {
			utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid role, must be 'student' or 'alumni'", nil, nil)
			return
		}
		role = parsed
	}

	if _, err := h.store.GetUserByEmail(r.Context(), req.Email); err == nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "user already exists", nil, nil)
		return
	}

	user, err := h.user.CreateUser(r.Context(), req.Email, req.Password, req.Name, role, "")
	if err != nil {
		// the pre-check above can lose a race with a concurrent registration
		var conflict *models.ConflictError
		if errors.As(err, &conflict) {
			writeDomainError(w, err)
			return
		}
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "error creating user", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "user registered", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	}, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "invalid request", nil, err.Error())
		return
	}
	u, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid credentials", nil, nil)
		return
	}
	ok, err := utils.ComparePasswordAndHash(req.Password, u.PasswordHash)
	if err != nil || !ok {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid credentials", nil, nil)
		return
	}
	if !u.Active {
		utils.WriteJSONResponse(w, http.StatusForbidden, false, "account disabled", nil, nil)
		return
	}
	h.issueTokens(w, r, u)
}

// Logout expects the refresh token in the "refresh_token" cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil || cookie.Value == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing refresh token cookie", nil, nil)
		return
	}
	if err := h.store.RevokeRefreshToken(r.Context(), cookie.Value); err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "revoke error", nil, err.Error())
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSONResponse(w, http.StatusOK, true, "logged out", nil, nil)
}

// Refresh rotates the refresh token and returns a new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil || cookie.Value == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "missing refresh token cookie", nil, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rt, err := h.store.FindRefreshToken(ctx, cookie.Value)
	if err != nil || rt == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid refresh token", nil, nil)
		return
	}

	newPlain := utils.RandomToken()
	newExpiry := time.Now().Add(h.cfg.RefreshTokenTTL)
	if err := h.store.RotateRefreshToken(ctx, cookie.Value, utils.GenerateID(), newPlain, newExpiry); err != nil {
		// rotation failed (token may have been concurrently revoked/expired)
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid refresh token", nil, nil)
		return
	}
	u, err := h.store.GetUserByID(r.Context(), rt.UserID)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "user not found", nil, err.Error())
		return
	}
	access, err := auth.GenerateAccessToken(h.cfg, u.ID, string(u.Role))
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "could not create access token", nil, nil)
		return
	}
	h.setRefreshCookie(w, r, newPlain, newExpiry)
	resp := tokenResp{AccessToken: access, ExpiresIn: int64(h.cfg.AccessTokenTTL.Seconds())}
	utils.WriteJSONResponse(w, http.StatusOK, true, "refresh successful", resp, nil)
}

// Me returns the authenticated identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", current, nil)
}

// GoogleSignIn exchanges an authorization code for tokens, validates the id
// token, and creates the user on first sign-in (as a student; alumni status
// is granted by an admin afterwards).
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "bad request", nil, "missing code")
		return
	}

	ctx := r.Context()
	oauthCfg := &oauth2.Config{
		ClientID:     h.cfg.GoogleClientID,
		ClientSecret: h.cfg.GoogleClientSecret,
		RedirectURL:  h.cfg.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}

	token, err := oauthCfg.Exchange(ctx, req.Code)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "code exchange failed", nil, err.Error())
		return
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "id_token not present in token response", nil, nil)
		return
	}
	payload, err := idtoken.Validate(ctx, rawIDToken, h.cfg.GoogleClientID)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "invalid id token", nil, err.Error())
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		utils.WriteJSONResponse(w, http.StatusBadRequest, false, "email not present in token", nil, nil)
		return
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	u, err := h.store.GetUserByEmail(ctx, email)
	if err != nil {
		created, err2 := h.user.CreateUser(ctx, email, "", name, models.RoleStudent, picture)
		if err2 != nil {
			utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error creating user", nil, err2.Error())
			return
		}
		u, _ = h.store.GetUserByID(ctx, created.ID)
	}
	if !u.Active {
		utils.WriteJSONResponse(w, http.StatusForbidden, false, "account disabled", nil, nil)
		return
	}
	h.issueTokens(w, r, u)
}

func (h *AuthHandler) issueTokens(w http.ResponseWriter, r *http.Request, u *models.User) {
	access, err := auth.GenerateAccessToken(h.cfg, u.ID, string(u.Role))
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "token error", nil, err.Error())
		return
	}
	rt := utils.RandomToken()
	expires := time.Now().Add(h.cfg.RefreshTokenTTL)
	if err := h.store.SaveRefreshToken(r.Context(), utils.GenerateID(), u.ID, rt, expires); err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "save refresh token error", nil, err.Error())
		return
	}
	h.setRefreshCookie(w, r, rt, expires)
	resp := tokenResp{AccessToken: access, ExpiresIn: int64(h.cfg.AccessTokenTTL.Seconds()), User: u}
	utils.WriteJSONResponse(w, http.StatusOK, true, "login successful", resp, nil)
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, r *http.Request, value string, expires time.Time) {
	host := r.Host // example: "api.myapp.com" or "localhost:8080"
	if strings.Contains(host, ":") {
		host = strings.Split(host, ":")[0]
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, //set true in production
		SameSite: http.SameSiteLaxMode,
		Domain:   host,
		Expires:  expires,
	})
}
