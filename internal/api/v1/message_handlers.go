package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumni-connect/connect-api/internal/auth"
	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/utils"
)

type MessageHandler struct {
	store serviceStore
}

func NewMessageHandler(store serviceStore) *MessageHandler {
	return &MessageHandler{store: store}
}

// GET /messages: everything the caller sent or received, newest first.
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	current := auth.GetUserFromCtx(r.Context())
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	msgs, err := h.store.ListMessagesFor(r.Context(), current.ID)
	if err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "error fetching messages", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "success", msgs, nil)
}

// POST /messages: any member may write to any other member.
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReceiverID string `json:"receiver_id" validate:"required"`
		Subject    string `json:"subject"`
		Content    string `json:"content" validate:"required"`
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
	if err := validateBody(&req); err != nil {
		writeDomainError(w, err)
		return
	}

	receiver, err := h.store.GetUserByID(ctx, req.ReceiverID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeDomainError(w, &models.ValidationError{Field: "receiver_id", Detail: "no such user"})
			return
		}
		writeDomainError(w, err)
		return
	}

	m := &models.Message{
		ID:         utils.GenerateID(),
		SenderID:   current.ID,
		ReceiverID: receiver.ID,
		Subject:    req.Subject,
		Content:    req.Content,
	}
	if err := h.store.CreateMessage(ctx, m); err != nil {
		utils.WriteJSONResponse(w, http.StatusInternalServerError, false, "send message failed", nil, err.Error())
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, true, "message sent", m, nil)
}

// PUT /messages/{id}/read: only the receiver may mark a message read.
func (h *MessageHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current := auth.GetUserFromCtx(ctx)
	if current == nil {
		utils.WriteJSONResponse(w, http.StatusUnauthorized, false, "unauthorized", nil, nil)
		return
	}
	m, err := h.store.GetMessageByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if m.ReceiverID != current.ID {
		utils.WriteJSONResponse(w, http.StatusForbidden, false, "forbidden", nil, nil)
		return
	}
	if err := h.store.MarkMessageRead(ctx, m.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, true, "message marked as read", nil, nil)
}
