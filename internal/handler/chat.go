package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/shoppiq/list-gateway/internal/model"
	"github.com/shoppiq/list-gateway/internal/service"
)

// ChatHandler handles conversational list endpoints.
type ChatHandler struct {
	service *service.ChatService
	logger  *zap.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *service.ChatService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: svc,
		logger:  log,
	}
}

// Converse handles POST /api/v1/chat
func (h *ChatHandler) Converse(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	resp, err := h.service.Converse(r.Context(), &req)
	if err != nil {
		h.logger.Error("chat turn failed",
			zap.String("user_email", req.UserEmail),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to process chat message")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
