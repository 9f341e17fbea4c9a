// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/shoppiq/list-gateway/internal/list"
	"github.com/shoppiq/list-gateway/internal/model"
	"github.com/shoppiq/list-gateway/internal/service"
)

// ListHandler handles shopping list generation endpoints.
type ListHandler struct {
	service *service.ListService
	logger  *zap.Logger
}

// NewListHandler creates a new list handler.
func NewListHandler(svc *service.ListService, log *zap.Logger) *ListHandler {
	return &ListHandler{
		service: svc,
		logger:  log,
	}
}

// Generate handles POST /api/v1/shopping-lists/generate
func (h *ListHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	resp, err := h.service.GenerateList(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to generate shopping list",
			zap.String("user_email", req.UserEmail),
			zap.Error(err))
		if errors.Is(err, list.ErrMalformedModelOutput) {
			writeError(w, http.StatusBadGateway, "KI hat ungültiges JSON zurückgegeben")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to generate shopping list")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
