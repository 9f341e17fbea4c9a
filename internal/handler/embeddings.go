package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/shoppiq/list-gateway/internal/llm"
	"github.com/shoppiq/list-gateway/internal/model"
)

// EmbeddingHandler exposes the raw embedding capability to clients.
type EmbeddingHandler struct {
	embedder llm.Embedder
	logger   *zap.Logger
}

// NewEmbeddingHandler creates a new embedding handler.
func NewEmbeddingHandler(embedder llm.Embedder, log *zap.Logger) *EmbeddingHandler {
	return &EmbeddingHandler{
		embedder: embedder,
		logger:   log,
	}
}

// Create handles POST /api/v1/embeddings
func (h *EmbeddingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.EmbeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	embedding, tokens, err := h.embedder.Embed(r.Context(), req.Text)
	if err != nil {
		h.logger.Error("failed to create embedding", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create embedding")
		return
	}

	writeJSON(w, http.StatusOK, &model.EmbeddingResponse{
		Embedding:  embedding,
		TokenCount: tokens,
	})
}
