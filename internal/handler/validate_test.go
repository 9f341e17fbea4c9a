package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// Requests that fail decoding or validation must be rejected before any
// service is reached, so a nil service is safe here.

func TestGenerateRejectsInvalidBody(t *testing.T) {
	h := NewListHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/v1/shopping-lists/generate",
		strings.NewReader("not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestGenerateRejectsMissingFields(t *testing.T) {
	h := NewListHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/v1/shopping-lists/generate",
		strings.NewReader(`{"settings":{"diet":"vegan"},"user_email":"not-an-email"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}

func TestConverseRejectsEmptyMessage(t *testing.T) {
	h := NewChatHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Converse(rec, httptest.NewRequest(http.MethodPost, "/api/v1/chat",
		strings.NewReader(`{"message":"","user_email":"maria@example.com"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmbeddingRejectsMissingText(t *testing.T) {
	h := NewEmbeddingHandler(nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/embeddings",
		strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
