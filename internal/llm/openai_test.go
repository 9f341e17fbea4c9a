package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}
}

func TestCompleteDefaultsToGPT4o(t *testing.T) {
	var got openai.ChatCompletionRequest
	c := newStubOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: got.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: "Hallo"},
				FinishReason: openai.FinishReasonStop,
			}},
			Usage: openai.Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5},
		})
	})

	resp, err := c.Complete(context.Background(), &CompletionRequest{
		Messages:    []ChatMessage{{Role: "user", Content: "Hallo"}},
		Temperature: 0.7,
	})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, 2000, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-6)
	assert.Equal(t, "Hallo", resp.Content)
	assert.Equal(t, 3, resp.TokensIn)
	assert.Equal(t, 2, resp.TokensOut)
}

func TestCompleteRespectsExplicitModel(t *testing.T) {
	var got openai.ChatCompletionRequest
	c := newStubOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: "assistant", Content: "ok"},
			}},
		})
	})

	_, err := c.Complete(context.Background(), &CompletionRequest{
		Model:    "gpt-4-turbo",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4-turbo", got.Model)
}
