package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shoppiq/list-gateway/internal/events"
	"github.com/shoppiq/list-gateway/internal/list"
	"github.com/shoppiq/list-gateway/internal/llm"
	"github.com/shoppiq/list-gateway/internal/model"
	"github.com/shoppiq/list-gateway/pkg/metrics"
)

const (
	chatTemperature = 0.2
	chatMaxTokens   = 2000

	// maxHistoryTurns is how many prior chat turns survive into the
	// prompt. Older turns are dropped, not summarized.
	maxHistoryTurns = 5

	similarListsTopK = 3
)

// ChatService reconciles a shopping list against a conversational
// instruction. It never silently drops the user's existing list: a
// mutating intent always yields a defined item sequence, and a
// non-mutating one never yields any.
type ChatService struct {
	completer llm.Completer
	embedder  llm.Embedder
	index     VectorIndex
	events    *events.Publisher
	logger    *zap.Logger
}

// NewChatService creates a new chat service.
func NewChatService(
	completer llm.Completer,
	embedder llm.Embedder,
	index VectorIndex,
	publisher *events.Publisher,
	log *zap.Logger,
) *ChatService {
	return &ChatService{
		completer: completer,
		embedder:  embedder,
		index:     index,
		events:    publisher,
		logger:    log,
	}
}

// Converse runs one conversational turn over the supplied list.
func (s *ChatService) Converse(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	similar := s.similarLists(ctx, req.UserEmail, req.Message)

	system := list.ChatSystemPrompt(
		list.RenderCurrentItems(req.CurrentItems),
		list.RenderSimilarLists(similar),
	)

	messages := make([]llm.ChatMessage, 0, maxHistoryTurns+2)
	messages = append(messages, llm.ChatMessage{Role: string(model.RoleSystem), Content: system})
	for _, turn := range list.TruncateHistory(req.History, maxHistoryTurns) {
		messages = append(messages, llm.ChatMessage{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: string(model.RoleUser), Content: req.Message})

	start := time.Now()
	resp, err := s.completer.Complete(ctx, &llm.CompletionRequest{
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	metrics.RecordLLMCall(s.completer.Name(), resp.Model, time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	intent := list.ClassifyIntent(req.Message, resp.Content)
	updated := extractUpdatedItems(resp.Content)

	// Fallback policy: a detected mutation without a usable model list
	// returns the prior list unchanged instead of losing it. A pure
	// question-answer turn never returns a list.
	if intent == model.IntentNone {
		updated = nil
	} else if len(updated) == 0 {
		updated = make([]model.ShoppingItem, 0, len(req.CurrentItems))
		for _, raw := range req.CurrentItems {
			updated = append(updated, list.Normalize(raw))
		}
	}

	if intent != model.IntentNone {
		s.events.ListUpdated(ctx, req.UserEmail, intent, len(updated))
	}
	metrics.ChatTurnsTotal.WithLabelValues(string(intent)).Inc()

	s.logger.Info("chat turn reconciled",
		zap.String("user_email", req.UserEmail),
		zap.String("intent", string(intent)),
		zap.Int("updated_items", len(updated)))

	return &model.ChatResponse{
		Reply:        resp.Content,
		UpdatedItems: updated,
		Intent:       intent,
	}, nil
}

// extractUpdatedItems pulls a candidate replacement list out of the
// free-form reply. Only elements carrying a name are taken; a malformed
// or absent array simply yields nothing.
func extractUpdatedItems(reply string) []model.ShoppingItem {
	raws, err := list.ExtractJSONArray(reply)
	if err != nil {
		return nil
	}

	var items []model.ShoppingItem
	for _, raw := range raws {
		if name, ok := raw["name"].(string); !ok || name == "" {
			continue
		}
		items = append(items, list.Normalize(raw))
	}
	return items
}

// similarLists retrieves semantically similar historical lists as prompt
// context. Failures degrade to no context.
func (s *ChatService) similarLists(ctx context.Context, userEmail, message string) []model.SimilarList {
	embedding, _, err := s.embedder.Embed(ctx, message)
	if err != nil {
		s.logger.Warn("failed to embed chat message", zap.Error(err))
		return nil
	}

	matches, err := s.index.Query(ctx, userEmail, embedding, similarListsTopK,
		map[string]any{"item_type": itemTypeList})
	if err != nil {
		s.logger.Warn("failed to query similar lists",
			zap.String("user_email", userEmail),
			zap.Error(err))
		return nil
	}

	lists := make([]model.SimilarList, 0, len(matches))
	for _, m := range matches {
		lists = append(lists, model.SimilarList{
			Name:         metadataString(m.Metadata, "name"),
			Items:        metadataStrings(m.Metadata, "items"),
			Supermarkets: metadataStrings(m.Metadata, "supermarkets"),
			Note:         metadataString(m.Metadata, "note"),
		})
	}
	return lists
}
