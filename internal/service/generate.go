package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shoppiq/list-gateway/internal/events"
	"github.com/shoppiq/list-gateway/internal/list"
	"github.com/shoppiq/list-gateway/internal/llm"
	"github.com/shoppiq/list-gateway/internal/model"
	"github.com/shoppiq/list-gateway/internal/vector"
	"github.com/shoppiq/list-gateway/pkg/metrics"
)

const (
	defaultListName = "KI-Einkaufsliste"

	// itemTypeItem and itemTypeList tag vector metadata so queries can
	// tell item vectors from list-context vectors.
	itemTypeItem = "shopping_item"
	itemTypeList = "shopping_list"

	generationTemperature = 0.7
	generationMaxTokens   = 2000

	historyQueryTopK = 100
	embedConcurrency = 4
)

// ListService generates shopping lists and indexes them for retrieval.
type ListService struct {
	completer llm.Completer
	embedder  llm.Embedder
	index     VectorIndex
	store     DocumentStore
	events    *events.Publisher
	logger    *zap.Logger
}

// NewListService creates a new list generation service.
func NewListService(
	completer llm.Completer,
	embedder llm.Embedder,
	index VectorIndex,
	docStore DocumentStore,
	publisher *events.Publisher,
	log *zap.Logger,
) *ListService {
	return &ListService{
		completer: completer,
		embedder:  embedder,
		index:     index,
		store:     docStore,
		events:    publisher,
		logger:    log,
	}
}

// GenerateList runs the full pipeline: historical context, one completion
// call, extraction and normalization, aggregate computation, document
// write (best-effort) and per-item vector indexing (best-effort).
func (s *ListService) GenerateList(ctx context.Context, req *model.GenerateListRequest) (*model.GenerateListResponse, error) {
	history := s.historicalProducts(ctx, req.UserEmail)

	messages := []llm.ChatMessage{
		{Role: string(model.RoleSystem), Content: list.GenerationSystemPrompt(history)},
		{Role: string(model.RoleUser), Content: list.GenerationUserPrompt(req.Settings, req.Context)},
	}

	start := time.Now()
	resp, err := s.completer.Complete(ctx, &llm.CompletionRequest{
		Messages:    messages,
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		metrics.RecordGeneration("upstream_error", 0)
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	metrics.RecordLLMCall(s.completer.Name(), resp.Model, time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	raws, err := list.ExtractJSONArray(resp.Content)
	if err != nil {
		metrics.RecordGeneration("malformed_output", 0)
		return nil, err
	}

	items := list.NormalizeAll(raws)
	total, markets := list.Aggregates(items)

	name := req.ListName
	if name == "" {
		name = defaultListName
	}

	shoppingList := &model.ShoppingList{
		UUID:                uuid.New().String(),
		Name:                name,
		Items:               items,
		CreatedAt:           time.Now(),
		CreatedBy:           req.UserEmail,
		TotalEstimatedPrice: total,
		Supermarkets:        markets,
	}

	saved := s.store.SaveList(ctx, shoppingList, req.Settings, req.Context)
	if !saved.Persisted {
		metrics.DocumentStoreFallbacks.Inc()
	}

	s.indexList(ctx, shoppingList)
	s.events.ListGenerated(ctx, shoppingList)
	metrics.RecordGeneration("success", len(items))

	s.logger.Info("shopping list generated",
		zap.String("list_uuid", shoppingList.UUID),
		zap.String("user_email", req.UserEmail),
		zap.Int("items", len(items)),
		zap.Bool("persisted", saved.Persisted))

	return &model.GenerateListResponse{
		ShoppingList: shoppingList,
		Success:      true,
		Persisted:    saved.Persisted,
		DocumentID:   saved.DocID,
		Message:      fmt.Sprintf("Einkaufsliste erfolgreich generiert mit %d Produkten", len(items)),
	}, nil
}

// historicalProducts loads the owner's previously indexed product names.
// Failures degrade to an empty context, never to a request failure.
func (s *ListService) historicalProducts(ctx context.Context, userEmail string) []string {
	// A zero vector with a metadata filter scans the namespace without a
	// semantic query.
	matches, err := s.index.Query(ctx, userEmail,
		make([]float32, llm.EmbeddingDimensions),
		historyQueryTopK,
		map[string]any{"item_type": itemTypeItem})
	if err != nil {
		s.logger.Warn("failed to load historical products",
			zap.String("user_email", userEmail),
			zap.Error(err))
		return nil
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if name := metadataString(m.Metadata, "name"); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// indexList embeds and upserts every item concurrently, plus one
// list-context vector used by the chat pipeline. Per-item failures are
// logged and skipped; they never abort the batch.
func (s *ListService) indexList(ctx context.Context, shoppingList *model.ShoppingList) {
	g := new(errgroup.Group)
	g.SetLimit(embedConcurrency)

	createdAt := shoppingList.CreatedAt.Format(time.RFC3339)

	for _, item := range shoppingList.Items {
		item := item
		g.Go(func() error {
			s.indexItem(ctx, shoppingList, item, createdAt)
			return nil
		})
	}
	g.Go(func() error {
		s.indexListContext(ctx, shoppingList, createdAt)
		return nil
	})

	_ = g.Wait()
}

func (s *ListService) indexItem(ctx context.Context, shoppingList *model.ShoppingList, item model.ShoppingItem, createdAt string) {
	text := item.Name
	if item.Category != nil {
		text += " " + *item.Category
	}
	if item.Note != "" {
		text += " " + item.Note
	}

	embedding, _, err := s.embedder.Embed(ctx, text)
	if err != nil {
		metrics.EmbeddingUpserts.WithLabelValues("error").Inc()
		s.logger.Warn("failed to embed item",
			zap.String("name", item.Name),
			zap.Error(err))
		return
	}

	metadata := map[string]any{
		"user_email": shoppingList.CreatedBy,
		"list_uuid":  shoppingList.UUID,
		"item_type":  itemTypeItem,
		"name":       item.Name,
		"quantity":   item.Quantity,
		"created_at": createdAt,
	}
	if item.Category != nil {
		metadata["category"] = *item.Category
	}
	if item.EstimatedPrice != nil {
		metadata["estimated_price"] = *item.EstimatedPrice
	}
	if item.Supermarket != nil {
		metadata["supermarket"] = *item.Supermarket
	}

	err = s.index.Upsert(ctx, shoppingList.CreatedBy, vector.Vector{
		ID:       "item_" + uuid.New().String(),
		Values:   embedding,
		Metadata: metadata,
	})
	if err != nil {
		metrics.EmbeddingUpserts.WithLabelValues("error").Inc()
		s.logger.Warn("failed to upsert item vector",
			zap.String("name", item.Name),
			zap.Error(err))
		return
	}
	metrics.EmbeddingUpserts.WithLabelValues("ok").Inc()
}

// indexListContext stores one vector per list so the chat pipeline can
// retrieve similar historical lists as prompt context.
func (s *ListService) indexListContext(ctx context.Context, shoppingList *model.ShoppingList, createdAt string) {
	names := make([]string, 0, len(shoppingList.Items))
	for _, item := range shoppingList.Items {
		names = append(names, item.Name)
	}

	embedding, _, err := s.embedder.Embed(ctx, shoppingList.Name+": "+strings.Join(names, ", "))
	if err != nil {
		s.logger.Warn("failed to embed list context", zap.Error(err))
		return
	}

	excerpt := names
	if len(excerpt) > 10 {
		excerpt = excerpt[:10]
	}

	err = s.index.Upsert(ctx, shoppingList.CreatedBy, vector.Vector{
		ID:     "list_" + shoppingList.UUID,
		Values: embedding,
		Metadata: map[string]any{
			"user_email":   shoppingList.CreatedBy,
			"list_uuid":    shoppingList.UUID,
			"item_type":    itemTypeList,
			"name":         shoppingList.Name,
			"items":        excerpt,
			"supermarkets": shoppingList.Supermarkets,
			"created_at":   createdAt,
		},
	})
	if err != nil {
		s.logger.Warn("failed to upsert list context vector", zap.Error(err))
	}
}
