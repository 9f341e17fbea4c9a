package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shoppiq/list-gateway/internal/list"
	"github.com/shoppiq/list-gateway/internal/model"
	"github.com/shoppiq/list-gateway/internal/store"
	"github.com/shoppiq/list-gateway/internal/vector"
)

var (
	errEmbedFailed    = errors.New("embedding failed")
	errUpstream       = errors.New("upstream unreachable")
	errIndexUnreached = errors.New("index unreachable")
)

func newListService(completer *fakeCompleter, embedder *fakeEmbedder, index *fakeIndex, docStore *fakeStore) *ListService {
	return NewListService(completer, embedder, index, docStore, nil, zap.NewNop())
}

func generateRequest() *model.GenerateListRequest {
	return &model.GenerateListRequest{
		Settings:  map[string]any{"diet": "vegetarisch"},
		UserEmail: "maria@example.com",
		ListName:  "Wocheneinkauf",
		Context:   "Besuch am Wochenende",
	}
}

func TestGenerateListExtractsAndNormalizes(t *testing.T) {
	completer := &fakeCompleter{reply: "Here:\n[{\"name\":\"Milk\",\"quantity\":2}]\nDone"}
	embedder := &fakeEmbedder{}
	index := &fakeIndex{}
	docStore := &fakeStore{}

	resp, err := newListService(completer, embedder, index, docStore).GenerateList(context.Background(), generateRequest())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.Persisted)
	assert.Equal(t, "doc-1", resp.DocumentID)

	require.NotNil(t, resp.ShoppingList)
	require.Len(t, resp.ShoppingList.Items, 1)
	item := resp.ShoppingList.Items[0]
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, list.DefaultUnit, item.Unit)
	assert.NotEmpty(t, item.UUID)

	assert.Equal(t, "Wocheneinkauf", resp.ShoppingList.Name)
	assert.Equal(t, "maria@example.com", resp.ShoppingList.CreatedBy)
	assert.NotEmpty(t, resp.ShoppingList.UUID)

	// one item vector plus the list context vector
	assert.Equal(t, map[string]int{"shopping_item": 1, "shopping_list": 1}, index.upsertedTypes())

	require.Len(t, docStore.saved, 1)
	assert.Equal(t, resp.ShoppingList.UUID, docStore.saved[0].UUID)
}

func TestGenerateListPromptShape(t *testing.T) {
	completer := &fakeCompleter{reply: "[]"}
	svc := newListService(completer, &fakeEmbedder{}, &fakeIndex{}, &fakeStore{})

	_, err := svc.GenerateList(context.Background(), generateRequest())
	require.NoError(t, err)

	req := completer.gotReq
	require.NotNil(t, req)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "JSON-Array")
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Contains(t, req.Messages[1].Content, "Besuch am Wochenende")
	assert.Contains(t, req.Messages[1].Content, "vegetarisch")
}

func TestGenerateListUsesHistoricalProducts(t *testing.T) {
	completer := &fakeCompleter{reply: "[]"}
	index := &fakeIndex{
		queryMatches: []vector.Match{
			{ID: "item_1", Metadata: map[string]any{"name": "Hafermilch"}},
			{ID: "item_2", Metadata: map[string]any{"name": "Tofu"}},
		},
	}

	_, err := newListService(completer, &fakeEmbedder{}, index, &fakeStore{}).
		GenerateList(context.Background(), generateRequest())

	require.NoError(t, err)
	assert.Contains(t, completer.gotReq.Messages[0].Content, "Hafermilch")
	assert.Contains(t, completer.gotReq.Messages[0].Content, "Tofu")
}

func TestGenerateListHistoryFailureDegrades(t *testing.T) {
	completer := &fakeCompleter{reply: "[{\"name\":\"Brot\"}]"}
	index := &fakeIndex{queryErr: errIndexUnreached}

	resp, err := newListService(completer, &fakeEmbedder{}, index, &fakeStore{}).
		GenerateList(context.Background(), generateRequest())

	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestGenerateListMalformedOutputAbortsBeforePersistence(t *testing.T) {
	completer := &fakeCompleter{reply: "Ich konnte keine Liste erstellen."}
	index := &fakeIndex{}
	docStore := &fakeStore{}

	_, err := newListService(completer, &fakeEmbedder{}, index, docStore).
		GenerateList(context.Background(), generateRequest())

	assert.ErrorIs(t, err, list.ErrMalformedModelOutput)
	assert.Empty(t, docStore.saved)
	assert.Empty(t, index.upserts)
}

func TestGenerateListCompletionFailureIsFatal(t *testing.T) {
	completer := &fakeCompleter{err: errUpstream}
	docStore := &fakeStore{}

	_, err := newListService(completer, &fakeEmbedder{}, &fakeIndex{}, docStore).
		GenerateList(context.Background(), generateRequest())

	assert.ErrorIs(t, err, errUpstream)
	assert.Empty(t, docStore.saved)
}

func TestGenerateListStoreFallbackIsNotAnError(t *testing.T) {
	completer := &fakeCompleter{reply: "[{\"name\":\"Milch\"}]"}
	docStore := &fakeStore{result: store.SaveResult{DocID: "mock_firebase_123"}}

	resp, err := newListService(completer, &fakeEmbedder{}, &fakeIndex{}, docStore).
		GenerateList(context.Background(), generateRequest())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.Persisted)
	assert.Equal(t, "mock_firebase_123", resp.DocumentID)
}

func TestGenerateListEmbeddingFailureIsIsolated(t *testing.T) {
	names := []string{"Milch", "Brot", "Eier", "Käse", "Saft"}
	reply := "["
	for i, name := range names {
		if i > 0 {
			reply += ","
		}
		reply += fmt.Sprintf("{\"name\":%q}", name)
	}
	reply += "]"

	completer := &fakeCompleter{reply: reply}
	embedder := &fakeEmbedder{failFor: map[string]bool{"Eier": true}}
	index := &fakeIndex{}

	resp, err := newListService(completer, embedder, index, &fakeStore{}).
		GenerateList(context.Background(), generateRequest())

	require.NoError(t, err)
	assert.Len(t, resp.ShoppingList.Items, 5)
	// four item vectors made it, plus the list context vector
	types := index.upsertedTypes()
	assert.Equal(t, 4, types["shopping_item"])
	assert.Equal(t, 1, types["shopping_list"])
}

func TestGenerateListDefaultName(t *testing.T) {
	completer := &fakeCompleter{reply: "[]"}
	req := generateRequest()
	req.ListName = ""

	resp, err := newListService(completer, &fakeEmbedder{}, &fakeIndex{}, &fakeStore{}).
		GenerateList(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "KI-Einkaufsliste", resp.ShoppingList.Name)
}
