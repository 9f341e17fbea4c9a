package service

import (
	"context"
	"sync"

	"github.com/shoppiq/list-gateway/internal/llm"
	"github.com/shoppiq/list-gateway/internal/model"
	"github.com/shoppiq/list-gateway/internal/store"
	"github.com/shoppiq/list-gateway/internal/vector"
)

type fakeCompleter struct {
	reply string
	err   error

	gotReq *llm.CompletionRequest
}

func (f *fakeCompleter) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.reply, Model: "fake-model"}, nil
}

func (f *fakeCompleter) Name() string { return "fake" }

type fakeEmbedder struct {
	failFor map[string]bool
	err     error

	mu    sync.Mutex
	texts []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, 0, f.err
	}
	if f.failFor[text] {
		return nil, 0, errEmbedFailed
	}
	f.texts = append(f.texts, text)
	return make([]float32, llm.EmbeddingDimensions), 3, nil
}

type fakeIndex struct {
	queryMatches []vector.Match
	queryErr     error
	upsertErr    error

	mu      sync.Mutex
	upserts []vector.Vector
	queries []map[string]any
}

func (f *fakeIndex) Upsert(ctx context.Context, namespace string, vectors ...vector.Vector) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, vectors...)
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, namespace string, vec []float32, topK int, filter map[string]any) ([]vector.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, filter)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryMatches, nil
}

func (f *fakeIndex) upsertedTypes() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()

	types := map[string]int{}
	for _, v := range f.upserts {
		if t, ok := v.Metadata["item_type"].(string); ok {
			types[t]++
		}
	}
	return types
}

type fakeStore struct {
	result store.SaveResult

	mu    sync.Mutex
	saved []*model.ShoppingList
}

func (f *fakeStore) SaveList(ctx context.Context, list *model.ShoppingList, settings map[string]any, freeText string) store.SaveResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saved = append(f.saved, list)
	if f.result == (store.SaveResult{}) {
		return store.SaveResult{DocID: "doc-1", Persisted: true}
	}
	return f.result
}
