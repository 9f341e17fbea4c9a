// Package service provides the generation and reconciliation pipelines.
package service

import (
	"context"

	"github.com/shoppiq/list-gateway/internal/model"
	"github.com/shoppiq/list-gateway/internal/store"
	"github.com/shoppiq/list-gateway/internal/vector"
)

// VectorIndex is the similarity-index capability the pipelines need.
type VectorIndex interface {
	Upsert(ctx context.Context, namespace string, vectors ...vector.Vector) error
	Query(ctx context.Context, namespace string, vec []float32, topK int, filter map[string]any) ([]vector.Match, error)
}

// DocumentStore is the persistent record capability the pipelines need.
// SaveList never fails; it degrades to placeholder identities.
type DocumentStore interface {
	SaveList(ctx context.Context, list *model.ShoppingList, settings map[string]any, freeText string) store.SaveResult
}

func metadataString(meta map[string]any, key string) string {
	s, _ := meta[key].(string)
	return s
}

func metadataStrings(meta map[string]any, key string) []string {
	switch v := meta[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
