// Package store persists shopping list records in Firestore. A missing or
// failing store degrades to placeholder identities instead of surfacing
// errors: generated lists are still returned to the caller.
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/shoppiq/list-gateway/internal/model"
)

const listsCollection = "shopping_lists"

// Config holds document store configuration. An empty ProjectID disables
// the store entirely (mock mode).
type Config struct {
	ProjectID       string
	CredentialsJSON string
}

// Client wraps the Firestore lists collection.
type Client struct {
	fs     *firestore.Client
	logger *zap.Logger
}

// New creates a document store client. A nil firestore handle is a valid
// state: every write then yields a placeholder identity.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.ProjectID == "" {
		log.Warn("document store disabled, writes will use placeholder ids")
		return &Client{logger: log}, nil
	}

	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	fs, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &Client{fs: fs, logger: log}, nil
}

// SaveResult reports where a list record ended up. Persisted is false when
// DocID is a synthesized placeholder.
type SaveResult struct {
	DocID     string
	Persisted bool
}

// SaveList writes one list record. It never returns an error: an
// unavailable store or failed write falls back to a placeholder identity.
func (c *Client) SaveList(ctx context.Context, list *model.ShoppingList, settings map[string]any, freeText string) SaveResult {
	if c == nil || c.fs == nil {
		id := placeholderID()
		c.log().Warn("document store unavailable, using placeholder id",
			zap.String("doc_id", id),
			zap.String("list_uuid", list.UUID))
		return SaveResult{DocID: id}
	}

	record := map[string]any{
		"uuid":                  list.UUID,
		"name":                  list.Name,
		"created_at":            list.CreatedAt,
		"created_by":            list.CreatedBy,
		"items":                 list.Items,
		"total_estimated_price": list.TotalEstimatedPrice,
		"supermarkets":          list.Supermarkets,
		"settings":              settings,
		"context":               freeText,
	}

	ref, _, err := c.fs.Collection(listsCollection).Add(ctx, record)
	if err != nil {
		id := placeholderID()
		c.log().Warn("document store write failed, using placeholder id",
			zap.String("doc_id", id),
			zap.String("list_uuid", list.UUID),
			zap.Error(err))
		return SaveResult{DocID: id}
	}

	c.log().Info("shopping list persisted",
		zap.String("doc_id", ref.ID),
		zap.String("list_uuid", list.UUID))
	return SaveResult{DocID: ref.ID, Persisted: true}
}

// Close releases the underlying firestore client.
func (c *Client) Close() error {
	if c == nil || c.fs == nil {
		return nil
	}
	return c.fs.Close()
}

func (c *Client) log() *zap.Logger {
	if c != nil && c.logger != nil {
		return c.logger
	}
	return zap.NewNop()
}

func placeholderID() string {
	return "mock_firebase_" + uuid.New().String()
}
