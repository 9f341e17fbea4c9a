// Package vector provides a client for the Pinecone similarity index.
// Vectors are namespaced by owner identity.
package vector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Config holds vector index connection configuration.
type Config struct {
	APIKey string
	APIURL string
}

// Client wraps the Pinecone REST API.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New creates a new vector index client.
func New(cfg Config, log *zap.Logger) *Client {
	http := resty.New().
		SetBaseURL(cfg.APIURL).
		SetHeader("Api-Key", cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{
		http:   http,
		logger: log,
	}
}

// Vector is one entry in the index.
type Vector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata"`
}

// Match is one ranked result of a similarity query.
type Match struct {
	ID       string         `json:"id"`
	Score    float32        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

type upsertRequest struct {
	Vectors   []Vector `json:"vectors"`
	Namespace string   `json:"namespace"`
}

type deleteRequest struct {
	IDs       []string `json:"ids"`
	Namespace string   `json:"namespace"`
}

type queryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	IncludeValues   bool           `json:"includeValues"`
	IncludeMetadata bool           `json:"includeMetadata"`
	Namespace       string         `json:"namespace"`
	Filter          map[string]any `json:"filter,omitempty"`
}

type queryResponse struct {
	Matches []Match `json:"matches"`
}

// Upsert inserts or updates vectors in a namespace.
func (c *Client) Upsert(ctx context.Context, namespace string, vectors ...Vector) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(upsertRequest{Vectors: vectors, Namespace: namespace}).
		Post("/vectors/upsert")
	if err != nil {
		return fmt.Errorf("vector upsert: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("vector upsert: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// Delete removes vectors from a namespace.
func (c *Client) Delete(ctx context.Context, namespace string, ids ...string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(deleteRequest{IDs: ids, Namespace: namespace}).
		Post("/vectors/delete")
	if err != nil {
		return fmt.Errorf("vector delete: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("vector delete: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// Query returns the topK nearest vectors in a namespace, optionally
// restricted by a metadata filter.
func (c *Client) Query(ctx context.Context, namespace string, vec []float32, topK int, filter map[string]any) ([]Match, error) {
	var out queryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(queryRequest{
			Vector:          vec,
			TopK:            topK,
			IncludeMetadata: true,
			Namespace:       namespace,
			Filter:          filter,
		}).
		SetResult(&out).
		Post("/query")
	if err != nil {
		return nil, fmt.Errorf("vector query: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("vector query: status %d: %s", resp.StatusCode(), resp.String())
	}
	return out.Matches, nil
}
