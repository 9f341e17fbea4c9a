// Package model defines data structures for the list gateway.
package model

import (
	"time"
)

// ShoppingItem is the canonical item shape. Every item that leaves the
// normalizer has UUID, Name and Quantity populated.
type ShoppingItem struct {
	UUID           string   `json:"uuid"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	Unit           string   `json:"unit"`
	Note           string   `json:"note"`
	Category       *string  `json:"category,omitempty"`
	IsChecked      bool     `json:"isChecked"`
	Supermarket    *string  `json:"supermarket,omitempty"`
	EstimatedPrice *float64 `json:"estimated_price,omitempty"`
}

// ShoppingList is a generated list plus aggregates derived from its items.
// The aggregates are always recomputed from the current items, never
// mutated independently.
type ShoppingList struct {
	UUID                string         `json:"uuid"`
	Name                string         `json:"name"`
	Items               []ShoppingItem `json:"items"`
	CreatedAt           time.Time      `json:"created_at"`
	CreatedBy           string         `json:"created_by"`
	TotalEstimatedPrice *float64       `json:"total_estimated_price,omitempty"`
	Supermarkets        []string       `json:"supermarkets"`
}

// Role represents the sender of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatTurn is one turn of prior conversation supplied by the client.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Intent is the action category inferred from a chat exchange.
type Intent string

const (
	IntentAdded    Intent = "added"
	IntentRemoved  Intent = "removed"
	IntentModified Intent = "modified"
	IntentNone     Intent = "none"
)

// SimilarList is a read-only snapshot of a historical list retrieved from
// the vector index. It is used only as prompt context.
type SimilarList struct {
	Name         string   `json:"name"`
	Items        []string `json:"items"`
	Supermarkets []string `json:"supermarkets,omitempty"`
	Note         string   `json:"note,omitempty"`
}
