package model

// GenerateListRequest is the request to generate a new shopping list.
type GenerateListRequest struct {
	Settings  map[string]any `json:"settings" validate:"required"`
	UserEmail string         `json:"user_email" validate:"required,email"`
	ListName  string         `json:"list_name"`
	Context   string         `json:"context"`
}

// GenerateListResponse is the response after generating a shopping list.
// Persisted is false when the document store was unavailable and DocumentID
// holds a placeholder instead of a real document identity.
type GenerateListResponse struct {
	ShoppingList *ShoppingList `json:"shopping_list"`
	Success      bool          `json:"success"`
	Persisted    bool          `json:"persisted"`
	DocumentID   string        `json:"document_id"`
	Message      string        `json:"message,omitempty"`
}

// ChatRequest is the request for a conversational turn over a list.
// CurrentItems arrives loosely typed; the normalizer repairs it.
type ChatRequest struct {
	Message      string           `json:"message" validate:"required"`
	UserEmail    string           `json:"user_email" validate:"required,email"`
	CurrentItems []map[string]any `json:"current_items"`
	History      []ChatTurn       `json:"history"`
}

// ChatResponse carries the assistant reply plus, for mutating intents, the
// complete replacement item list. UpdatedItems is null for non-mutating
// turns and an empty array when a mutation hit an empty list.
type ChatResponse struct {
	Reply        string         `json:"reply"`
	UpdatedItems []ShoppingItem `json:"updated_items"`
	Intent       Intent         `json:"intent"`
}

// EmbeddingRequest is the request for a raw text embedding.
type EmbeddingRequest struct {
	Text string `json:"text" validate:"required"`
}

// EmbeddingResponse carries the embedding vector and the token count the
// provider reported for the input.
type EmbeddingResponse struct {
	Embedding  []float32 `json:"embedding"`
	TokenCount int       `json:"token_count"`
}
