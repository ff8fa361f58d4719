package dto

import "encoding/json"

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Page is one page of a listing. Items are serialized under Key, so the same
// type renders {"animals": [...]} or {"vaccines": [...]}.
type Page[T any] struct {
	Key         string
	Items       []T
	CurrentPage int
	TotalItems  int64
	TotalPages  int
}

func (p Page[T]) MarshalJSON() ([]byte, error) {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(map[string]any{
		p.Key:         items,
		"currentPage": p.CurrentPage,
		"totalItems":  p.TotalItems,
		"totalPages":  p.TotalPages,
	})
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
