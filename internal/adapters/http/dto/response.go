// Package dto provides the request mapping, response shapes, and plain-text
// messages of the inbound HTTP adapter.
package dto

import "github.com/jsamuelsen11/todo-partiql-service/internal/domain/todo"

// TodoResponse is a single item in the list response.
type TodoResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToTodoListResponse converts items to the list response. The result is
// never nil so an empty list encodes as [].
func ToTodoListResponse(items []todo.Item) []TodoResponse {
	out := make([]TodoResponse, len(items))
	for i, it := range items {
		out[i] = TodoResponse{Name: it.Name, Description: it.Description}
	}
	return out
}
