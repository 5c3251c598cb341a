package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-partiql-service/internal/domain/todo"
)

// TodoStore defines the port for todo persistence. Each method issues exactly
// one logical statement against the backing store and returns only after the
// store has answered. Failures are reported as *domain.StoreError.
type TodoStore interface {
	// Create inserts a single item.
	Create(ctx context.Context, item todo.Item) error

	// List returns the items matching filter. Pass a zero-value Filter to
	// list every item. An empty result is a non-nil, zero-length slice.
	List(ctx context.Context, filter todo.Filter) ([]todo.Item, error)

	// Delete removes the item stored under name. Deleting a name that is not
	// present is not an error.
	Delete(ctx context.Context, name string) error
}
