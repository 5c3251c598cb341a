package partiql

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/todo-partiql-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-partiql-service/internal/ports"
)

// Compile-time interface check.
var _ ports.TodoStore = (*TodoStore)(nil)

// TodoStore implements [ports.TodoStore] with one PartiQL statement per
// operation. The table name is the only text placed into a statement, as a
// quoted identifier; every value is a bound parameter.
type TodoStore struct {
	client *Client
	table  string
}

// NewTodoStore creates a TodoStore that runs statements against table.
// The table name is validated at config load and must not contain a
// double quote.
func NewTodoStore(client *Client, table string) *TodoStore {
	return &TodoStore{client: client, table: table}
}

// Create inserts item. A duplicate name is not rejected by this layer.
func (s *TodoStore) Create(ctx context.Context, item todo.Item) error {
	_, err := s.client.Execute(ctx, s.insertStatement(item))
	return err
}

// List returns every item, or only items named filter.Name when it is set.
// The result is never nil.
func (s *TodoStore) List(ctx context.Context, filter todo.Filter) ([]todo.Item, error) {
	res, err := s.client.Execute(ctx, s.selectStatement(filter))
	if err != nil {
		return nil, err
	}
	return toItems(res.Rows)
}

// Delete removes the item stored under name and waits for the store to
// confirm.
func (s *TodoStore) Delete(ctx context.Context, name string) error {
	_, err := s.client.Execute(ctx, s.deleteStatement(name))
	return err
}

func (s *TodoStore) insertStatement(item todo.Item) Statement {
	return Statement{
		Text:   fmt.Sprintf(`INSERT INTO "%s" VALUE {'name': ?, 'description': ?}`, s.table),
		Params: []any{item.Name, item.Description},
	}
}

func (s *TodoStore) selectStatement(filter todo.Filter) Statement {
	if filter.IsZero() {
		return Statement{Text: fmt.Sprintf(`SELECT * FROM "%s"`, s.table)}
	}
	return Statement{
		Text:   fmt.Sprintf(`SELECT * FROM "%s" WHERE "name" = ?`, s.table),
		Params: []any{filter.Name},
	}
}

func (s *TodoStore) deleteStatement(name string) Statement {
	return Statement{
		Text:   fmt.Sprintf(`DELETE FROM "%s" WHERE "name" = ?`, s.table),
		Params: []any{name},
	}
}
