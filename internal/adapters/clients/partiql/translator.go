package partiql

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jsamuelsen11/todo-partiql-service/internal/domain"
	"github.com/jsamuelsen11/todo-partiql-service/internal/domain/todo"
)

// toItems converts result rows to todo items. Attributes other than name
// and description are ignored.
func toItems(rows []map[string]types.AttributeValue) ([]todo.Item, error) {
	items := make([]todo.Item, 0, len(rows))
	if len(rows) == 0 {
		return items, nil
	}
	if err := attributevalue.UnmarshalListOfMaps(rows, &items); err != nil {
		return nil, &domain.StoreError{Op: "select", Err: fmt.Errorf("decoding rows: %w", err)}
	}
	return items, nil
}
