package dto

import "github.com/jsamuelsen11/todo-partiql-service/internal/domain/todo"

// Body field names shared by the todo routes.
const (
	FieldName        = "name"
	FieldDescription = "description"
)

// ToTodoItem reads a validated create body into a todo item.
func ToTodoItem(body map[string]any) todo.Item {
	return todo.Item{
		Name:        stringValue(body, FieldName),
		Description: stringValue(body, FieldDescription),
	}
}

// DeleteName reads the name from a validated delete body.
func DeleteName(body map[string]any) string {
	return stringValue(body, FieldName)
}

func stringValue(body map[string]any, field string) string {
	s, _ := body[field].(string)
	return s
}
