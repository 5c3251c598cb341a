// Package todo holds the todo record type and the filter used to read it.
package todo

// Field length minimums enforced on inbound writes.
const (
	MinNameLength        = 3
	MinDescriptionLength = 3
)

// Item is a single todo record. Name is the table's key. This layer does not
// check for duplicates; the store rejects an insert of an existing name.
type Item struct {
	Name        string `json:"name"        dynamodbav:"name"`
	Description string `json:"description" dynamodbav:"description"`
}

// Filter narrows a list of items. The zero value matches every item.
type Filter struct {
	// Name, when non-empty, restricts results to items whose name is exactly
	// equal to it.
	Name string
}

// IsZero reports whether the filter matches every item.
func (f Filter) IsZero() bool {
	return f.Name == ""
}
