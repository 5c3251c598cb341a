// Package partiql is the outbound adapter for the todo table. It runs PartiQL
// statements through DynamoDB's ExecuteStatement API with parameters bound
// out-of-band, and exposes the three todo statements as a [ports.TodoStore].
package partiql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jsamuelsen11/todo-partiql-service/internal/domain"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/logging"
)

// StatementAPI is the subset of the DynamoDB client used by [Client].
// *dynamodb.Client satisfies it.
type StatementAPI interface {
	ExecuteStatement(ctx context.Context, params *dynamodb.ExecuteStatementInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ExecuteStatementOutput, error)
}

// Statement is PartiQL text plus the values bound to its "?" placeholders,
// in order. Values are marshalled with attributevalue.Marshal and are never
// spliced into Text.
type Statement struct {
	Text   string
	Params []any
}

// op names the statement by its leading keyword ("insert", "select", ...).
func (s Statement) op() string {
	verb, _, _ := strings.Cut(strings.TrimSpace(s.Text), " ")
	if verb == "" {
		return "statement"
	}
	return strings.ToLower(verb)
}

// Result holds every row returned by a statement. Writes return no rows.
type Result struct {
	Rows []map[string]types.AttributeValue
}

// Client executes statements against the store. It performs no retries: a
// failed call is returned to the caller as a *domain.StoreError.
type Client struct {
	api    StatementAPI
	logger *slog.Logger
}

// NewClient creates a Client backed by api. The logger is used when the
// request context carries none.
func NewClient(api StatementAPI, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{api: api, logger: logger}
}

// Execute runs stmt and collects all result pages by following NextToken.
func (c *Client) Execute(ctx context.Context, stmt Statement) (*Result, error) {
	op := stmt.op()

	params, err := marshalParams(stmt.Params)
	if err != nil {
		return nil, &domain.StoreError{Op: op, Err: err}
	}

	result := &Result{}
	var next *string
	for {
		out, err := c.api.ExecuteStatement(ctx, &dynamodb.ExecuteStatementInput{
			Statement:  &stmt.Text,
			Parameters: params,
			NextToken:  next,
		})
		if err != nil {
			storeErr := translateError(op, err)
			c.log(ctx).ErrorContext(ctx, "statement failed",
				slog.String("op", storeErr.Op),
				slog.String("code", storeErr.Code),
				slog.String("error", err.Error()),
			)
			return nil, storeErr
		}

		result.Rows = append(result.Rows, out.Items...)
		if out.NextToken == nil || *out.NextToken == "" {
			return result, nil
		}
		next = out.NextToken
	}
}

func (c *Client) log(ctx context.Context) *slog.Logger {
	if l := logging.FromContext(ctx); l != slog.Default() {
		return l
	}
	return c.logger
}

func marshalParams(values []any) ([]types.AttributeValue, error) {
	if len(values) == 0 {
		return nil, nil
	}
	params := make([]types.AttributeValue, len(values))
	for i, v := range values {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshaling parameter %d: %w", i, err)
		}
		params[i] = av
	}
	return params, nil
}
