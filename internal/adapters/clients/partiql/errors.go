package partiql

import (
	"errors"

	"github.com/aws/smithy-go"

	"github.com/jsamuelsen11/todo-partiql-service/internal/domain"
)

// translateError maps an ExecuteStatement failure to a *domain.StoreError.
// The service's error code (ThrottlingException,
// ConditionalCheckFailedException, ResourceNotFoundException, ...) is kept
// on the error for logs; callers only branch on domain.ErrStore.
//
// Transport failures carry no code. When the circuit breaker rejected the
// call, the cause still matches domain.ErrUnavailable.
func translateError(op string, err error) *domain.StoreError {
	storeErr := &domain.StoreError{Op: op, Err: err}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		storeErr.Code = apiErr.ErrorCode()
	}
	return storeErr
}
