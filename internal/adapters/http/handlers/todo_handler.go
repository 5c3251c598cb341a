package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-partiql-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-partiql-service/internal/ports"
)

// TodoHandler handles the /api/todo routes. Request bodies have already been
// parsed and validated by middleware when a handler runs.
type TodoHandler struct {
	store ports.TodoStore
}

// NewTodoHandler creates a new TodoHandler with the given store port.
func NewTodoHandler(store ports.TodoStore) *TodoHandler {
	return &TodoHandler{store: store}
}

// CreateTodo handles POST /api/todo.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	item := dto.ToTodoItem(middleware.BodyFromContext(ctx))

	if err := h.store.Create(ctx, item); err != nil {
		logging.FromContext(ctx).ErrorContext(ctx, "create todo failed",
			slog.String("name", item.Name),
			slog.String("error", err.Error()),
		)
		dto.WriteError(w, err, dto.MsgInsertFailed)
		return
	}

	dto.WriteText(w, http.StatusOK, dto.MsgSuccess)
}

// ListTodos handles GET /api/todo. A non-empty name query parameter narrows
// the result to items with exactly that name.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := todo.Filter{Name: r.URL.Query().Get(dto.FieldName)}

	items, err := h.store.List(ctx, filter)
	if err != nil {
		logging.FromContext(ctx).ErrorContext(ctx, "list todos failed",
			slog.String("name", filter.Name),
			slog.String("error", err.Error()),
		)
		dto.WriteText(w, http.StatusInternalServerError, dto.MsgQueryFailed)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoListResponse(items))
}

// DeleteTodo handles DELETE /api/todo. The response is written only after
// the store has answered.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := dto.DeleteName(middleware.BodyFromContext(ctx))

	if err := h.store.Delete(ctx, name); err != nil {
		logging.FromContext(ctx).ErrorContext(ctx, "delete todo failed",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		dto.WriteError(w, err, dto.MsgDeleteFailed)
		return
	}

	dto.WriteText(w, http.StatusOK, dto.MsgSuccess)
}
