// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/validation"
	"github.com/jsamuelsen11/todo-partiql-service/internal/domain/todo"
)

var (
	createTodoRules = validation.Rules{
		validation.MinLength(dto.FieldName, todo.MinNameLength),
		validation.MinLength(dto.FieldDescription, todo.MinDescriptionLength),
	}
	deleteTodoRules = validation.Rules{
		validation.MinLength(dto.FieldName, todo.MinNameLength),
	}
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. Validators read the body
// stored by middleware.ParseJSON, so that middleware belongs in the chain.
func NewRouter(
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Chain(middlewares...))

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api", func(r chi.Router) {
		r.Get("/todo", todoHandler.ListTodos)
		r.With(middleware.Validate(dto.MsgInvalidBody, createTodoRules)).
			Post("/todo", todoHandler.CreateTodo)
		r.With(middleware.Validate(dto.MsgInvalidDeleteBody, deleteTodoRules)).
			Delete("/todo", todoHandler.DeleteTodo)
	})

	return r
}
