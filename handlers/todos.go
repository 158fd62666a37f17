package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"todo-service/common"
	"todo-service/models"
	"todo-service/services"

	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

// todoListKeyPrefix keys the cached per-user todo list.
const todoListKeyPrefix = "todos:"

// todoListTTL bounds staleness if an invalidation is ever missed.
const todoListTTL = 5 * time.Minute

// TodoHandler handles the bearer-authenticated todo endpoints. Each handler
// resolves the bearer token itself, so every todo operation is scoped to
// the resolved owner.
type TodoHandler struct {
	todos *services.TodoService
	auth  *services.AuthService
	cache cache.Cache
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(todos *services.TodoService, auth *services.AuthService, cache cache.Cache) *TodoHandler {
	return &TodoHandler{
		todos: todos,
		auth:  auth,
		cache: cache,
	}
}

// currentUser resolves the request's bearer token to its user.
func (h *TodoHandler) currentUser(ctx context.Context, r *http.Request) (*models.User, error) {
	return h.auth.Resolve(ctx, bearerToken(r))
}

// rejectAuth maps a failed token resolution to a response.
func rejectAuth(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrAuthentication) {
		logRequest(ctx, "info", "Unresolved bearer token")
		writeJSON(w, http.StatusUnauthorized, errs.NewAuthenticationError("Unauthorized"))
		return
	}
	logRequest(ctx, "error", "Failed to resolve bearer token", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Server error"))
}

// List handles GET /todos - list the caller's todos
func (h *TodoHandler) List(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(ctx, r)
	if err != nil {
		rejectAuth(ctx, w, err)
		return
	}

	// Try cache first
	cacheKey := todoListKeyPrefix + user.ID
	if cached, err := h.cache.Get(cacheKey); err == nil {
		if data, ok := cached.([]byte); ok {
			logRequest(ctx, "debug", "Serving todos from cache", zap.String("user_id", user.ID))
			applyCORS(w)
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
	}

	todos, err := h.todos.List(ctx, user.ID)
	if err != nil {
		logRequest(ctx, "error", "Failed to load todos", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Server error"))
		return
	}

	response, _ := json.Marshal(todos)
	h.cache.Set(cacheKey, response, todoListTTL)

	logRequest(ctx, "info", "Todos retrieved successfully", zap.Int("count", len(todos)))

	applyCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.Write(response)
}

// Get handles GET /todos/{id} - get one of the caller's todos
func (h *TodoHandler) Get(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(ctx, r)
	if err != nil {
		rejectAuth(ctx, w, err)
		return
	}

	id := mux.Vars(r)["id"]
	logRequest(ctx, "info", "Getting todo", zap.String("todo_id", id))

	todo, err := h.todos.Get(ctx, user.ID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			logRequest(ctx, "info", "Todo not found", zap.String("todo_id", id))
			writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("Todo not found"))
			return
		}
		logRequest(ctx, "error", "Failed to load todo", zap.Error(err), zap.String("todo_id", id))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Server error"))
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// Create handles POST /todos - create a todo owned by the caller
func (h *TodoHandler) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(ctx, r)
	if err != nil {
		rejectAuth(ctx, w, err)
		return
	}

	var req models.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, "error", "Invalid request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid JSON in request body"))
		return
	}

	todo, err := h.todos.Create(ctx, user.ID, req.Text)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			logRequest(ctx, "error", "Empty todo text", zap.String("user_id", user.ID))
			writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Todo text is required"))
			return
		}
		logRequest(ctx, "error", "Failed to create todo", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Server error"))
		return
	}

	h.cache.Delete(todoListKeyPrefix + user.ID)

	logRequest(ctx, "info", "Todo created successfully", zap.String("todo_id", todo.ID))
	writeJSON(w, http.StatusCreated, todo)
}

// Update handles PUT /todos/{id} - partially update one of the caller's todos
func (h *TodoHandler) Update(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(ctx, r)
	if err != nil {
		rejectAuth(ctx, w, err)
		return
	}

	id := mux.Vars(r)["id"]

	var req models.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, "error", "Invalid request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errs.NewValidationError("Invalid JSON in request body"))
		return
	}

	logRequest(ctx, "info", "Updating todo", zap.String("todo_id", id))

	todo, err := h.todos.Update(ctx, user.ID, id, req.Text, req.Completed)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			logRequest(ctx, "info", "Todo not found for update", zap.String("todo_id", id))
			writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("Todo not found"))
			return
		}
		logRequest(ctx, "error", "Failed to update todo", zap.Error(err), zap.String("todo_id", id))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Server error"))
		return
	}

	h.cache.Delete(todoListKeyPrefix + user.ID)

	logRequest(ctx, "info", "Todo updated successfully", zap.String("todo_id", id))
	writeJSON(w, http.StatusOK, todo)
}

// Delete handles DELETE /todos/{id} - delete one of the caller's todos
func (h *TodoHandler) Delete(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(ctx, r)
	if err != nil {
		rejectAuth(ctx, w, err)
		return
	}

	id := mux.Vars(r)["id"]
	logRequest(ctx, "info", "Deleting todo", zap.String("todo_id", id))

	if err := h.todos.Delete(ctx, user.ID, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			logRequest(ctx, "info", "Todo not found for deletion", zap.String("todo_id", id))
			writeJSON(w, http.StatusNotFound, errs.NewNotFoundError("Todo not found"))
			return
		}
		logRequest(ctx, "error", "Failed to delete todo", zap.Error(err), zap.String("todo_id", id))
		writeJSON(w, http.StatusInternalServerError, errs.NewInternalServerError("Server error"))
		return
	}

	h.cache.Delete(todoListKeyPrefix + user.ID)

	logRequest(ctx, "info", "Todo deleted successfully", zap.String("todo_id", id))
	writeNoContent(w, http.StatusNoContent)
}
