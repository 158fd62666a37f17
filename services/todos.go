package services

import (
	"context"
	"fmt"

	"todo-service/common"
	"todo-service/models"
	"todo-service/storage"

	"github.com/google/uuid"
)

const todosCollection = "todos"

// TodoService handles CRUD over the todos collection, scoped to an owning
// user. Callers supply an already-resolved owner id; the service never
// re-authenticates. A todo owned by another user is indistinguishable from
// a nonexistent one: both report common.ErrNotFound.
type TodoService struct {
	store *storage.Store
}

// NewTodoService creates a TodoService backed by the given store.
func NewTodoService(store *storage.Store) *TodoService {
	return &TodoService{store: store}
}

// List returns the owner's todos in storage order. The result is never nil,
// so an owner with no todos serializes as an empty array.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]models.Todo, error) {
	todos, err := storage.Load[models.Todo](s.store, todosCollection)
	if err != nil {
		return nil, err
	}
	owned := []models.Todo{}
	for _, t := range todos {
		if t.OwnerID == ownerID {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

// Get returns the todo matching both id and owner.
func (s *TodoService) Get(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	todos, err := storage.Load[models.Todo](s.store, todosCollection)
	if err != nil {
		return nil, err
	}
	for i := range todos {
		if todos[i].ID == id && todos[i].OwnerID == ownerID {
			return &todos[i], nil
		}
	}
	return nil, fmt.Errorf("%w: todo %s", common.ErrNotFound, id)
}

// Create appends a new todo for the owner with completed defaulting to
// false and returns it.
func (s *TodoService) Create(ctx context.Context, ownerID, text string) (*models.Todo, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: todo text is required", common.ErrValidation)
	}

	todo := models.Todo{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Text:      text,
		Completed: false,
	}
	err := storage.Update(s.store, todosCollection, func(todos []models.Todo) ([]models.Todo, error) {
		return append(todos, todo), nil
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// Update replaces only the supplied fields of the owner's todo and returns
// the updated record. Nil text or completed leaves the stored value as is.
func (s *TodoService) Update(ctx context.Context, ownerID, id string, text *string, completed *bool) (*models.Todo, error) {
	var updated models.Todo
	err := storage.Update(s.store, todosCollection, func(todos []models.Todo) ([]models.Todo, error) {
		for i := range todos {
			if todos[i].ID != id || todos[i].OwnerID != ownerID {
				continue
			}
			if text != nil {
				todos[i].Text = *text
			}
			if completed != nil {
				todos[i].Completed = *completed
			}
			updated = todos[i]
			return todos, nil
		}
		return nil, fmt.Errorf("%w: todo %s", common.ErrNotFound, id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the owner's todo.
func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	return storage.Update(s.store, todosCollection, func(todos []models.Todo) ([]models.Todo, error) {
		for i := range todos {
			if todos[i].ID == id && todos[i].OwnerID == ownerID {
				return append(todos[:i], todos[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: todo %s", common.ErrNotFound, id)
	})
}
