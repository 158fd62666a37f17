package models

// Todo represents a task as persisted in the todos collection. OwnerID is
// set at creation and never changes; a todo is visible only through
// operations scoped to its owner.
type Todo struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// CreateTodoRequest represents the POST /todos body.
type CreateTodoRequest struct {
	Text string `json:"text"`
}

// UpdateTodoRequest represents the PUT /todos/{id} body. Nil fields leave
// the stored value unchanged (partial update, not full replacement).
type UpdateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}
