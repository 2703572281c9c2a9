package services

import (
	"errors"

	"github.com/yukikurage/todo-api/internal/models"
)

var (
	ErrTodoNotFound     = errors.New("todo not found")
	ErrTodoUnauthorized = errors.New("todo belongs to another user")
)

// AuthorizeTodo decides whether actingUserID may mutate todo. A nil todo means
// the lookup found nothing; existence is reported before ownership.
func AuthorizeTodo(todo *models.Todo, actingUserID string) error {
	if todo == nil {
		return ErrTodoNotFound
	}
	if todo.OwnerID != actingUserID {
		return ErrTodoUnauthorized
	}
	return nil
}
