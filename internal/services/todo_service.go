package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/utils"
)

var ErrTitleRequired = errors.New("title is required")

// timestampPrecision is the coarsest precision among the supported stores
// (MySQL DATETIME(3) and MongoDB dates).
const timestampPrecision = time.Millisecond

// TodoService handles todo business logic
type TodoService struct {
	todoRepo repository.TodoRepository
	now      func() time.Time
}

// NewTodoService creates a new TodoService
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		now:      time.Now,
	}
}

// WithClock replaces the time source.
func (s *TodoService) WithClock(now func() time.Time) *TodoService {
	s.now = now
	return s
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	Title       string
	Description string
	Completed   *bool
	DueDate     *models.Date
	Priority    string
}

// UpdateTodoInput represents a partial update. Absent fields are left alone;
// an explicit null clears description, dueDate and priority and is ignored
// for title and completed.
type UpdateTodoInput struct {
	Title       utils.Optional[string]
	Description utils.Optional[string]
	Completed   utils.Optional[bool]
	DueDate     utils.Optional[models.Date]
	Priority    utils.Optional[string]
}

// ListOwned returns every todo owned by userID in store order
func (s *TodoService) ListOwned(ctx context.Context, userID string) ([]models.Todo, error) {
	todos, err := s.todoRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	return todos, nil
}

// Create creates a new todo owned by userID
func (s *TodoService) Create(ctx context.Context, userID string, input CreateTodoInput) (*models.Todo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	now := s.timestamp()
	todo := &models.Todo{
		OwnerID:     userID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// Update applies a partial update after the ownership check
func (s *TodoService) Update(ctx context.Context, id, userID string, input UpdateTodoInput) (*models.Todo, error) {
	todo, err := s.findAuthorized(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title.HasValue() {
		todo.Title = input.Title.Value
	}
	if input.Description.Set {
		todo.Description = input.Description.Value
	}
	if input.Completed.HasValue() {
		todo.Completed = input.Completed.Value
	}
	if input.DueDate.Set {
		if input.DueDate.Null {
			todo.DueDate = nil
		} else {
			due := input.DueDate.Value
			todo.DueDate = &due
		}
	}
	if input.Priority.Set {
		todo.Priority = input.Priority.Value
	}

	// updatedAt must move forward even when the clock has not.
	next := s.timestamp()
	if !next.After(todo.UpdatedAt) {
		next = todo.UpdatedAt.Add(timestampPrecision)
	}
	todo.UpdatedAt = next

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// Delete removes a todo after the ownership check
func (s *TodoService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.findAuthorized(ctx, id, userID); err != nil {
		return err
	}

	if err := s.todoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return nil
}

// findAuthorized loads the todo and runs it through AuthorizeTodo
func (s *TodoService) findAuthorized(ctx context.Context, id, userID string) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if err := AuthorizeTodo(todo, userID); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) timestamp() time.Time {
	return s.now().UTC().Truncate(timestampPrecision)
}
