package dto

import (
	"time"

	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/services"
	"github.com/yukikurage/todo-api/internal/utils"
)

// TodoDTO represents a todo in API responses
type TodoDTO struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"ownerId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Completed   bool         `json:"completed"`
	DueDate     *models.Date `json:"dueDate"`
	Priority    string       `json:"priority"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CreateTodoRequest is the body of POST /todos
type CreateTodoRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Completed   *bool        `json:"completed"`
	DueDate     *models.Date `json:"dueDate"`
	Priority    string       `json:"priority"`
}

// UpdateTodoRequest is the body of PUT /todos/:id. Only keys present in the
// JSON document are applied.
type UpdateTodoRequest struct {
	Title       utils.Optional[string]      `json:"title"`
	Description utils.Optional[string]      `json:"description"`
	Completed   utils.Optional[bool]        `json:"completed"`
	DueDate     utils.Optional[models.Date] `json:"dueDate"`
	Priority    utils.Optional[string]      `json:"priority"`
}

// SuggestTodosRequest is the body of POST /todos/suggest
type SuggestTodosRequest struct {
	Text string `json:"text" binding:"required"`
}

// SuggestTodosResponse wraps the suggested todos
type SuggestTodosResponse struct {
	Todos []services.SuggestedTodo `json:"todos"`
}

// ToInput converts the request into service input
func (r CreateTodoRequest) ToInput() services.CreateTodoInput {
	return services.CreateTodoInput{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
	}
}

// ToInput converts the request into service input
func (r UpdateTodoRequest) ToInput() services.UpdateTodoInput {
	return services.UpdateTodoInput{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		DueDate:     r.DueDate,
		Priority:    r.Priority,
	}
}

// ToTodoDTO converts a Todo model to TodoDTO
func ToTodoDTO(todo models.Todo) TodoDTO {
	return TodoDTO{
		ID:          todo.ID,
		OwnerID:     todo.OwnerID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		DueDate:     todo.DueDate,
		Priority:    todo.Priority,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// ToTodoDTOs converts a slice of todos, never returning nil
func ToTodoDTOs(todos []models.Todo) []TodoDTO {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo)
	}
	return items
}
