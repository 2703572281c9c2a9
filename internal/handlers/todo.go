package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/dto"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/services"
)

// TodoSuggester proposes todos from free text.
type TodoSuggester interface {
	Suggest(ctx context.Context, text string) ([]services.SuggestedTodo, error)
}

type TodoHandler struct {
	todoService *services.TodoService
	suggester   TodoSuggester
}

func NewTodoHandler(todoService *services.TodoService, suggester TodoSuggester) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		suggester:   suggester,
	}
}

// ListTodos returns every todo of the acting user
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todos, err := h.todoService.ListOwned(c.Request.Context(), userID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTOs(todos))
}

// CreateTodo creates a todo owned by the acting user
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo))
}

// UpdateTodo applies the fields present in the body
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.Update(c.Request.Context(), c.Param("id"), userID, req.ToInput())
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// DeleteTodo deletes a todo of the acting user
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.todoService.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondTodoError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SuggestTodos extracts todo suggestions from text without saving them
func (h *TodoHandler) SuggestTodos(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.SuggestTodosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.suggester == nil {
		apierrors.ServiceUnavailable(c, "Suggestions are not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	suggestions, err := h.suggester.Suggest(c.Request.Context(), req.Text)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoSuggestions):
		suggestions = []services.SuggestedTodo{}
	case errors.Is(err, services.ErrSuggestionsUnavailable):
		apierrors.ServiceUnavailable(c, "Suggestions are not configured. Please set OPENAI_API_KEY environment variable.")
		return
	case errors.Is(err, services.ErrSuggestionTextRequired),
		errors.Is(err, services.ErrSuggestionTextTooLong):
		apierrors.BadRequest(c, err.Error())
		return
	default:
		log.Printf("suggest: %v", err)
		apierrors.BadGateway(c, "Failed to generate suggestions")
		return
	}

	c.JSON(http.StatusOK, dto.SuggestTodosResponse{Todos: suggestions})
}

// respondTodoError reports missing and foreign todos identically so that a
// caller cannot probe which ids exist.
func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoNotFound),
		errors.Is(err, services.ErrTodoUnauthorized):
		apierrors.NotFound(c, "Todo not found")
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("todo: %v", err)
		apierrors.InternalError(c, "")
	}
}
