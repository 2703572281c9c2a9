package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/dto"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/services"
)

type TodoHandlerTestSuite struct {
	suite.Suite
	env testEnv
}

func (s *TodoHandlerTestSuite) SetupTest() {
	s.env = setupTestEnv(s.T(), config.IdentitySourceHeader, nil)
}

func (s *TodoHandlerTestSuite) create(userID string, body any) dto.TodoDTO {
	w := s.env.do(s.T(), request{method: http.MethodPost, path: "/todos", body: body, userID: userID})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.TodoDTO](s.T(), w)
}

func (s *TodoHandlerTestSuite) list(userID string) []dto.TodoDTO {
	w := s.env.do(s.T(), request{method: http.MethodGet, path: "/todos", userID: userID})
	s.Require().Equal(http.StatusOK, w.Code)
	return decode[[]dto.TodoDTO](s.T(), w)
}

func (s *TodoHandlerTestSuite) TestMissingUserHeader() {
	for _, r := range []request{
		{method: http.MethodGet, path: "/todos"},
		{method: http.MethodPost, path: "/todos", body: map[string]string{"title": "x"}},
		{method: http.MethodPut, path: "/todos/abc", body: map[string]string{"title": "x"}},
		{method: http.MethodDelete, path: "/todos/abc"},
		{method: http.MethodPost, path: "/todos/suggest", body: map[string]string{"text": "x"}},
	} {
		w := s.env.do(s.T(), r)
		s.Equal(http.StatusUnauthorized, w.Code, r.method+" "+r.path)
	}
}

func (s *TodoHandlerTestSuite) TestList_EmptyIsArray() {
	w := s.env.do(s.T(), request{method: http.MethodGet, path: "/todos", userID: "alice"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *TodoHandlerTestSuite) TestCreate() {
	todo := s.create("alice", map[string]any{
		"title":       "Write report",
		"description": "quarterly",
		"dueDate":     "2024-06-30",
		"priority":    "High",
	})

	s.NotEmpty(todo.ID)
	s.Equal("alice", todo.OwnerID)
	s.Equal("Write report", todo.Title)
	s.Equal("quarterly", todo.Description)
	s.False(todo.Completed)
	s.Require().NotNil(todo.DueDate)
	s.Equal("2024-06-30", todo.DueDate.String())
	s.Equal("High", todo.Priority)
	s.Equal(todo.CreatedAt, todo.UpdatedAt)
}

func (s *TodoHandlerTestSuite) TestCreate_IgnoresClientOwner() {
	todo := s.create("alice", map[string]any{"title": "Mine", "ownerId": "bob"})
	s.Equal("alice", todo.OwnerID)
}

func (s *TodoHandlerTestSuite) TestCreate_InvalidBody() {
	for _, body := range []any{
		"{",
		map[string]any{"description": "no title"},
		map[string]any{"title": "Bad date", "dueDate": "30/06/2024"},
	} {
		w := s.env.do(s.T(), request{method: http.MethodPost, path: "/todos", body: body, userID: "alice"})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal(apierrors.ErrCodeInvalidInput, decode[apierrors.APIError](s.T(), w).Code)
	}
}

func (s *TodoHandlerTestSuite) TestUpdate_PartialPayload() {
	todo := s.create("alice", map[string]any{
		"title":    "Write report",
		"dueDate":  "2024-06-30",
		"priority": "High",
	})

	w := s.env.do(s.T(), request{
		method: http.MethodPut,
		path:   "/todos/" + todo.ID,
		body:   `{"completed":true}`,
		userID: "alice",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	updated := decode[dto.TodoDTO](s.T(), w)
	s.True(updated.Completed)
	s.Equal("Write report", updated.Title)
	s.Equal("High", updated.Priority)
	s.Require().NotNil(updated.DueDate)
	s.Equal("2024-06-30", updated.DueDate.String())
	s.Equal(todo.CreatedAt, updated.CreatedAt)
	s.True(updated.UpdatedAt.After(todo.UpdatedAt))
}

func (s *TodoHandlerTestSuite) TestUpdate_EmptyTitle() {
	todo := s.create("alice", map[string]any{"title": "Write report"})

	w := s.env.do(s.T(), request{
		method: http.MethodPut,
		path:   "/todos/" + todo.ID,
		body:   `{"title":""}`,
		userID: "alice",
	})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("", decode[dto.TodoDTO](s.T(), w).Title)
}

func (s *TodoHandlerTestSuite) TestUpdate_NullClearsDueDate() {
	todo := s.create("alice", map[string]any{"title": "Write report", "dueDate": "2024-06-30"})

	w := s.env.do(s.T(), request{
		method: http.MethodPut,
		path:   "/todos/" + todo.ID,
		body:   `{"dueDate":null}`,
		userID: "alice",
	})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Nil(decode[dto.TodoDTO](s.T(), w).DueDate)
}

func (s *TodoHandlerTestSuite) TestForeignAndMissingTodosLookAlike() {
	todo := s.create("alice", map[string]any{"title": "Private"})

	for _, r := range []request{
		{method: http.MethodPut, path: "/todos/" + todo.ID, body: `{"title":"hijacked"}`, userID: "bob"},
		{method: http.MethodDelete, path: "/todos/" + todo.ID, userID: "bob"},
		{method: http.MethodPut, path: "/todos/does-not-exist", body: `{"title":"x"}`, userID: "alice"},
		{method: http.MethodDelete, path: "/todos/does-not-exist", userID: "alice"},
	} {
		w := s.env.do(s.T(), r)
		s.Equal(http.StatusNotFound, w.Code)
		apiErr := decode[apierrors.APIError](s.T(), w)
		s.Equal(apierrors.ErrCodeNotFound, apiErr.Code)
		s.Equal("Todo not found", apiErr.Message)
	}

	todos := s.list("alice")
	s.Require().Len(todos, 1)
	s.Equal("Private", todos[0].Title)
}

func (s *TodoHandlerTestSuite) TestList_ScopedToOwner() {
	s.create("alice", map[string]any{"title": "a1"})
	s.create("alice", map[string]any{"title": "a2"})
	s.create("bob", map[string]any{"title": "b1"})

	todos := s.list("alice")
	s.Len(todos, 2)
	for _, todo := range todos {
		s.Equal("alice", todo.OwnerID)
	}
	s.Len(s.list("bob"), 1)
}

func (s *TodoHandlerTestSuite) TestDelete() {
	todo := s.create("alice", map[string]any{"title": "Done soon"})

	w := s.env.do(s.T(), request{method: http.MethodDelete, path: "/todos/" + todo.ID, userID: "alice"})
	s.Require().Equal(http.StatusNoContent, w.Code)
	s.Empty(s.list("alice"))

	w = s.env.do(s.T(), request{method: http.MethodDelete, path: "/todos/" + todo.ID, userID: "alice"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TodoHandlerTestSuite) TestSuggest_NotConfigured() {
	w := s.env.do(s.T(), request{
		method: http.MethodPost,
		path:   "/todos/suggest",
		body:   map[string]string{"text": "buy milk tomorrow"},
		userID: "alice",
	})
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func TestTodoHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TodoHandlerTestSuite))
}

type stubSuggester struct {
	todos []services.SuggestedTodo
	err   error
}

func (s stubSuggester) Suggest(context.Context, string) ([]services.SuggestedTodo, error) {
	return s.todos, s.err
}

func TestTodoHandler_SuggestTodos(t *testing.T) {
	tests := []struct {
		name   string
		stub   stubSuggester
		status int
		count  int
	}{
		{"suggestions", stubSuggester{todos: []services.SuggestedTodo{{Title: "Buy milk"}, {Title: "Call mom"}}}, http.StatusOK, 2},
		{"nothing found", stubSuggester{err: services.ErrNoSuggestions}, http.StatusOK, 0},
		{"text too long", stubSuggester{err: services.ErrSuggestionTextTooLong}, http.StatusBadRequest, 0},
		{"unavailable", stubSuggester{err: services.ErrSuggestionsUnavailable}, http.StatusServiceUnavailable, 0},
		{"upstream failure", stubSuggester{err: errors.New("connection reset")}, http.StatusBadGateway, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t, config.IdentitySourceHeader, tt.stub)

			w := env.do(t, request{
				method: http.MethodPost,
				path:   "/todos/suggest",
				body:   map[string]string{"text": "buy milk and call mom"},
				userID: "alice",
			})
			require.Equal(t, tt.status, w.Code)

			if tt.status == http.StatusOK {
				resp := decode[dto.SuggestTodosResponse](t, w)
				assert.NotNil(t, resp.Todos)
				assert.Len(t, resp.Todos, tt.count)
			}

			todos, err := env.todoService.ListOwned(context.Background(), "alice")
			require.NoError(t, err)
			assert.Empty(t, todos)
		})
	}
}

func TestTodoHandler_SessionIdentity(t *testing.T) {
	env := setupTestEnv(t, config.IdentitySourceSession, nil)

	w := env.do(t, request{method: http.MethodGet, path: "/todos", userID: "alice"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, request{method: http.MethodPost, path: "/auth/signup", body: signupBody("alice@example.com")})
	require.Equal(t, http.StatusCreated, w.Code)
	user := decode[dto.UserDTO](t, w)
	cookies := sessionCookies(w)

	w = env.do(t, request{method: http.MethodPost, path: "/todos", body: map[string]string{"title": "From session"}, cookies: cookies})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, user.UserID, decode[dto.TodoDTO](t, w).OwnerID)
}
