package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
	"github.com/yukikurage/todo-api/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	todoService *services.TodoService
}

func setupTestEnv(t *testing.T, identitySource string, suggester TodoSuggester) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Todo{}))

	authService := services.NewAuthService(repository.NewUserRepository(db)).WithHashCost(bcrypt.MinCost)
	todoService := services.NewTodoService(repository.NewTodoRepository(db))

	var binder session.Binder
	r := gin.New()
	r.Use(session.Middleware(cookie.NewStore([]byte("secret"))))
	RegisterRoutes(r,
		NewAuthHandler(authService, binder),
		NewTodoHandler(todoService, suggester),
		binder,
		middleware.RequireTodoIdentity(identitySource, binder),
	)

	return testEnv{
		db:          db,
		router:      r,
		authService: authService,
		todoService: todoService,
	}
}

type request struct {
	method  string
	path    string
	body    any
	userID  string
	cookies []*http.Cookie
}

func (env testEnv) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	switch b := r.body.(type) {
	case nil:
	case string:
		body.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&body).Encode(b))
	}

	req := httptest.NewRequest(r.method, r.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if r.userID != "" {
		req.Header.Set("X-User-Id", r.userID)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

// sessionCookies keeps only cookies that are still live.
func sessionCookies(w *httptest.ResponseRecorder) []*http.Cookie {
	var live []*http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			live = append(live, c)
		}
	}
	return live
}
