// Package session binds an authenticated user id to the caller's session.
// The session token travels in a cookie; the binding itself lives in the
// configured gin-contrib/sessions store.
package session

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/memstore"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	gsessions "github.com/gorilla/sessions"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/constants"
)

// NewStore builds the session store selected by SESSION_STORE.
func NewStore(cfg *config.Config) (sessions.Store, error) {
	secret := []byte(cfg.SessionSecret)

	var store sessions.Store
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		s, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			secret,    // authentication key
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = s
	case config.SessionStoreCookie:
		store = cookie.NewStore(secret)
	case config.SessionStoreMemory:
		store = memstore.NewStore(secret)
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// Middleware installs the session for every request.
func Middleware(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(constants.SessionCookieName, store)
}

// Binder is the explicit token -> user id binding.
type Binder struct{}

// Bind associates userID with a fresh session. Whatever session the client
// presented is discarded first, so a token obtained before sign-in never
// becomes an authenticated one.
func (Binder) Bind(c *gin.Context, userID string) error {
	s := sessions.Default(c)
	if err := rotate(c, s); err != nil {
		return err
	}
	s.Set(constants.ContextKeyUserID, userID)
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Invalidate drops the binding and expires the cookie. Calling it without a
// bound session is not an error.
func (Binder) Invalidate(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// rotate clears s and makes the next Save issue a new session id. Stores that
// key sessions by id (redis, memory) also drop the old entry.
func rotate(c *gin.Context, s sessions.Session) error {
	s.Clear()

	raw, ok := s.(interface{ Session() *gsessions.Session })
	if !ok {
		return nil
	}
	current := raw.Session()
	if current == nil {
		return nil
	}

	if current.ID != "" && current.Options != nil {
		opts := *current.Options
		expired := opts
		expired.MaxAge = -1
		current.Options = &expired
		if err := current.Save(c.Request, c.Writer); err != nil {
			return fmt.Errorf("failed to discard session: %w", err)
		}
		current.Options = &opts
	}
	current.ID = ""
	current.IsNew = true
	return nil
}

// Lookup returns the user id bound to the caller's session.
func (Binder) Lookup(c *gin.Context) (string, bool) {
	userID, ok := sessions.Default(c).Get(constants.ContextKeyUserID).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
