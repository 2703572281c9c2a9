package constants

const (
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "todo_session"

	// SessionMaxAge is the session lifetime in seconds (7 days).
	SessionMaxAge = 86400 * 7

	// ContextKeyUserID is used both as the session key and the gin context key.
	ContextKeyUserID = "user_id"

	// HeaderUserID carries the caller-asserted user id on to-do routes.
	HeaderUserID = "X-User-Id"

	// DateLayout is the wire and storage format of calendar dates.
	DateLayout = "2006-01-02"

	// MaxSuggestedTodos caps how many suggestions one request may return.
	MaxSuggestedTodos = 20

	// MaxPasswordBytes is the longest password bcrypt accepts.
	MaxPasswordBytes = 72

	// MaxSuggestionTextLength limits the text sent to the suggestion model.
	MaxSuggestionTextLength = 4000
)
