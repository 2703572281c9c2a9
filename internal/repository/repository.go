package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/todo-api/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("repository: duplicate key")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user, assigning an ID when empty
	Create(ctx context.Context, user *models.User) error

	// ExistsByEmail reports whether a user with exactly this email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByEmail finds a user by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create inserts a new todo, assigning an ID when empty
	Create(ctx context.Context, todo *models.Todo) error

	// FindByID finds a todo by ID
	FindByID(ctx context.Context, id string) (*models.Todo, error)

	// ListByOwner returns every todo whose owner is ownerID
	ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error)

	// Update overwrites a stored todo
	Update(ctx context.Context, todo *models.Todo) error

	// Delete removes a todo permanently
	Delete(ctx context.Context, id string) error
}
