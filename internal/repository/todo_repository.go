package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return translateGormError(err)
	}
	return nil
}

// FindByID finds a todo by ID
func (r *GormTodoRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.WithContext(ctx).First(&todo, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &todo, nil
}

// ListByOwner retrieves all todos of one owner
func (r *GormTodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error) {
	todos := []models.Todo{}
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Update writes every column of an existing todo, zero values included
func (r *GormTodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	result := r.db.WithContext(ctx).Model(todo).Select("*").Updates(todo)
	if result.Error != nil {
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard deletes a todo
func (r *GormTodoRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Todo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
