package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/todo-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TodosCollection is the MongoDB collection holding todos.
const TodosCollection = "todos"

type todoDocument struct {
	ID          string     `bson:"_id"`
	OwnerID     string     `bson:"ownerId"`
	Title       string     `bson:"title"`
	Description string     `bson:"description,omitempty"`
	Completed   bool       `bson:"completed"`
	DueDate     *time.Time `bson:"dueDate,omitempty"`
	Priority    string     `bson:"priority,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"`
}

func newTodoDocument(t *models.Todo) todoDocument {
	doc := todoDocument{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		due := t.DueDate.Time
		doc.DueDate = &due
	}
	return doc
}

func (d todoDocument) toModel() models.Todo {
	todo := models.Todo{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		Priority:    d.Priority,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		date := models.NewDate(due.Year(), due.Month(), due.Day())
		todo.DueDate = &date
	}
	return todo
}

// MongoTodoRepository is a MongoDB implementation of TodoRepository
type MongoTodoRepository struct {
	coll *mongo.Collection
}

// NewMongoTodoRepository creates a new TodoRepository backed by MongoDB
func NewMongoTodoRepository(db *mongo.Database) TodoRepository {
	return &MongoTodoRepository{coll: db.Collection(TodosCollection)}
}

// EnsureTodoIndexes creates the owner lookup index.
func EnsureTodoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(TodosCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerId", Value: 1}},
		Options: options.Index().SetName("idx_todos_owner_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create todos index: %w", err)
	}
	return nil
}

// Create inserts a new todo document
func (r *MongoTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.NewString()
	}
	if _, err := r.coll.InsertOne(ctx, newTodoDocument(todo)); err != nil {
		return translateMongoError(err)
	}
	return nil
}

// FindByID finds a todo by ID
func (r *MongoTodoRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	var doc todoDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}
	todo := doc.toModel()
	return &todo, nil
}

// ListByOwner retrieves all todos of one owner
func (r *MongoTodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, err
	}

	var docs []todoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	todos := make([]models.Todo, 0, len(docs))
	for _, doc := range docs {
		todos = append(todos, doc.toModel())
	}
	return todos, nil
}

// Update replaces the stored document
func (r *MongoTodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": todo.ID}, newTodoDocument(todo))
	if err != nil {
		return translateMongoError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a todo document
func (r *MongoTodoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
