package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/handlers"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
	"github.com/yukikurage/todo-api/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	userRepo, todoRepo, closeStore := openRepositories(cfg)
	defer closeStore()

	// Initialize Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup session middleware
	store, err := session.NewStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	r.Use(session.Middleware(store))

	// Initialize services
	authService := services.NewAuthService(userRepo)
	todoService := services.NewTodoService(todoRepo)

	var suggester handlers.TodoSuggester
	if s := services.NewSuggestionService(cfg.OpenAIAPIKey, cfg.OpenAIModel); s != nil {
		suggester = s
	} else {
		log.Println("OPENAI_API_KEY not set, todo suggestions disabled")
	}

	// Initialize handlers
	var binder session.Binder
	authHandler := handlers.NewAuthHandler(authService, binder)
	todoHandler := handlers.NewTodoHandler(todoService, suggester)

	handlers.RegisterRoutes(r, authHandler, todoHandler, binder,
		middleware.RequireTodoIdentity(cfg.TodoIdentitySource, binder))

	// Start server
	log.Printf("Server starting on :%s (db=%s, sessions=%s, todo identity=%s)",
		cfg.Port, cfg.DBDriver, cfg.SessionStore, cfg.TodoIdentitySource)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// openRepositories connects the configured backend and runs its migrations.
func openRepositories(cfg *config.Config) (repository.UserRepository, repository.TodoRepository, func()) {
	if cfg.DBDriver == config.DriverMongo {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.MigrateMongo(ctx, db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("Failed to disconnect from MongoDB: %v", err)
			}
		}
		return repository.NewMongoUserRepository(db), repository.NewMongoTodoRepository(db), closeFn
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return repository.NewUserRepository(db), repository.NewTodoRepository(db), closeFn
}
