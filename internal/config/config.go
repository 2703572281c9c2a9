package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported persistence backends.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Supported session stores.
const (
	SessionStoreRedis  = "redis"
	SessionStoreCookie = "cookie"
	SessionStoreMemory = "memory"
)

// Where the to-do routes take the acting user from.
const (
	IdentitySourceHeader  = "header"
	IdentitySourceSession = "session"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8081"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"3306"`
	DBUser     string `envconfig:"DB_USER" default:"todouser"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"todopassword"`
	DBName     string `envconfig:"DB_NAME" default:"todos"`
	MongoURI   string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`

	SessionStore  string `envconfig:"SESSION_STORE" default:"redis"`
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"default-secret-key-change-me"`

	TodoIdentitySource string   `envconfig:"TODO_IDENTITY_SOURCE" default:"header"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values outside the supported enumerations.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.SessionStore {
	case SessionStoreRedis, SessionStoreCookie, SessionStoreMemory:
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	switch c.TodoIdentitySource {
	case IdentitySourceHeader, IdentitySourceSession:
	default:
		return fmt.Errorf("unsupported TODO_IDENTITY_SOURCE %q", c.TodoIdentitySource)
	}

	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}
