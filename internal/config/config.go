package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
	SSL     bool   `mapstructure:"ssl"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type          string        `mapstructure:"type"` // memory, mongo or postgres
	MongoURI      string        `mapstructure:"mongo_uri"`
	MongoDatabase string        `mapstructure:"mongo_database"`
	PostgresDSN   string        `mapstructure:"postgres_dsn"`
	Migrations    string        `mapstructure:"migrations"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// CORSConfig lists the origins allowed to call the server from a browser
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr is the listen address.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadConfig reads .env, then config.yaml, then environment variables;
// later sources win.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Set defaults
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.gin_mode", "debug")
	v.SetDefault("server.ssl", false)
	v.SetDefault("storage.type", "mongo")
	v.SetDefault("storage.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("storage.mongo_database", "reddit-db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.migrations", "./migrations")
	v.SetDefault("storage.timeout", "10s")
	v.SetDefault("cors.allowed_origins", []string{"*"})

	// Environment variable bindings
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.gin_mode", "GIN_MODE")
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.mongo_uri", "MONGODB_URI")
	v.BindEnv("storage.postgres_dsn", "DATABASE_URL")

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Println("No config file found, using defaults and environment variables")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Storage.Type {
	case "memory", "mongo":
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return errors.New("DATABASE_URL is not set")
		}
	default:
		return errors.New("unsupported storage type: " + c.Storage.Type)
	}
	if c.Storage.Timeout <= 0 {
		return errors.New("storage.timeout must be positive")
	}
	return nil
}
