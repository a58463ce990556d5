package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MosinFAM/reddit-forum/internal/config"
	"github.com/MosinFAM/reddit-forum/internal/db"
	"github.com/MosinFAM/reddit-forum/internal/storage"
	"github.com/MosinFAM/reddit-forum/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := openStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := web.NewHandler(store, cfg.Storage.Timeout)
	router, err := web.NewRouter(handler, cfg.Server.SSL)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      c.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server is running on %s (storage: %s)", server.Addr, cfg.Storage.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("Forced shutdown:", err)
	}
	if err := store.Close(ctx); err != nil {
		log.Println("Failed to close storage:", err)
	}
	log.Println("Server stopped")
}

func openStorage(cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Type {
	case "memory":
		return storage.NewMemoryStorage(), nil

	case "mongo":
		var client *mongo.Client
		err := db.Retry(3, 2*time.Second, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			var err error
			client, err = db.ConnectMongo(ctx, cfg.MongoURI)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		store := storage.NewMongoStorage(client, cfg.MongoDatabase)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		conn, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
		}
		store := storage.NewPostgresStorage(conn, cfg.PostgresDSN)
		if err := store.InitDB(cfg.Migrations); err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
}
