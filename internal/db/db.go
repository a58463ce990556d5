package db

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectPostgres opens a pool for dsn and checks it with a ping.
func ConnectPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("Connected to PostgreSQL successfully!")
	return db, nil
}

// ConnectMongo connects to uri and pings the primary.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	log.Println("Connected to MongoDB successfully")
	return client, nil
}

// Retry calls connect up to attempts times, sleeping wait between failures.
func Retry(attempts int, wait time.Duration, connect func() error) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = connect(); err == nil {
			return nil
		}
		log.Printf("Connection attempt %d failed: %v", i, err)
		if i < attempts {
			time.Sleep(wait)
		}
	}
	return err
}
