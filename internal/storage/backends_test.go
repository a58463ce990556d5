package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MosinFAM/reddit-forum/internal/db"

	"github.com/stretchr/testify/require"
)

func newTestMongo(t *testing.T, uri string) Storage {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := db.ConnectMongo(ctx, uri)
	require.NoError(t, err)

	name := fmt.Sprintf("reddit_test_%d", time.Now().UnixNano())
	s := NewMongoStorage(client, name)
	require.NoError(t, s.EnsureIndexes(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client.Database(name).Drop(ctx)
		s.Close(ctx)
	})
	return s
}

func newTestPostgres(t *testing.T, dsn string) Storage {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := db.ConnectPostgres(ctx, dsn)
	require.NoError(t, err)

	s := NewPostgresStorage(conn, dsn)
	require.NoError(t, s.InitDB("../../migrations"))

	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}
