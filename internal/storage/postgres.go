package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/MosinFAM/reddit-forum/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pressly/goose"
)

const commentsChannel = "comments_channel"

// PostgresStorage - хранилище в PostgreSQL
type PostgresStorage struct {
	DB         *sql.DB
	DataSource string
}

// NewPostgresStorage создаёт экземпляр PostgreSQL-хранилища
func NewPostgresStorage(db *sql.DB, dataSource string) *PostgresStorage {
	return &PostgresStorage{DB: db, DataSource: dataSource}
}

// InitDB applies the goose migrations found in dir.
func (s *PostgresStorage) InitDB(dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(s.DB, dir); err != nil {
		return fmt.Errorf("apply migrations from %s: %w", dir, err)
	}
	return nil
}

// AddPost добавляет новый пост в БД
func (s *PostgresStorage) AddPost(ctx context.Context, post models.Post) (models.Post, error) {
	post.ID = uuid.New().String()
	post.CommentIDs = []string{}
	post.CreatedAt = time.Now().UTC()
	log.Printf("Adding new post: %+v", post)

	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO posts (id, title, body, subreddit, comment_ids, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		post.ID, post.Title, post.Body, post.Subreddit, pq.Array(post.CommentIDs), post.CreatedAt)
	if err != nil {
		log.Println("DB Insert Error:", err)
		return models.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

// GetAllPosts возвращает все посты
func (s *PostgresStorage) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	log.Println("Fetching all posts from database")
	return s.queryPosts(ctx,
		"SELECT id, title, body, subreddit, comment_ids, created_at FROM posts ORDER BY created_at, id")
}

// GetPostsBySubreddit возвращает посты одного сабреддита
func (s *PostgresStorage) GetPostsBySubreddit(ctx context.Context, subreddit string) ([]models.Post, error) {
	log.Printf("Fetching posts of subreddit %s", subreddit)
	return s.queryPosts(ctx,
		"SELECT id, title, body, subreddit, comment_ids, created_at FROM posts WHERE subreddit=$1 ORDER BY created_at, id",
		subreddit)
}

func (s *PostgresStorage) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Println("Error fetching posts:", err)
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Body, &post.Subreddit,
			pq.Array(&post.CommentIDs), &post.CreatedAt); err != nil {
			log.Println("Error scanning post row:", err)
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// GetPostByID возвращает пост по ID
func (s *PostgresStorage) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	log.Printf("Fetching post with ID: %s", id)
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPostNotFound
	}

	var post models.Post
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, title, body, subreddit, comment_ids, created_at FROM posts WHERE id=$1", id).
		Scan(&post.ID, &post.Title, &post.Body, &post.Subreddit, pq.Array(&post.CommentIDs), &post.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		log.Println("Error fetching post:", err)
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return &post, nil
}

// GetComments возвращает комментарии в порядке ids
func (s *PostgresStorage) GetComments(ctx context.Context, ids []string) ([]models.Comment, error) {
	if len(ids) == 0 {
		return []models.Comment{}, nil
	}

	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, post_id, body, author, created_at FROM comments WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		log.Println("Error fetching comments:", err)
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.Comment, len(ids))
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Body, &c.Author, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orderComments(ids, byID), nil
}

// AddComment inserts the comment and prepends it to the post in one transaction.
func (s *PostgresStorage) AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Comment, error) {
	log.Printf("Adding comment to post %s", postID)
	if _, err := uuid.Parse(postID); err != nil {
		return nil, ErrPostNotFound
	}

	comment.ID = uuid.New().String()
	comment.PostID = postID
	comment.CreatedAt = time.Now().UTC()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE posts SET comment_ids = array_prepend($1::text, comment_ids) WHERE id=$2",
		comment.ID, postID)
	if err != nil {
		return nil, fmt.Errorf("attach comment: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrPostNotFound
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO comments (id, post_id, body, author, created_at) VALUES ($1, $2, $3, $4, $5)",
		comment.ID, comment.PostID, comment.Body, comment.Author, comment.CreatedAt)
	if err != nil {
		log.Println("DB Insert Error:", err)
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	// NOTIFY доставляется только после COMMIT
	if _, err := tx.ExecContext(ctx, "SELECT pg_notify($1, $2)",
		commentsChannel, comment.PostID+"|"+comment.ID); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit comment: %w", err)
	}

	log.Printf("Comment added: %+v", comment)
	return &comment, nil
}

// SubscribeToComments listens on comments_channel and forwards the comments of postID.
func (s *PostgresStorage) SubscribeToComments(ctx context.Context, postID string) (<-chan *models.Comment, error) {
	if _, err := s.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	log.Printf("Subscribing to comments for post %s", postID)
	listener := pq.NewListener(s.DataSource, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Println("Postgres Listener error:", err)
		}
	})
	if err := listener.Listen(commentsChannel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", commentsChannel, err)
	}

	ch := make(chan *models.Comment)
	go func() {
		defer close(ch)
		defer listener.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(90 * time.Second):
				// Проверяем соединение каждые 90 секунд
				if err := listener.Ping(); err != nil {
					log.Println("Postgres Listener ping error:", err)
					return
				}
			case notification := <-listener.Notify:
				if notification == nil {
					continue
				}
				// "postID|commentID"
				notifPostID, commentID, ok := strings.Cut(notification.Extra, "|")
				if !ok || notifPostID != postID {
					continue
				}
				comments, err := s.GetComments(ctx, []string{commentID})
				if err != nil || len(comments) == 0 {
					log.Printf("Could not load notified comment %s: %v", commentID, err)
					continue
				}
				select {
				case ch <- &comments[0]:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func (s *PostgresStorage) Close(context.Context) error {
	return s.DB.Close()
}

func orderComments(ids []string, byID map[string]models.Comment) []models.Comment {
	result := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			result = append(result, c)
		}
	}
	return result
}
