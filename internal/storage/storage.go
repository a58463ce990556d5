package storage

import (
	"context"
	"errors"

	"github.com/MosinFAM/reddit-forum/internal/models"
)

// ErrPostNotFound is returned when a post id is unknown or malformed.
var ErrPostNotFound = errors.New("post not found")

// Storage - интерфейс для всех типов хранилищ (in-memory, MongoDB и PostgreSQL)
type Storage interface {
	AddPost(ctx context.Context, post models.Post) (models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsBySubreddit(ctx context.Context, subreddit string) ([]models.Post, error)
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	// GetComments returns the comments in the order of ids. Unknown ids are skipped.
	GetComments(ctx context.Context, ids []string) ([]models.Comment, error)
	// AddComment saves the comment and prepends its id to the post's comment
	// list as one unit: either both happen or neither does.
	AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Comment, error)
	// SubscribeToComments streams comments added to postID until ctx is done.
	SubscribeToComments(ctx context.Context, postID string) (<-chan *models.Comment, error)
	Close(ctx context.Context) error
}
