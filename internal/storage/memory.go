package storage

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/MosinFAM/reddit-forum/internal/models"

	"github.com/google/uuid"
)

// MemoryStorage - хранилище в памяти
type MemoryStorage struct {
	posts    map[string]models.Post
	order    []string // post ids in creation order
	comments map[string]models.Comment
	hub      *commentHub
	mu       sync.RWMutex
}

// NewMemoryStorage создает новое in-memory хранилище
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		posts:    make(map[string]models.Post),
		comments: make(map[string]models.Comment),
		hub:      newCommentHub(),
	}
}

// AddPost добавляет новый пост
func (s *MemoryStorage) AddPost(_ context.Context, post models.Post) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = uuid.New().String()
	post.CommentIDs = []string{}
	post.CreatedAt = time.Now()
	log.Printf("Adding new post: %+v", post)
	s.posts[post.ID] = post
	s.order = append(s.order, post.ID)
	return clonePost(post), nil
}

// GetAllPosts возвращает все посты
func (s *MemoryStorage) GetAllPosts(_ context.Context) ([]models.Post, error) {
	return s.filterPosts(func(models.Post) bool { return true }), nil
}

// GetPostsBySubreddit возвращает посты одного сабреддита
func (s *MemoryStorage) GetPostsBySubreddit(_ context.Context, subreddit string) ([]models.Post, error) {
	return s.filterPosts(func(p models.Post) bool { return p.Subreddit == subreddit }), nil
}

func (s *MemoryStorage) filterPosts(keep func(models.Post) bool) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Post{}
	for _, id := range s.order {
		if post := s.posts[id]; keep(post) {
			result = append(result, clonePost(post))
		}
	}
	return result
}

// GetPostByID возвращает пост по ID
func (s *MemoryStorage) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log.Printf("Fetching post with ID: %s", id)
	post, exists := s.posts[id]
	if !exists {
		return nil, ErrPostNotFound
	}
	post = clonePost(post)
	return &post, nil
}

// GetComments возвращает комментарии в порядке ids
func (s *MemoryStorage) GetComments(_ context.Context, ids []string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		if comment, ok := s.comments[id]; ok {
			result = append(result, comment)
		}
	}
	return result, nil
}

// AddComment сохраняет комментарий и добавляет его в начало списка поста
func (s *MemoryStorage) AddComment(_ context.Context, postID string, comment models.Comment) (*models.Comment, error) {
	s.mu.Lock()

	log.Printf("Adding comment to post %s", postID)
	post, exists := s.posts[postID]
	if !exists {
		s.mu.Unlock()
		return nil, ErrPostNotFound
	}

	comment.ID = uuid.New().String()
	comment.PostID = postID
	comment.CreatedAt = time.Now()
	s.comments[comment.ID] = comment

	ids := make([]string, 0, len(post.CommentIDs)+1)
	post.CommentIDs = append(append(ids, comment.ID), post.CommentIDs...)
	s.posts[postID] = post
	s.mu.Unlock()

	s.hub.publish(comment)
	log.Printf("Comment added: %+v", comment)
	return &comment, nil
}

// SubscribeToComments подписка на комментарии для поста
func (s *MemoryStorage) SubscribeToComments(ctx context.Context, postID string) (<-chan *models.Comment, error) {
	if _, err := s.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.hub.subscribe(ctx, postID), nil
}

func (s *MemoryStorage) Close(context.Context) error { return nil }

func clonePost(p models.Post) models.Post {
	p.CommentIDs = append([]string{}, p.CommentIDs...)
	return p
}
