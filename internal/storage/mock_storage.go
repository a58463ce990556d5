package storage

import (
	"context"

	"github.com/MosinFAM/reddit-forum/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) AddPost(ctx context.Context, post models.Post) (models.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(models.Post), args.Error(1)
}

func (m *MockStorage) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockStorage) GetPostsBySubreddit(ctx context.Context, subreddit string) ([]models.Post, error) {
	args := m.Called(ctx, subreddit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockStorage) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockStorage) GetComments(ctx context.Context, ids []string) ([]models.Comment, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockStorage) AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Comment, error) {
	args := m.Called(ctx, postID, comment)
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockStorage) SubscribeToComments(ctx context.Context, postID string) (<-chan *models.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(chan *models.Comment), args.Error(1)
}

func (m *MockStorage) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
