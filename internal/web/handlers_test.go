package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MosinFAM/reddit-forum/internal/models"
	"github.com/MosinFAM/reddit-forum/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, store storage.Storage) *gin.Engine {
	t.Helper()
	router, err := NewRouter(NewHandler(store, time.Second), false)
	require.NoError(t, err)
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePost_ListAndFilter(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	w := postForm(router, "/posts/new", url.Values{
		"title":     {"Hi"},
		"body":      {"World"},
		"subreddit": {"test"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = get(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ">Hi</a>")

	w = get(router, "/n/test")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ">Hi</a>")

	w = get(router, "/n/other")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), ">Hi</a>")
}

func TestListSubreddit_OnlyMatching(t *testing.T) {
	store := storage.NewMemoryStorage()
	router := newTestRouter(t, store)

	_, err := store.AddPost(testContext(t), models.Post{Title: "Post A", Subreddit: "x"})
	require.NoError(t, err)
	_, err = store.AddPost(testContext(t), models.Post{Title: "Post B", Subreddit: "y"})
	require.NoError(t, err)

	body := get(router, "/n/x").Body.String()
	assert.Contains(t, body, "Post A")
	assert.NotContains(t, body, "Post B")
}

func TestCreatePost_JSON(t *testing.T) {
	store := storage.NewMemoryStorage()
	router := newTestRouter(t, store)

	req := httptest.NewRequest(http.MethodPost, "/posts/new",
		strings.NewReader(`{"title":"From JSON","body":"b","subreddit":"golang"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	posts, err := store.GetPostsBySubreddit(testContext(t), "golang")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "From JSON", posts[0].Title)
}

func TestCreatePost_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"missing title", url.Values{"subreddit": {"test"}}, "is required"},
		{"blank title", url.Values{"title": {"   "}, "subreddit": {"test"}}, "is required"},
		{"bad subreddit", url.Values{"title": {"Hi"}, "subreddit": {"no spaces"}}, "may contain only letters"},
		{"long title", url.Values{"title": {strings.Repeat("a", 301)}, "subreddit": {"test"}}, "at most 300 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStorage()
			router := newTestRouter(t, store)

			w := postForm(router, "/posts/new", tt.form)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			posts, err := store.GetAllPosts(testContext(t))
			require.NoError(t, err)
			assert.Empty(t, posts)
		})
	}
}

func TestNewPostForm(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	w := get(router, "/posts/new")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<form action="/posts/new" method="post">`)
}

func TestShowPost_WithCommentsNewestFirst(t *testing.T) {
	store := storage.NewMemoryStorage()
	router := newTestRouter(t, store)

	post, err := store.AddPost(testContext(t), models.Post{Title: "Discuss", Body: "Body text", Subreddit: "go"})
	require.NoError(t, err)

	for _, body := range []string{"first comment", "second comment"} {
		w := postForm(router, "/posts/"+post.ID+"/comments", url.Values{"body": {body}, "author": {"ann"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	}

	w := get(router, "/posts/"+post.ID)
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, "Body text")
	first := strings.Index(page, "first comment")
	second := strings.Index(page, "second comment")
	require.True(t, first > 0 && second > 0)
	assert.Less(t, second, first)
}

func TestShowPost_NotFound(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	w := get(router, "/posts/nonexistent-id")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found")
}

func TestCreateComment_UnknownPost(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	w := postForm(router, "/posts/nonexistent-id/comments", url.Values{"body": {"hello"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateComment_Invalid(t *testing.T) {
	store := storage.NewMemoryStorage()
	router := newTestRouter(t, store)

	post, err := store.AddPost(testContext(t), models.Post{Title: "Discuss", Subreddit: "go"})
	require.NoError(t, err)

	w := postForm(router, "/posts/"+post.ID+"/comments", url.Values{"author": {"ann"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "is required")
	assert.Contains(t, w.Body.String(), `value="ann"`)

	fetched, err := store.GetPostByID(testContext(t), post.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.CommentIDs)
}

func TestOutputIsEscaped(t *testing.T) {
	store := storage.NewMemoryStorage()
	router := newTestRouter(t, store)

	_, err := store.AddPost(testContext(t), models.Post{Title: "<script>alert(1)</script>", Subreddit: "go"})
	require.NoError(t, err)

	body := get(router, "/").Body.String()
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	w := get(router, "/nope/nope")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, storage.NewMemoryStorage())

	w := get(router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
