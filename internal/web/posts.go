package web

import (
	"net/http"

	"github.com/MosinFAM/reddit-forum/internal/models"

	"github.com/gin-gonic/gin"
)

// NewPost renders the empty post form.
func (h *Handler) NewPost(c *gin.Context) {
	c.HTML(http.StatusOK, "posts-new", gin.H{
		"Title":  "New post",
		"Form":   models.PostInput{},
		"Errors": ValidationErrors{},
	})
}

// CreatePost saves a submitted post and redirects to the front page.
func (h *Handler) CreatePost(c *gin.Context) {
	var in models.PostInput
	if errs := bindInput(c, &in); errs != nil {
		c.HTML(http.StatusBadRequest, "posts-new", gin.H{
			"Title":  "New post",
			"Form":   in,
			"Errors": errs,
		})
		return
	}

	ctx, cancel := h.storageContext(c)
	defer cancel()

	if _, err := h.Storage.AddPost(ctx, in.Post()); err != nil {
		storageError(c, "CreatePost", err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// ListPosts renders every post.
func (h *Handler) ListPosts(c *gin.Context) {
	ctx, cancel := h.storageContext(c)
	defer cancel()

	posts, err := h.Storage.GetAllPosts(ctx)
	if err != nil {
		storageError(c, "ListPosts", err)
		return
	}
	c.HTML(http.StatusOK, "posts-index", gin.H{"Title": "All posts", "Posts": posts})
}

// ListSubreddit renders the posts whose subreddit equals :subreddit.
func (h *Handler) ListSubreddit(c *gin.Context) {
	name := c.Param("subreddit")

	ctx, cancel := h.storageContext(c)
	defer cancel()

	posts, err := h.Storage.GetPostsBySubreddit(ctx, name)
	if err != nil {
		storageError(c, "ListSubreddit", err)
		return
	}
	c.HTML(http.StatusOK, "posts-index", gin.H{
		"Title":     "n/" + name,
		"Subreddit": name,
		"Posts":     posts,
	})
}

// ShowPost renders one post with its comments, newest first.
func (h *Handler) ShowPost(c *gin.Context) {
	h.renderPost(c, http.StatusOK, nil, models.CommentInput{})
}

func (h *Handler) renderPost(c *gin.Context, status int, errs ValidationErrors, form models.CommentInput) {
	if errs == nil {
		errs = ValidationErrors{}
	}
	ctx, cancel := h.storageContext(c)
	defer cancel()

	post, err := h.loadPost(ctx, c.Param("id"))
	if err != nil {
		storageError(c, "ShowPost", err)
		return
	}
	c.HTML(status, "posts-show", gin.H{
		"Title":  post.Title,
		"Post":   post,
		"Form":   form,
		"Errors": errs,
	})
}
