package web

import (
	"context"
	"net/http"

	"github.com/MosinFAM/reddit-forum/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateComment attaches a submitted comment to :id and redirects to the front page.
func (h *Handler) CreateComment(c *gin.Context) {
	var in models.CommentInput
	if errs := bindInput(c, &in); errs != nil {
		h.renderPost(c, http.StatusBadRequest, errs, in)
		return
	}

	ctx, cancel := h.storageContext(c)
	defer cancel()

	if _, err := h.Storage.AddComment(ctx, c.Param("id"), in.Comment(c.Param("id"))); err != nil {
		storageError(c, "CreateComment", err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// loadPost fetches a post and resolves its comment references.
func (h *Handler) loadPost(ctx context.Context, id string) (*models.PostWithComments, error) {
	post, err := h.Storage.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := h.Storage.GetComments(ctx, post.CommentIDs)
	if err != nil {
		return nil, err
	}
	return &models.PostWithComments{Post: *post, Comments: comments}, nil
}
