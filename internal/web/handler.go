package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/MosinFAM/reddit-forum/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler serves the forum pages on top of a Storage.
type Handler struct {
	Storage storage.Storage
	Timeout time.Duration // per-request bound on storage calls
}

func NewHandler(store storage.Storage, timeout time.Duration) *Handler {
	return &Handler{Storage: store, Timeout: timeout}
}

func (h *Handler) storageContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.Timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.Timeout)
}

// renderError renders the error page with the given status.
func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error", gin.H{
		"Title":      http.StatusText(status),
		"StatusCode": status,
		"Error":      message,
	})
}

// storageError maps a storage failure to 404 or 500.
func storageError(c *gin.Context, op string, err error) {
	if errors.Is(err, storage.ErrPostNotFound) {
		renderError(c, http.StatusNotFound, "Post not found")
		return
	}
	log.Printf("%s error: %v", op, err)
	renderError(c, http.StatusInternalServerError, "Something went wrong, please try again later")
}
