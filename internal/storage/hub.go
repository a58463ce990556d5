package storage

import (
	"context"
	"log"
	"sync"

	"github.com/MosinFAM/reddit-forum/internal/models"
)

// commentHub fans new comments out to in-process subscribers.
type commentHub struct {
	mu            sync.Mutex
	subscriptions map[string][]chan *models.Comment
}

func newCommentHub() *commentHub {
	return &commentHub{subscriptions: make(map[string][]chan *models.Comment)}
}

func (h *commentHub) subscribe(ctx context.Context, postID string) <-chan *models.Comment {
	ch := make(chan *models.Comment, 8)

	h.mu.Lock()
	h.subscriptions[postID] = append(h.subscriptions[postID], ch)
	h.mu.Unlock()
	log.Printf("Subscribed to comments for post %s", postID)

	// Отписка при завершении контекста
	go func() {
		<-ctx.Done()
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.subscriptions[postID]
		for i, sub := range subs {
			if sub == ch {
				h.subscriptions[postID] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(h.subscriptions[postID]) == 0 {
			delete(h.subscriptions, postID)
		}
		close(ch)
	}()

	return ch
}

// publish never blocks: a subscriber whose buffer is full misses the comment.
func (h *commentHub) publish(comment models.Comment) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscriptions[comment.PostID] {
		c := comment
		select {
		case ch <- &c:
		default:
			log.Printf("Subscriber for post %s is too slow, dropping comment %s", comment.PostID, comment.ID)
		}
	}
}
