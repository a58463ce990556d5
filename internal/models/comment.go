package models

import "time"

// Comment is a reply attached to exactly one post. It is stored on its own
// and referenced by id from Post.CommentIDs.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"` // ID поста, к которому прикреплён комментарий
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentInput holds the client-submitted fields of a new comment.
type CommentInput struct {
	Body   string `form:"body" json:"body" binding:"required,max=10000"`
	Author string `form:"author" json:"author" binding:"max=64"`
}

// Comment builds an unsaved comment for the given post.
func (in CommentInput) Comment(postID string) Comment {
	return Comment{
		PostID: postID,
		Body:   in.Body,
		Author: in.Author,
	}
}
