package models

import "time"

// Post is a top-level forum submission.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Subreddit  string    `json:"subreddit"`
	CommentIDs []string  `json:"comments"` // newest first
	CreatedAt  time.Time `json:"createdAt"`
}

// PostInput holds the client-submitted fields of a new post.
type PostInput struct {
	Title     string `form:"title" json:"title" binding:"required,max=300"`
	Body      string `form:"body" json:"body" binding:"max=40000"`
	Subreddit string `form:"subreddit" json:"subreddit" binding:"required,subreddit"`
}

// Post builds an unsaved post from the input.
func (in PostInput) Post() Post {
	return Post{
		Title:     in.Title,
		Body:      in.Body,
		Subreddit: in.Subreddit,
	}
}

// PostWithComments is a post whose comment references have been resolved.
type PostWithComments struct {
	Post
	Comments []Comment
}
