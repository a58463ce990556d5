package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostInput_Normalize(t *testing.T) {
	in := PostInput{
		Title:     "  Hi\n",
		Body:      "World ",
		Subreddit: "cafe\u0301",
	}
	in.Normalize()

	assert.Equal(t, "Hi", in.Title)
	assert.Equal(t, "World", in.Body)
	assert.Equal(t, "caf\u00e9", in.Subreddit)
}

func TestCommentInput_Comment(t *testing.T) {
	in := CommentInput{Body: " nice post ", Author: " ann"}
	in.Normalize()

	c := in.Comment("42")
	assert.Equal(t, Comment{PostID: "42", Body: "nice post", Author: "ann"}, c)
}
