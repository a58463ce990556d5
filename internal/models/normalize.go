package models

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// clean trims surrounding whitespace and converts to NFC so that visually
// identical subreddit names compare equal.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Normalize cleans every field in place.
func (in *PostInput) Normalize() {
	in.Title = clean(in.Title)
	in.Body = clean(in.Body)
	in.Subreddit = clean(in.Subreddit)
}

// Normalize cleans every field in place.
func (in *CommentInput) Normalize() {
	in.Body = clean(in.Body)
	in.Author = clean(in.Author)
}
