package models

import "time"

// Comment represents a comment on a post. Comments are append-only: they are
// never edited or deleted once attached to a post.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
