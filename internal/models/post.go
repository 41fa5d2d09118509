package models

import "time"

// Post represents a content unit in the feed. Username and UserAvatar are
// snapshots taken at creation time and are not re-synced if the owning
// account later changes.
type Post struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	UserAvatar string    `json:"userAvatar"`
	ImageURL   string    `json:"imageUrl"`
	Caption    string    `json:"caption"`
	Likes      int       `json:"likes"`
	// LikedByMe is viewer-local state kept inline on the shared record.
	// Valid only under the single-viewer-per-store assumption.
	LikedByMe bool      `json:"likedByMe"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	Location  string    `json:"location,omitempty"`
	// AIVibe is a short model-assigned tag describing the post's mood.
	AIVibe string `json:"aiVibe,omitempty"`
}
