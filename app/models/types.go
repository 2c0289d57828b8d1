package models

import "time"

// Post is a single published update. Posts are immutable once created:
// the server assigns ID and CreatedAt and nothing is ever rewritten.
type Post struct {
	ID        string    `json:"id" validate:"-"`
	AuthorID  string    `json:"authorId" validate:"required"`
	Content   string    `json:"content" validate:"required,max=255,emoji"`
	CreatedAt time.Time `json:"createdAt" validate:"-"`
}

// Author is the display projection of an identity-directory user.
// Only the fields the feed needs are kept.
type Author struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// FeedEntry joins a post with its author's display metadata. It is
// assembled on every feed read and never persisted.
type FeedEntry struct {
	Post   Post   `json:"post"`
	Author Author `json:"author"`
}
