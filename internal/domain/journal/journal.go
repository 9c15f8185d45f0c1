// Package journal defines the private journal entries users keep.
package journal

import "time"

// Journal is one entry, owned by exactly one user.
type Journal struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Deleted   bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Default and maximum page sizes of the list query.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ListFilter scopes the list query to one owner.
type ListFilter struct {
	UserID int64
	Limit  int
}
