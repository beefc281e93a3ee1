package domain

// Tag is a per-user label attachable to notes. Names are unique per owning
// user (case-sensitive exact match); two users may own identically named tags.
type Tag struct {
	Timestamps
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// TagNameMaxLen is the maximum tag name length.
const TagNameMaxLen = 50
