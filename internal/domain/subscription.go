package domain

import "time"

// Subscription is a directed follower edge: the subscriber receives the
// author's subscriber-scoped notes. Unique per ordered pair, no self-edges.
type Subscription struct {
	SubscriberID string    `json:"subscriber_id"`
	AuthorID     string    `json:"author_id"`
	CreatedAt    time.Time `json:"created_at"`
}
