package domain

// AccessType controls who can see a note through the feeds.
type AccessType string

const (
	// AccessPublic makes the note visible to everyone in the public feed.
	AccessPublic AccessType = "public"
	// AccessSubscribers restricts the note to users following its author.
	AccessSubscribers AccessType = "subscribers"
	// AccessPrivate keeps the note visible only to its author.
	AccessPrivate AccessType = "private"
)

// IsValid reports whether the value is one of the three known scopes.
func (a AccessType) IsValid() bool {
	switch a {
	case AccessPublic, AccessSubscribers, AccessPrivate:
		return true
	}
	return false
}

// Note is a piece of content authored by a user, placed in exactly one of
// the author's domains, carrying zero or more of the author's tags.
type Note struct {
	Timestamps
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	DomainID   string     `json:"domain_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	AccessType AccessType `json:"access_type"`

	// AuthorUsername and TagIDs are denormalized on read via explicit joins.
	// They are never written back.
	AuthorUsername string   `json:"author_username,omitempty"`
	TagIDs         []string `json:"tag_ids"`
}

// NoteTitleMaxLen is the maximum note title length.
const NoteTitleMaxLen = 255
