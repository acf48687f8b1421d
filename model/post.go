package model

import "time"

// PostType is the content kind stored in the posts table.
type PostType string

const (
	TypeBlog  PostType = "blog"
	TypeVlog  PostType = "vlog"
	TypeStory PostType = "story"
)

// Valid reports whether t is one of the known post types.
func (t PostType) Valid() bool {
	switch t {
	case TypeBlog, TypeVlog, TypeStory:
		return true
	}
	return false
}

// Post represents a row from the posts table.
type Post struct {
	ID          string     `json:"id"`
	Type        PostType   `json:"type"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	MediaURL    string     `json:"media_url,omitempty"`
	Author      string     `json:"author,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Slug        string     `json:"slug,omitempty"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// InsertPost holds the fields for a new post.
type InsertPost struct {
	Type      PostType
	Title     string
	Content   string
	MediaURL  string
	Author    string
	Tags      []string
	Slug      string
	Published bool
	// CreatedAt overrides the insert time when non-zero. The submission
	// flow sets it to the moment the conversation started.
	CreatedAt time.Time
}

// UpdatePost is a partial update; nil fields are left untouched.
type UpdatePost struct {
	Type     *PostType `json:"type,omitempty"`
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	MediaURL *string   `json:"media_url,omitempty"`
	Author   *string   `json:"author,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
}

// PostFilter narrows a posts listing.
type PostFilter struct {
	Type      PostType
	Published *bool
}
