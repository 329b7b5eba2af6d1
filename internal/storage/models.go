package storage

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusArchived  PostStatus = "archived"
)

// Valid reports whether s is a known status.
func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Post is a blog post.
type Post struct {
	ID              string // UUID
	Title           string
	Slug            string // unique, used in /blog/<slug>
	Content         string // markdown source
	MetaDescription string
	OGImageURL      string
	Status          PostStatus
	Tags            []string
	ViewCount       int64
	SourcePath      string // content file the post was imported from, if any
	ContentHash     string // SHA256 hex of the imported file
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PublishedAt     *time.Time
}

// Profile is the site author.
type Profile struct {
	ID          string
	Name        string
	Description string
	AvatarURL   string
	CreatedAt   time.Time
}

// PostOrder selects the sort order of List.
type PostOrder string

const (
	OrderPublished PostOrder = "published" // newest published first
	OrderViews     PostOrder = "views"     // most viewed first
	OrderUpdated   PostOrder = "updated"   // most recently edited first
	OrderCreated   PostOrder = "created"   // most recently created first
)

// ListOptions filters and pages List results. Zero values mean no filter.
type ListOptions struct {
	Status  PostStatus
	Tag     string
	OrderBy PostOrder
	Limit   int
	Offset  int
}

// StatusCounts holds the number of posts per status.
type StatusCounts struct {
	Draft     int
	Published int
	Archived  int
}
