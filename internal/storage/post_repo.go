package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_post_store.go -package=mocks devfolio/internal/storage PostStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PostStore defines the interface for post storage operations.
type PostStore interface {
	Create(ctx context.Context, post *Post) error
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	GetBySourcePath(ctx context.Context, sourcePath string) (*Post, error)
	List(ctx context.Context, opts ListOptions) ([]Post, error)
	Tags(ctx context.Context) ([]string, error)
	Adjacent(ctx context.Context, slug string, publishedAt time.Time) (prev, next *Post, err error)
	CountByStatus(ctx context.Context) (StatusCounts, error)
	PublishedSlugs(ctx context.Context) ([]string, error)
	SetViewCount(ctx context.Context, slug string, count int64) error
	SetStatus(ctx context.Context, id string, status PostStatus) error
}

const postColumns = `id, title, slug, content, meta_description, og_image_url, status, tags,
	view_count, source_path, content_hash, created_at, updated_at, published_at`

// PostRepo provides methods for post operations.
// It implements the PostStore interface.
type PostRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostRepo creates a new PostRepo.
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db, now: time.Now}
}

// Create inserts a new post. A missing ID is generated, timestamps are set,
// and a published post without PublishedAt is stamped with the current time.
// Returns ErrSlugTaken if the slug is in use.
func (r *PostRepo) Create(ctx context.Context, post *Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.Status == "" {
		post.Status = StatusDraft
	}
	now := r.now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Status == StatusPublished && post.PublishedAt == nil {
		post.PublishedAt = &now
	}

	tags, err := encodeTags(post.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO posts (`+postColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Title, post.Slug, post.Content, post.MetaDescription, post.OGImageURL,
		string(post.Status), tags, post.ViewCount, nullString(post.SourcePath), post.ContentHash,
		formatTime(post.CreatedAt), formatTime(post.UpdatedAt), nullTime(post.PublishedAt),
	)
	if isUniqueViolation(err, "posts.slug") {
		return ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// Update overwrites the editable fields of an existing post and refreshes
// updated_at. View count and created_at are left untouched.
func (r *PostRepo) Update(ctx context.Context, post *Post) error {
	if post.Status == StatusPublished && post.PublishedAt == nil {
		now := r.now().UTC()
		post.PublishedAt = &now
	}
	post.UpdatedAt = r.now().UTC()

	tags, err := encodeTags(post.Tags)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, slug = ?, content = ?, meta_description = ?, og_image_url = ?,
		 status = ?, tags = ?, source_path = ?, content_hash = ?, updated_at = ?, published_at = ?
		 WHERE id = ?`,
		post.Title, post.Slug, post.Content, post.MetaDescription, post.OGImageURL,
		string(post.Status), tags, nullString(post.SourcePath), post.ContentHash,
		formatTime(post.UpdatedAt), nullTime(post.PublishedAt), post.ID,
	)
	if isUniqueViolation(err, "posts.slug") {
		return ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return requireAffected(result)
}

// Delete removes a post by ID.
func (r *PostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return requireAffected(result)
}

// GetByID gets a post by ID. Returns ErrNotFound if it does not exist.
func (r *PostRepo) GetByID(ctx context.Context, id string) (*Post, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetBySlug gets a post by slug regardless of status.
func (r *PostRepo) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

// GetBySourcePath gets the post imported from the given content file.
func (r *PostRepo) GetBySourcePath(ctx context.Context, sourcePath string) (*Post, error) {
	return r.getOne(ctx, "source_path = ?", sourcePath)
}

func (r *PostRepo) getOne(ctx context.Context, where string, arg any) (*Post, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE "+where, arg)
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query post: %w", err)
	}
	return post, nil
}

// List returns posts matching opts.
func (r *PostRepo) List(ctx context.Context, opts ListOptions) ([]Post, error) {
	var (
		where []string
		args  []any
	)
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}
	if opts.Tag != "" {
		where = append(where, "EXISTS (SELECT 1 FROM json_each(posts.tags) WHERE json_each.value = ?)")
		args = append(args, opts.Tag)
	}

	query := "SELECT " + postColumns + " FROM posts"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	switch opts.OrderBy {
	case OrderViews:
		query += " ORDER BY view_count DESC, COALESCE(published_at, created_at) DESC"
	case OrderUpdated:
		query += " ORDER BY updated_at DESC"
	case OrderCreated:
		query += " ORDER BY created_at DESC"
	default:
		query += " ORDER BY COALESCE(published_at, created_at) DESC"
	}

	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	} else if opts.Offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

// Tags returns the distinct tags of published posts in the order they first
// appear, newest post first.
func (r *PostRepo) Tags(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT tags FROM posts WHERE status = ? ORDER BY published_at DESC",
		string(StatusPublished),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	seen := map[string]bool{}
	tags := []string{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan tags: %w", err)
		}
		postTags, err := decodeTags(raw)
		if err != nil {
			return nil, err
		}
		for _, tag := range postTags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags, rows.Err()
}

// Adjacent returns the published posts immediately older (prev) and newer
// (next) than the post with the given slug and publication time. Either may
// be nil.
func (r *PostRepo) Adjacent(ctx context.Context, slug string, publishedAt time.Time) (*Post, *Post, error) {
	at := formatTime(publishedAt)
	prev, err := r.firstPost(ctx,
		"status = ? AND slug <> ? AND published_at < ? ORDER BY published_at DESC LIMIT 1",
		string(StatusPublished), slug, at)
	if err != nil {
		return nil, nil, err
	}
	next, err := r.firstPost(ctx,
		"status = ? AND slug <> ? AND published_at > ? ORDER BY published_at ASC LIMIT 1",
		string(StatusPublished), slug, at)
	if err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

func (r *PostRepo) firstPost(ctx context.Context, clause string, args ...any) (*Post, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE "+clause, args...)
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query adjacent post: %w", err)
	}
	return post, nil
}

// CountByStatus returns the number of posts in each status.
func (r *PostRepo) CountByStatus(ctx context.Context) (StatusCounts, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM posts GROUP BY status")
	if err != nil {
		return StatusCounts{}, fmt.Errorf("failed to count posts: %w", err)
	}
	defer rows.Close()

	var counts StatusCounts
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return StatusCounts{}, fmt.Errorf("failed to scan count: %w", err)
		}
		switch PostStatus(status) {
		case StatusDraft:
			counts.Draft = n
		case StatusPublished:
			counts.Published = n
		case StatusArchived:
			counts.Archived = n
		}
	}
	return counts, rows.Err()
}

// PublishedSlugs returns the slugs of all published posts.
func (r *PostRepo) PublishedSlugs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT slug FROM posts WHERE status = ? ORDER BY published_at DESC",
		string(StatusPublished),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query slugs: %w", err)
	}
	defer rows.Close()

	slugs := []string{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("failed to scan slug: %w", err)
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// SetViewCount stores the page view total of the post with the given slug.
func (r *PostRepo) SetViewCount(ctx context.Context, slug string, count int64) error {
	result, err := r.db.ExecContext(ctx, "UPDATE posts SET view_count = ? WHERE slug = ?", count, slug)
	if err != nil {
		return fmt.Errorf("failed to update view count: %w", err)
	}
	return requireAffected(result)
}

// SetStatus changes the status of a post. The first transition to published
// stamps published_at; later transitions keep it.
func (r *PostRepo) SetStatus(ctx context.Context, id string, status PostStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid post status %q", status)
	}
	now := formatTime(r.now())

	var publishedAt any
	if status == StatusPublished {
		publishedAt = now
	}
	result, err := r.db.ExecContext(ctx,
		"UPDATE posts SET status = ?, updated_at = ?, published_at = COALESCE(published_at, ?) WHERE id = ?",
		string(status), now, publishedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update post status: %w", err)
	}
	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var (
		post        Post
		status      string
		tags        string
		sourcePath  sql.NullString
		createdAt   string
		updatedAt   string
		publishedAt sql.NullString
	)
	err := row.Scan(&post.ID, &post.Title, &post.Slug, &post.Content, &post.MetaDescription,
		&post.OGImageURL, &status, &tags, &post.ViewCount, &sourcePath, &post.ContentHash,
		&createdAt, &updatedAt, &publishedAt)
	if err != nil {
		return nil, err
	}

	post.Status = PostStatus(status)
	post.SourcePath = sourcePath.String
	if post.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	if post.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	if post.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}
	if publishedAt.Valid {
		t, err := parseTime(publishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse published_at timestamp: %w", err)
		}
		post.PublishedAt = &t
	}
	return &post, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return tags, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
