package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"devfolio/internal/contextutil"
	"devfolio/internal/service"
	"devfolio/internal/storage"
)

// Pipeline imports markdown files from a content directory into the post
// store. Files are matched to posts by their path relative to the root, so
// re-running an import updates posts in place.
type Pipeline struct {
	scanner *Scanner
	posts   storage.PostStore
}

// NewPipeline creates a new import pipeline.
func NewPipeline(scanner *Scanner, posts storage.PostStore) *Pipeline {
	return &Pipeline{
		scanner: scanner,
		posts:   posts,
	}
}

// Outcome of importing one file.
type Outcome int

const (
	Unchanged Outcome = iota
	Created
	Updated
)

// ImportFile imports one scanned file. Files whose content hash matches the
// stored post are skipped.
func (p *Pipeline) ImportFile(ctx context.Context, file ScannedFile) (Outcome, error) {
	logger := contextutil.LoggerFromContext(ctx)

	data, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return Unchanged, fmt.Errorf("failed to read file %s: %w", file.AbsPath, err)
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	existing, err := p.posts.GetBySourcePath(ctx, file.RelPath)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return Unchanged, fmt.Errorf("failed to check existing post: %w", err)
	}
	if existing != nil && existing.ContentHash == hash {
		logger.DebugContext(ctx, "skipping unchanged file", "rel_path", file.RelPath, "hash", hash)
		return Unchanged, nil
	}

	post, err := buildPost(data, file.RelPath)
	if err != nil {
		return Unchanged, err
	}
	post.ContentHash = hash

	if existing == nil {
		if err := p.posts.Create(ctx, post); err != nil {
			return Unchanged, fmt.Errorf("failed to create post %q: %w", post.Slug, err)
		}
		logger.InfoContext(ctx, "imported post", "rel_path", file.RelPath, "slug", post.Slug, "status", post.Status)
		return Created, nil
	}

	post.ID = existing.ID
	if post.PublishedAt == nil {
		post.PublishedAt = existing.PublishedAt
	}
	if err := p.posts.Update(ctx, post); err != nil {
		return Unchanged, fmt.Errorf("failed to update post %q: %w", post.Slug, err)
	}
	logger.InfoContext(ctx, "updated post", "rel_path", file.RelPath, "slug", post.Slug, "status", post.Status)
	return Updated, nil
}

// buildPost turns a post file into a post. Front matter status defaults to
// published; the slug defaults to one derived from the title.
func buildPost(data []byte, relPath string) (*storage.Post, error) {
	fm, body, err := SplitFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}

	title := resolveTitle(fm, body, relPath)
	slug := strings.TrimSpace(fm.Slug)
	if slug == "" {
		slug = service.PostSlug(title)
	}
	if slug == "" {
		slug = service.PostSlug(strings.TrimSuffix(path.Base(relPath), path.Ext(relPath)))
	}
	if !service.ValidSlug(slug) {
		return nil, fmt.Errorf("%s: invalid slug %q", relPath, slug)
	}

	status := storage.PostStatus(strings.ToLower(strings.TrimSpace(fm.Status)))
	if status == "" {
		status = storage.StatusPublished
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%s: unknown status %q", relPath, fm.Status)
	}

	post := &storage.Post{
		Title:           title,
		Slug:            slug,
		Content:         body,
		MetaDescription: strings.TrimSpace(fm.Description),
		OGImageURL:      strings.TrimSpace(fm.OGImage),
		Status:          status,
		Tags:            cleanTags(fm.Tags),
		SourcePath:      relPath,
	}
	if !fm.PublishedAt.IsZero() {
		publishedAt := fm.PublishedAt.UTC()
		post.PublishedAt = &publishedAt
	}
	return post, nil
}

func cleanTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// ImportAll scans the content directory and imports every markdown file.
// Errors for individual files are logged and counted but don't stop the run.
func (p *Pipeline) ImportAll(ctx context.Context) (Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()

	files, err := p.scanner.Scan(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to scan content: %w", err)
	}

	stats := Stats{Scanned: len(files)}
	logger.InfoContext(ctx, "starting import", "root", p.scanner.Root(), "total_files", len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		outcome, err := p.ImportFile(ctx, file)
		if err != nil {
			stats.Failed++
			logger.ErrorContext(ctx, "failed to import file", "rel_path", file.RelPath, "error", err)
			continue
		}
		switch outcome {
		case Created:
			stats.Created++
		case Updated:
			stats.Updated++
		default:
			stats.Unchanged++
		}
	}

	logger.InfoContext(ctx, "import completed", "stats", stats.String(), "duration", time.Since(start))
	if stats.Failed > 0 {
		return stats, fmt.Errorf("import completed with %d errors", stats.Failed)
	}
	return stats, nil
}
