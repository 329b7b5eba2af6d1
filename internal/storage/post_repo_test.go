package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPostRepo(t *testing.T) (*PostRepo, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewPostRepo(newTestDB(t))
	repo.now = clock.now
	return repo, clock
}

// createPost inserts a post and advances the clock so later posts are newer.
func createPost(t *testing.T, repo *PostRepo, clock *testClock, post Post) *Post {
	t.Helper()
	if err := repo.Create(context.Background(), &post); err != nil {
		t.Fatalf("Create(%s) error = %v", post.Slug, err)
	}
	clock.advance(time.Hour)
	return &post
}

func slugsOf(posts []Post) []string {
	slugs := []string{}
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

func TestPostRepo_CreateAndGet(t *testing.T) {
	repo, clock := newTestPostRepo(t)
	ctx := context.Background()

	created := createPost(t, repo, clock, Post{
		Title:      "Hello",
		Slug:       "hello",
		Content:    "## Intro\nbody",
		Status:     StatusPublished,
		Tags:       []string{"go", "web"},
		SourcePath: "hello.md",
	})

	if created.ID == "" {
		t.Fatal("Create() did not assign an ID")
	}
	if created.PublishedAt == nil {
		t.Fatal("Create() did not stamp published_at on a published post")
	}

	lookups := map[string]func() (*Post, error){
		"by id":          func() (*Post, error) { return repo.GetByID(ctx, created.ID) },
		"by slug":        func() (*Post, error) { return repo.GetBySlug(ctx, "hello") },
		"by source path": func() (*Post, error) { return repo.GetBySourcePath(ctx, "hello.md") },
	}
	for name, get := range lookups {
		t.Run(name, func(t *testing.T) {
			got, err := get()
			if err != nil {
				t.Fatalf("get error = %v", err)
			}
			if got.ID != created.ID || got.Title != "Hello" || got.Content != "## Intro\nbody" {
				t.Errorf("got %+v, want post %s", got, created.ID)
			}
			if !reflect.DeepEqual(got.Tags, []string{"go", "web"}) {
				t.Errorf("Tags = %v", got.Tags)
			}
			if got.PublishedAt == nil || !got.PublishedAt.Equal(*created.PublishedAt) {
				t.Errorf("PublishedAt = %v, want %v", got.PublishedAt, created.PublishedAt)
			}
		})
	}
}

func TestPostRepo_DraftDefaults(t *testing.T) {
	repo, clock := newTestPostRepo(t)

	post := createPost(t, repo, clock, Post{Title: "Draft", Slug: "draft"})
	got, err := repo.GetByID(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != StatusDraft {
		t.Errorf("Status = %q, want draft", got.Status)
	}
	if got.PublishedAt != nil {
		t.Errorf("PublishedAt = %v, want nil", got.PublishedAt)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty slice", got.Tags)
	}
	if got.SourcePath != "" {
		t.Errorf("SourcePath = %q, want empty", got.SourcePath)
	}
}

func TestPostRepo_SlugTaken(t *testing.T) {
	repo, clock := newTestPostRepo(t)
	ctx := context.Background()

	createPost(t, repo, clock, Post{Title: "One", Slug: "same"})
	other := createPost(t, repo, clock, Post{Title: "Two", Slug: "other"})

	err := repo.Create(ctx, &Post{Title: "Three", Slug: "same"})
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("Create() error = %v, want ErrSlugTaken", err)
	}

	other.Slug = "same"
	if err := repo.Update(ctx, other); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("Update() error = %v, want ErrSlugTaken", err)
	}
}

func TestPostRepo_NotFound(t *testing.T) {
	repo, _ := newTestPostRepo(t)
	ctx := context.Background()

	if _, err := repo.GetBySlug(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBySlug() error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
	if err := repo.Update(ctx, &Post{ID: "missing", Title: "x", Slug: "x", Status: StatusDraft}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if err := repo.SetViewCount(ctx, "missing", 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetViewCount() error = %v, want ErrNotFound", err)
	}
}

func TestPostRepo_UpdateAndDelete(t *testing.T) {
	repo, clock := newTestPostRepo(t)
	ctx := context.Background()

	post := createPost(t, repo, clock, Post{Title: "Old", Slug: "old"})
	post.Title = "New"
	post.Slug = "new"
	post.Tags = []string{"rust"}
	if err := repo.Update(ctx, post); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetBySlug(ctx, "new")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if got.Title != "New" || !reflect.DeepEqual(got.Tags, []string{"rust"}) {
		t.Errorf("Update() did not persist: %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("UpdatedAt %v not after CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}

	if err := repo.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, post.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
}

func TestPostRepo_List(t *testing.T) {
	repo, clock := newTestPostRepo(t)
	ctx := context.Background()

	createPost(t, repo, clock, Post{Title: "A", Slug: "a", Status: StatusPublished, Tags: []string{"go"}})
	createPost(t, repo, clock, Post{Title: "B", Slug: "b", Status: StatusPublished, Tags: []string{"web", "go"}})
	createPost(t, repo, clock, Post{Title: "C", Slug: "c", Status: StatusDraft, Tags: []string{"go"}})
	createPost(t, repo, clock, Post{Title: "D", Slug: "d", Status: StatusPublished, Tags: []string{"web"}})
	if err := repo.SetViewCount(ctx, "a", 50); err != nil {
		t.Fatalf("SetViewCount() error = %v", err)
	}
	if err := repo.SetViewCount(ctx, "d", 10); err != nil {
		t.Fatalf("SetViewCount() error = %v", err)
	}

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{name: "all newest first", opts: ListOptions{}, want: []string{"d", "c", "b", "a"}},
		{name: "published", opts: ListOptions{Status: StatusPublished}, want: []string{"d", "b", "a"}},
		{name: "published with tag", opts: ListOptions{Status: StatusPublished, Tag: "go"}, want: []string{"b", "a"}},
		{name: "unknown tag", opts: ListOptions{Tag: "elixir"}, want: []string{}},
		{name: "by views", opts: ListOptions{Status: StatusPublished, OrderBy: OrderViews}, want: []string{"a", "d", "b"}},
		{name: "limit", opts: ListOptions{Status: StatusPublished, Limit: 2}, want: []string{"d", "b"}},
		{name: "offset", opts: ListOptions{Status: StatusPublished, Limit: 2, Offset: 2}, want: []string{"a"}},
		{name: "offset without limit", opts: ListOptions{Status: StatusPublished, Offset: 1}, want: []string{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.List(ctx, tt.opts)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if got := slugsOf(posts); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPostRepo_Tags(t *testing.T) {
	repo, clock := newTestPostRepo(t)

	createPost(t, repo, clock, Post{Title: "A", Slug: "a", Status: StatusPublished, Tags: []string{"go", "sql"}})
	createPost(t, repo, clock, Post{Title: "B", Slug: "b", Status: StatusDraft, Tags: []string{"draft-only"}})
	createPost(t, repo, clock, Post{Title: "C", Slug: "c", Status: StatusPublished, Tags: []string{"web", "go"}})

	tags, err := repo.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags() error = %v", err)
	}
	want := []string{"web", "go", "sql"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("Tags() = %v, want %v", tags, want)
	}
}

func TestPostRepo_Adjacent(t *testing.T) {
	repo, clock := newTestPostRepo(t)
	ctx := context.Background()

	createPost(t, repo, clock, Post{Title: "A", Slug: "a", Status: StatusPublished})
	createPost(t, repo, clock, Post{Title: "Hidden", Slug: "hidden", Status: StatusDraft})
	middle := createPost(t, repo, clock, Post{Title: "B", Slug: "b", Status: StatusPublished})
	createPost(t, repo, clock, Post{Title: "C", Slug: "c", Status: StatusPublished})

	prev, next, err := repo.Adjacent(ctx, middle.Slug, *middle.PublishedAt)
	if err != nil {
		t.Fatalf("Adjacent() error = %v", err)
	}
	if prev == nil || prev.Slug != "a" {
		t.Errorf("prev = %v, want a", prev)
	}
	if next == nil || next.Slug != "c" {
		t.Errorf("next = %v, want c", next)
	}

	first, err := repo.GetBySlug(ctx, "a")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	prev, next, err = repo.Adjacent(ctx, "a", *first.PublishedAt)
	if err != nil {
		t.Fatalf("Adjacent() error = %v", err)
	}
	if prev != nil {
		t.Errorf("prev of oldest post = %v, want nil", prev.Slug)
	}
	if next == nil || next.Slug != "b" {
		t.Errorf("next = %v, want b", next)
	}
}

func TestPostRepo_StatusTransitions(t *testing.T) {
	repo, clock := newTestPostRepo(t)
	ctx := context.Background()

	post := createPost(t, repo, clock, Post{Title: "A", Slug: "a"})
	createPost(t, repo, clock, Post{Title: "B", Slug: "b"})

	if err := repo.SetStatus(ctx, post.ID, StatusPublished); err != nil {
		t.Fatalf("SetStatus(published) error = %v", err)
	}
	published, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatal("SetStatus(published) did not stamp published_at")
	}
	firstPublished := *published.PublishedAt

	clock.advance(24 * time.Hour)
	if err := repo.SetStatus(ctx, post.ID, StatusArchived); err != nil {
		t.Fatalf("SetStatus(archived) error = %v", err)
	}
	if err := repo.SetStatus(ctx, post.ID, StatusPublished); err != nil {
		t.Fatalf("SetStatus(published) error = %v", err)
	}
	republished, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !republished.PublishedAt.Equal(firstPublished) {
		t.Errorf("PublishedAt = %v, want original %v", republished.PublishedAt, firstPublished)
	}

	if err := repo.SetStatus(ctx, post.ID, "deleted"); err == nil {
		t.Error("SetStatus() accepted an unknown status")
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts != (StatusCounts{Draft: 1, Published: 1}) {
		t.Errorf("CountByStatus() = %+v", counts)
	}

	slugs, err := repo.PublishedSlugs(ctx)
	if err != nil {
		t.Fatalf("PublishedSlugs() error = %v", err)
	}
	if !reflect.DeepEqual(slugs, []string{"a"}) {
		t.Errorf("PublishedSlugs() = %v, want [a]", slugs)
	}
}
