package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"devfolio/internal/markdown"
	"devfolio/internal/service"
	"devfolio/internal/storage"
	storage_mocks "devfolio/internal/storage/mocks"
)

func newBlogService(t *testing.T) (service.BlogService, *storage_mocks.MockPostStore, *storage_mocks.MockProfileStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	posts := storage_mocks.NewMockPostStore(ctrl)
	profiles := storage_mocks.NewMockProfileStore(ctrl)
	return service.NewBlogService(posts, profiles, markdown.New()), posts, profiles
}

func TestBlogService_ListPosts(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantTag string
	}{
		{name: "all tag", tag: service.AllTag, wantTag: ""},
		{name: "empty tag", tag: "", wantTag: ""},
		{name: "specific tag", tag: "go", wantTag: "go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, posts, _ := newBlogService(t)
			posts.EXPECT().List(gomock.Any(), storage.ListOptions{
				Status:  storage.StatusPublished,
				OrderBy: storage.OrderPublished,
				Tag:     tt.wantTag,
			}).Return([]storage.Post{{Slug: "a"}}, nil)

			got, err := svc.ListPosts(testContext(), tt.tag)
			if err != nil {
				t.Fatalf("ListPosts() error = %v", err)
			}
			if len(got) != 1 || got[0].Slug != "a" {
				t.Errorf("ListPosts() = %v", got)
			}
		})
	}
}

func TestBlogService_Tags(t *testing.T) {
	svc, posts, _ := newBlogService(t)
	posts.EXPECT().Tags(gomock.Any()).Return([]string{"go", "web"}, nil)

	got, err := svc.Tags(testContext())
	if err != nil {
		t.Fatalf("Tags() error = %v", err)
	}
	if diff := cmp.Diff([]string{service.AllTag, "go", "web"}, got); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}
}

func TestBlogService_PopularPosts_DefaultLimit(t *testing.T) {
	svc, posts, _ := newBlogService(t)
	posts.EXPECT().List(gomock.Any(), storage.ListOptions{
		Status:  storage.StatusPublished,
		OrderBy: storage.OrderViews,
		Limit:   service.PopularLimit,
	}).Return([]storage.Post{}, nil)

	if _, err := svc.PopularPosts(testContext(), 0); err != nil {
		t.Fatalf("PopularPosts() error = %v", err)
	}
}

func TestBlogService_PostPage(t *testing.T) {
	published := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	post := &storage.Post{
		ID:          "p1",
		Slug:        "hello",
		Title:       "Hello",
		Content:     "## Intro\ntext\n## Intro\n### Deep dive",
		Status:      storage.StatusPublished,
		PublishedAt: &published,
	}

	svc, posts, profiles := newBlogService(t)
	posts.EXPECT().GetBySlug(gomock.Any(), "hello").Return(post, nil)
	posts.EXPECT().Adjacent(gomock.Any(), "hello", published).Return(&storage.Post{Slug: "older"}, nil, nil)
	profiles.EXPECT().Get(gomock.Any()).Return(&storage.Profile{Name: "Jane"}, nil)

	page, err := svc.PostPage(testContext(), "hello")
	if err != nil {
		t.Fatalf("PostPage() error = %v", err)
	}

	want := []markdown.Heading{
		{Level: 2, ID: "intro", Text: "Intro"},
		{Level: 2, ID: "intro-2", Text: "Intro"},
		{Level: 3, ID: "deep-dive", Text: "Deep dive"},
	}
	if diff := cmp.Diff(want, page.Document.Headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	if page.Prev == nil || page.Prev.Slug != "older" || page.Next != nil {
		t.Errorf("navigation = %v / %v", page.Prev, page.Next)
	}
	if page.Author == nil || page.Author.Name != "Jane" {
		t.Errorf("Author = %v", page.Author)
	}
}

func TestBlogService_PostPage_OptionalPartsFailSoft(t *testing.T) {
	published := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, posts, profiles := newBlogService(t)
	posts.EXPECT().GetBySlug(gomock.Any(), "hello").Return(&storage.Post{
		Slug: "hello", Content: "body", Status: storage.StatusPublished, PublishedAt: &published,
	}, nil)
	posts.EXPECT().Adjacent(gomock.Any(), "hello", published).Return(nil, nil, errors.New("db locked"))
	profiles.EXPECT().Get(gomock.Any()).Return(nil, storage.ErrNotFound)

	page, err := svc.PostPage(testContext(), "hello")
	if err != nil {
		t.Fatalf("PostPage() error = %v", err)
	}
	if page.Prev != nil || page.Next != nil || page.Author != nil {
		t.Errorf("optional parts should be empty, got %+v", page)
	}
	if len(page.Document.Headings) != 0 {
		t.Errorf("Headings = %v, want empty", page.Document.Headings)
	}
}

func TestBlogService_HidesUnpublished(t *testing.T) {
	tests := []struct {
		name    string
		post    *storage.Post
		err     error
		wantErr error
	}{
		{name: "draft", post: &storage.Post{Slug: "s", Status: storage.StatusDraft}, wantErr: service.ErrNotFound},
		{name: "archived", post: &storage.Post{Slug: "s", Status: storage.StatusArchived}, wantErr: service.ErrNotFound},
		{name: "missing", err: storage.ErrNotFound, wantErr: service.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, posts, _ := newBlogService(t)
			posts.EXPECT().GetBySlug(gomock.Any(), "s").Return(tt.post, tt.err).Times(2)

			if _, err := svc.PostPage(testContext(), "s"); !errors.Is(err, tt.wantErr) {
				t.Errorf("PostPage() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := svc.Headings(testContext(), "s"); !errors.Is(err, tt.wantErr) {
				t.Errorf("Headings() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBlogService_Headings(t *testing.T) {
	svc, posts, _ := newBlogService(t)
	posts.EXPECT().GetBySlug(gomock.Any(), "hello").Return(&storage.Post{
		Slug:    "hello",
		Status:  storage.StatusPublished,
		Content: "# Title\n## 소개\n```\n## not a heading\n```\n### Café",
	}, nil)

	got, err := svc.Headings(testContext(), "hello")
	if err != nil {
		t.Fatalf("Headings() error = %v", err)
	}
	want := []markdown.Heading{
		{Level: 2, ID: "소개", Text: "소개"},
		{Level: 3, ID: "café", Text: "Café"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Headings() mismatch (-want +got):\n%s", diff)
	}
}
