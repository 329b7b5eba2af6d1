package storage

import (
	"context"
	"errors"
	"testing"
)

func TestProfileRepo_Upsert(t *testing.T) {
	repo := NewProfileRepo(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() on empty table error = %v, want ErrNotFound", err)
	}

	first := &Profile{Name: "Jane", Description: "Backend engineer"}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if first.ID == "" {
		t.Fatal("Upsert() did not assign an ID")
	}

	// Without an ID the existing profile is updated, not duplicated.
	second := &Profile{Name: "Jane Doe", AvatarURL: "/uploads/avatar.png"}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Upsert() ID = %s, want %s", second.ID, first.ID)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Jane Doe" || got.AvatarURL != "/uploads/avatar.png" || got.Description != "" {
		t.Errorf("Get() = %+v", got)
	}

	var count int
	if err := repo.db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count); err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if count != 1 {
		t.Errorf("profiles count = %d, want 1", count)
	}
}
