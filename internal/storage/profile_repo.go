package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_profile_store.go -package=mocks devfolio/internal/storage ProfileStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProfileStore defines the interface for profile storage operations.
type ProfileStore interface {
	// Get returns the site profile. Returns ErrNotFound if none exists.
	Get(ctx context.Context) (*Profile, error)
	// Upsert creates the profile or updates the existing one.
	Upsert(ctx context.Context, profile *Profile) error
}

// ProfileRepo provides methods for profile operations.
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Get returns the oldest profile row; the site has a single author.
func (r *ProfileRepo) Get(ctx context.Context) (*Profile, error) {
	var profile Profile
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, avatar_url, created_at FROM profiles ORDER BY created_at ASC LIMIT 1",
	).Scan(&profile.ID, &profile.Name, &profile.Description, &profile.AvatarURL, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	profile.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	return &profile, nil
}

// Upsert writes the profile. Without an ID it updates the existing profile,
// or creates one if there is none.
func (r *ProfileRepo) Upsert(ctx context.Context, profile *Profile) error {
	if profile.ID == "" {
		existing, err := r.Get(ctx)
		switch {
		case err == nil:
			profile.ID = existing.ID
			profile.CreatedAt = existing.CreatedAt
		case errors.Is(err, ErrNotFound):
			profile.ID = uuid.New().String()
		default:
			return fmt.Errorf("failed to check existing profile: %w", err)
		}
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, description, avatar_url, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 name = excluded.name, description = excluded.description, avatar_url = excluded.avatar_url`,
		profile.ID, profile.Name, profile.Description, profile.AvatarURL, formatTime(profile.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
