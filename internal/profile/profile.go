// Package profile models the identity provider consumed once at session
// start. The scheduling core never calls it again after bootstrap.
package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ritmoapp/ritmo/internal/timeout"
)

// ErrNotFound is returned when no profile exists for an id.
var ErrNotFound = errors.New("profile not found")

// bootstrapCeiling bounds each provider round-trip during bootstrap.
const bootstrapCeiling = 10 * time.Second

// Profile identifies the acting user.
type Profile struct {
	ID        string    `toml:"id"`
	Email     string    `toml:"email"`
	Name      string    `toml:"name"`
	AvatarURL string    `toml:"avatar_url"`
	CreatedAt time.Time `toml:"created_at"`
}

// Provider is the consumed identity contract: look a profile up, or
// create it when the lookup misses.
type Provider interface {
	GetProfile(ctx context.Context, id string) (*Profile, error)
	CreateProfile(ctx context.Context, id, email, name, avatarURL string) (*Profile, error)
}

// Bootstrap obtains the acting user's profile, creating it on first run.
// Each provider call is raced against a fixed ceiling so a hung provider
// fails soft instead of blocking startup.
func Bootstrap(ctx context.Context, p Provider, id, email, name string) (*Profile, error) {
	got, err := timeout.Run(ctx, "get profile", bootstrapCeiling, func(c context.Context) (*Profile, error) {
		return p.GetProfile(c, id)
	})
	if err == nil {
		return got, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return timeout.Run(ctx, "create profile", bootstrapCeiling, func(c context.Context) (*Profile, error) {
		return p.CreateProfile(c, id, email, name, "")
	})
}

// FileProvider stores the profile as a TOML file, acting as the local
// stand-in for the hosted identity service.
type FileProvider struct {
	path string
}

// NewFileProvider creates a provider persisting to the given path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// GetProfile loads the stored profile if it matches the requested id.
func (f *FileProvider) GetProfile(_ context.Context, id string) (*Profile, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	if p.ID != id {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &p, nil
}

// CreateProfile persists a fresh profile.
func (f *FileProvider) CreateProfile(_ context.Context, id, email, name, avatarURL string) (*Profile, error) {
	p := &Profile{
		ID:        id,
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
		CreatedAt: time.Now(),
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling profile: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing profile: %w", err)
	}
	return p, nil
}
