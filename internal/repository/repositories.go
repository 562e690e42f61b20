// Package repository handles all interactions with the document store.
//
// Each repository has a postgres implementation (pgx, JSONB columns for the
// embedded lists) and a mongo implementation. The service layer only sees
// the interfaces.
package repository

import (
	"context"

	"github.com/deppfellow/go-posts/internal/config"
	"github.com/deppfellow/go-posts/internal/model"
	"github.com/deppfellow/go-posts/internal/server"
)

// PostRepository persists posts together with their likes and comments.
type PostRepository interface {
	// ListPosts returns every post, newest first.
	ListPosts(ctx context.Context) ([]model.Post, error)
	GetPostByID(ctx context.Context, id string) (*model.Post, error)
	CreatePost(ctx context.Context, post *model.Post) (*model.Post, error)
	// SavePost writes the whole document back, embedded lists included.
	SavePost(ctx context.Context, post *model.Post) (*model.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// ProfileRepository reads user profiles.
type ProfileRepository interface {
	GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error)
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Posts    PostRepository
	Profiles ProfileRepository
}

// NewRepositories builds the repositories for the store selected by
// database.driver.
func NewRepositories(s *server.Server) *Repositories {
	if s.Config.Database.Driver == config.DriverMongo {
		return &Repositories{
			Posts:    NewMongoPostRepository(s.Mongo.DB),
			Profiles: NewMongoProfileRepository(s.Mongo.DB),
		}
	}

	return &Repositories{
		Posts:    NewPostRepository(s.DB.Pool),
		Profiles: NewProfileRepository(s.DB.Pool),
	}
}
